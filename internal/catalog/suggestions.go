package catalog

type suggestionNode struct {
	id   string
	next *suggestionNode
}

// Suggestions is a singly linked list of entry ids with a read cursor.
// The cursor only moves forward or back to the head.
type Suggestions struct {
	head    *suggestionNode
	tail    *suggestionNode
	current *suggestionNode
	size    int
}

// NewSuggestions creates an empty list.
func NewSuggestions() *Suggestions {
	return &Suggestions{}
}

// Add appends id. The first id added becomes the cursor position.
func (s *Suggestions) Add(id string) {
	n := &suggestionNode{id: id}
	if s.head == nil {
		s.head = n
		s.tail = n
		s.current = n
	} else {
		s.tail.next = n
		s.tail = n
	}
	s.size++
}

// Current returns the id under the cursor.
func (s *Suggestions) Current() (string, bool) {
	if s.current == nil {
		return "", false
	}
	return s.current.id, true
}

// Advance moves the cursor to the next node and returns its id.
// At the end of the list the cursor stays put and ok is false.
func (s *Suggestions) Advance() (string, bool) {
	if s.current == nil || s.current.next == nil {
		return "", false
	}
	s.current = s.current.next
	return s.current.id, true
}

// Reset moves the cursor back to the head.
func (s *Suggestions) Reset() (string, bool) {
	s.current = s.head
	return s.Current()
}

// All returns every id from head to tail.
func (s *Suggestions) All() []string {
	out := make([]string, 0, s.size)
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.id)
	}
	return out
}

func (s *Suggestions) Len() int { return s.size }
