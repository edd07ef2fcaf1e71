package catalog

import "container/list"

// UploadQueue is an unbounded FIFO of entry ids waiting to be published.
type UploadQueue struct {
	l *list.List
}

// NewUploadQueue creates an empty queue.
func NewUploadQueue() *UploadQueue {
	return &UploadQueue{l: list.New()}
}

// Enqueue appends id at the tail.
func (q *UploadQueue) Enqueue(id string) {
	q.l.PushBack(id)
}

// Dequeue removes and returns the head id.
func (q *UploadQueue) Dequeue() (string, bool) {
	front := q.l.Front()
	if front == nil {
		return "", false
	}
	q.l.Remove(front)
	return front.Value.(string), true
}

func (q *UploadQueue) IsEmpty() bool { return q.l.Len() == 0 }

func (q *UploadQueue) Size() int { return q.l.Len() }

// All returns the queued ids head first without consuming them.
func (q *UploadQueue) All() []string {
	out := make([]string, 0, q.l.Len())
	for cur := q.l.Front(); cur != nil; cur = cur.Next() {
		out = append(out, cur.Value.(string))
	}
	return out
}
