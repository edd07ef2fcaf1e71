package engine

import "github.com/hpungsan/reel/internal/catalog"

// AddSuggestion appends an entry to the suggestion list.
func (e *Engine) AddSuggestion(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.entry(id); err != nil {
		return err
	}
	e.suggestions.Add(id)
	return nil
}

// CurrentSuggestion returns the entry under the suggestion cursor.
func (e *Engine) CurrentSuggestion() (catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.suggestions.Current()
	return e.cloneOne(id, ok)
}

// AdvanceSuggestion moves the cursor forward. At the end of the list it
// returns ok=false and leaves the cursor where it was.
func (e *Engine) AdvanceSuggestion() (catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.suggestions.Advance()
	return e.cloneOne(id, ok)
}

// ResetSuggestions moves the cursor back to the first suggestion.
func (e *Engine) ResetSuggestions() (catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.suggestions.Reset()
	return e.cloneOne(id, ok)
}

// Suggestions returns every suggested entry from head to tail.
func (e *Engine) Suggestions() []catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clones(e.suggestions.All())
}

// cloneOne copies the entry for id when ok. Caller holds mu.
func (e *Engine) cloneOne(id string, ok bool) (catalog.Entry, bool) {
	if !ok {
		return catalog.Entry{}, false
	}
	ent, found := e.entries[id]
	if !found {
		return catalog.Entry{}, false
	}
	return ent.Clone(), true
}
