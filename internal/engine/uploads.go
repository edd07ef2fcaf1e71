package engine

import "github.com/hpungsan/reel/internal/catalog"

// EnqueueUpload takes ownership of ent and queues it for publishing.
// The entry is addressable by id but not placed in any category yet.
func (e *Engine) EnqueueUpload(ent *catalog.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.admit(ent); err != nil {
		return err
	}
	e.uploads.Enqueue(ent.ID)
	e.logger.Debug("upload queued", "entry_id", ent.ID, "queue_size", e.uploads.Size())
	return nil
}

// ProcessNextUpload publishes the oldest queued upload into the root category.
// ok is false when the queue is empty.
func (e *Engine) ProcessNextUpload() (catalog.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.uploads.Dequeue()
	if !ok {
		return catalog.Entry{}, false
	}
	ent := e.entries[id]
	e.place(e.tree.Root(), id)
	return ent.Clone(), true
}

// QueueContents returns the pending uploads, head first.
func (e *Engine) QueueContents() []catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clones(e.uploads.All())
}
