package ops

import "github.com/hpungsan/reel/internal/engine"

// EnqueueUploadInput contains parameters for the EnqueueUpload operation.
type EnqueueUploadInput struct {
	Title    string // required
	Label    string // category label
	Duration string
	FilePath string
}

// EnqueueUploadOutput reports the queued entry.
type EnqueueUploadOutput struct {
	ID        string    `json:"id"`
	Entry     EntryView `json:"entry"`
	QueueSize int       `json:"queue_size"`
}

// EnqueueUpload creates an entry and queues it for publishing.
func EnqueueUpload(eng *engine.Engine, input EnqueueUploadInput) (*EnqueueUploadOutput, error) {
	ent, err := newEntry(input.Title, input.Label, input.Duration, input.FilePath, nil, eng.Now())
	if err != nil {
		return nil, err
	}
	if err := eng.EnqueueUpload(ent); err != nil {
		return nil, err
	}
	queued, err := eng.Entry(ent.ID)
	if err != nil {
		return nil, err
	}
	return &EnqueueUploadOutput{
		ID:        ent.ID,
		Entry:     NewEntryView(queued),
		QueueSize: len(eng.QueueContents()),
	}, nil
}

// ProcessUploadOutput reports the published entry, if any.
type ProcessUploadOutput struct {
	Processed bool       `json:"processed"`
	Entry     *EntryView `json:"entry,omitempty"`
	Remaining int        `json:"remaining"`
}

// ProcessUpload publishes the oldest queued upload into the root category.
// An empty queue is not an error.
func ProcessUpload(eng *engine.Engine) (*ProcessUploadOutput, error) {
	ent, ok := eng.ProcessNextUpload()
	return &ProcessUploadOutput{
		Processed: ok,
		Entry:     optionalView(ent, ok),
		Remaining: len(eng.QueueContents()),
	}, nil
}

// ListUploadsOutput contains the pending uploads, head first.
type ListUploadsOutput struct {
	Items []EntryView `json:"items"`
}

// ListUploads returns the upload queue.
func ListUploads(eng *engine.Engine) (*ListUploadsOutput, error) {
	return &ListUploadsOutput{Items: entryViews(eng.QueueContents())}, nil
}
