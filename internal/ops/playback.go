package ops

import "github.com/hpungsan/reel/internal/engine"

// PlayInput contains parameters for the Play operation.
type PlayInput struct {
	ID string // required
}

// PlayOutput reports the entry now playing.
type PlayOutput struct {
	NowPlaying   EntryView `json:"now_playing"`
	HistoryItems int       `json:"history_items"`
}

// Play marks an entry as now playing and records it in the watch history.
// FilePath is handed to external players untouched; nothing is decoded here.
func Play(eng *engine.Engine, input PlayInput) (*PlayOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	ent, err := eng.Play(id)
	if err != nil {
		return nil, err
	}
	return &PlayOutput{NowPlaying: NewEntryView(ent), HistoryItems: len(eng.History())}, nil
}

// HistoryOutput contains the watch history, most recent first.
type HistoryOutput struct {
	Items      []EntryView `json:"items"`
	NowPlaying *EntryView  `json:"now_playing,omitempty"`
}

// History returns the watch history.
func History(eng *engine.Engine) (*HistoryOutput, error) {
	return &HistoryOutput{
		Items:      entryViews(eng.History()),
		NowPlaying: optionalView(eng.NowPlaying()),
	}, nil
}
