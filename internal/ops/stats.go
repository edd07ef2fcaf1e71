package ops

import "github.com/hpungsan/reel/internal/engine"

// StatsOutput contains catalog totals.
type StatsOutput struct {
	engine.Stats
	Categories  int        `json:"categories"`
	Suggestions int        `json:"suggestions"`
	NowPlaying  *EntryView `json:"now_playing,omitempty"`
}

// Stats summarizes the catalog.
func Stats(eng *engine.Engine) (*StatsOutput, error) {
	return &StatsOutput{
		Stats:       eng.Stats(),
		Categories:  countCategories(eng.Categories()),
		Suggestions: len(eng.Suggestions()),
		NowPlaying:  optionalView(eng.NowPlaying()),
	}, nil
}
