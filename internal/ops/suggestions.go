package ops

import "github.com/hpungsan/reel/internal/engine"

// SuggestionOutput reports the suggestion under the cursor.
type SuggestionOutput struct {
	Current *EntryView `json:"current,omitempty"`
	// AtEnd is set by Next when the cursor was already on the last suggestion
	AtEnd bool `json:"at_end,omitempty"`
	Total int  `json:"total"`
}

// CurrentSuggestion returns the suggestion under the cursor.
func CurrentSuggestion(eng *engine.Engine) (*SuggestionOutput, error) {
	ent, ok := eng.CurrentSuggestion()
	return &SuggestionOutput{Current: optionalView(ent, ok), Total: len(eng.Suggestions())}, nil
}

// AddSuggestionInput contains parameters for the AddSuggestion operation.
type AddSuggestionInput struct {
	ID string // required
}

// AddSuggestion appends an entry to the suggestion list.
func AddSuggestion(eng *engine.Engine, input AddSuggestionInput) (*SuggestionOutput, error) {
	id, err := requireID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := eng.AddSuggestion(id); err != nil {
		return nil, err
	}
	return CurrentSuggestion(eng)
}

// NextSuggestion advances the cursor. At the end of the list the cursor stays
// put and AtEnd is reported.
func NextSuggestion(eng *engine.Engine) (*SuggestionOutput, error) {
	if _, ok := eng.AdvanceSuggestion(); ok {
		return CurrentSuggestion(eng)
	}
	out, err := CurrentSuggestion(eng)
	if err != nil {
		return nil, err
	}
	out.AtEnd = true
	return out, nil
}

// ResetSuggestions moves the cursor back to the first suggestion.
func ResetSuggestions(eng *engine.Engine) (*SuggestionOutput, error) {
	eng.ResetSuggestions()
	return CurrentSuggestion(eng)
}
