// Package seed loads catalog fixtures from YAML and applies them to an engine.
package seed

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gopkg.in/yaml.v3"

	"github.com/hpungsan/reel/internal/catalog"
	"github.com/hpungsan/reel/internal/engine"
	"github.com/hpungsan/reel/internal/errors"
)

//go:embed sample.yaml
var sampleYAML []byte

// fixtureValidator carries the non-standard notblank tag used by Fixture.
var fixtureValidator = sync.OnceValues(func() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank: %w", err)
	}
	return v, nil
})

// Fixture is the initial content of a catalog.
type Fixture struct {
	Categories  []Category `yaml:"categories" validate:"unique=Name,dive"`
	Entries     []Entry    `yaml:"entries" validate:"dive"`
	Uploads     []Upload   `yaml:"uploads" validate:"dive"`
	Suggestions []string   `yaml:"suggestions" validate:"dive,notblank"`
	Playlists   []Playlist `yaml:"playlists" validate:"unique=Name,dive"`
}

// Category is a category node and its children.
type Category struct {
	Name     string     `yaml:"name" validate:"notblank,excludes=/"`
	Children []Category `yaml:"children" validate:"unique=Name,dive"`
}

// Entry is a published entry. Path is a category path like
// "Education/Programming"; empty places the entry at the root.
// Views, Likes and Dislikes are the starting counters.
type Entry struct {
	Title    string    `yaml:"title" validate:"notblank"`
	Category string    `yaml:"category"`
	Path     string    `yaml:"path"`
	Duration string    `yaml:"duration"`
	FilePath string    `yaml:"file_path"`
	Views    int       `yaml:"views" validate:"min=0"`
	Likes    int       `yaml:"likes" validate:"min=0"`
	Dislikes int       `yaml:"dislikes" validate:"min=0"`
	Comments []Comment `yaml:"comments" validate:"dive"`
}

// Comment is a comment posted on a seeded entry.
type Comment struct {
	Username string `yaml:"username"`
	Text     string `yaml:"text" validate:"notblank"`
	Likes    int    `yaml:"likes" validate:"min=0"`
}

// Upload is an entry waiting in the upload queue.
type Upload struct {
	Title    string `yaml:"title" validate:"notblank"`
	Category string `yaml:"category"`
	Duration string `yaml:"duration"`
	FilePath string `yaml:"file_path"`
}

// Playlist names a user playlist and its entries by title.
type Playlist struct {
	Name    string   `yaml:"name" validate:"notblank"`
	Entries []string `yaml:"entries" validate:"dive,notblank"`
}

// Summary counts what Apply created.
type Summary struct {
	Categories  int `json:"categories"`
	Entries     int `json:"entries"`
	Uploads     int `json:"uploads"`
	Suggestions int `json:"suggestions"`
	Playlists   int `json:"playlists"`
}

// Sample returns the built-in demo catalog.
func Sample() (*Fixture, error) {
	return Load(bytes.NewReader(sampleYAML))
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a fixture. Unknown keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	fx := &Fixture{}
	if err := dec.Decode(fx); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.NewInvalidInput(fmt.Sprintf("invalid catalog fixture: %v", err))
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return fx, nil
}

// Validate checks field rules and that every path and title a fixture
// refers to is declared in it.
func (fx *Fixture) Validate() error {
	validate, err := fixtureValidator()
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := validate.Struct(fx); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return errors.NewInvalidInput("invalid catalog fixture: " + strings.Join(msgs, "; "))
		}
		return errors.NewInvalidInput(fmt.Sprintf("invalid catalog fixture: %v", err))
	}

	paths := map[string]bool{"": true}
	collectPaths(fx.Categories, nil, paths)
	for _, e := range fx.Entries {
		if !paths[catalog.JoinPath(catalog.SplitPath(e.Path))] {
			return errors.NewNotFound("category", e.Path)
		}
	}

	titles := make(map[string]bool)
	for _, e := range fx.Entries {
		titles[e.Title] = true
	}
	for _, u := range fx.Uploads {
		titles[u.Title] = true
	}
	for _, title := range fx.Suggestions {
		if !titles[title] {
			return errors.NewNotFound("entry", title)
		}
	}
	for _, p := range fx.Playlists {
		if strings.TrimSpace(p.Name) == engine.LikedPlaylist {
			return errors.NewInvalidInput("playlist " + engine.LikedPlaylist + " is maintained automatically")
		}
		for _, title := range p.Entries {
			if !titles[title] {
				return errors.NewNotFound("entry", title)
			}
		}
	}
	return nil
}

func collectPaths(cats []Category, parent []string, into map[string]bool) {
	for _, c := range cats {
		path := append(append([]string{}, parent...), strings.TrimSpace(c.Name))
		into[catalog.JoinPath(path)] = true
		collectPaths(c.Children, path, into)
	}
}

// Apply creates the fixture's content in eng. It is meant for a fresh engine:
// names that already exist there fail with ALREADY_EXISTS after earlier
// sections have been applied.
func Apply(eng *engine.Engine, fx *Fixture) (Summary, error) {
	var sum Summary
	if err := fx.Validate(); err != nil {
		return sum, err
	}

	if err := applyCategories(eng, fx.Categories, nil, &sum); err != nil {
		return sum, err
	}

	// First entry with a given title wins when titles are referenced.
	byTitle := make(map[string]string)
	remember := func(title, id string) {
		if _, ok := byTitle[title]; !ok {
			byTitle[title] = id
		}
	}

	for _, e := range fx.Entries {
		path := catalog.SplitPath(e.Path)
		ent, err := newEntry(eng, e.Title, e.Category, e.Duration, e.FilePath)
		if err != nil {
			return sum, err
		}
		ent.Views, ent.Likes, ent.Dislikes = e.Views, e.Likes, e.Dislikes
		// Comments go in before the entry is shared with the engine.
		for _, c := range e.Comments {
			if err := addComment(ent, c, eng.Now()); err != nil {
				return sum, err
			}
		}
		if err := eng.AddEntry(path, ent); err != nil {
			return sum, err
		}
		remember(e.Title, ent.ID)
		sum.Entries++
	}

	for _, u := range fx.Uploads {
		ent, err := newEntry(eng, u.Title, u.Category, u.Duration, u.FilePath)
		if err != nil {
			return sum, err
		}
		if err := eng.EnqueueUpload(ent); err != nil {
			return sum, err
		}
		remember(u.Title, ent.ID)
		sum.Uploads++
	}

	for _, title := range fx.Suggestions {
		if err := eng.AddSuggestion(byTitle[title]); err != nil {
			return sum, err
		}
		sum.Suggestions++
	}

	for _, p := range fx.Playlists {
		if _, err := eng.CreatePlaylist(p.Name); err != nil {
			return sum, err
		}
		for _, title := range p.Entries {
			if _, err := eng.AddToPlaylist(strings.TrimSpace(p.Name), byTitle[title]); err != nil {
				return sum, err
			}
		}
		sum.Playlists++
	}

	return sum, nil
}

func applyCategories(eng *engine.Engine, cats []Category, parent []string, sum *Summary) error {
	for _, c := range cats {
		created, err := eng.CreateCategory(parent, c.Name)
		if err != nil {
			return err
		}
		sum.Categories++
		if err := applyCategories(eng, c.Children, created.Path, sum); err != nil {
			return err
		}
	}
	return nil
}

func newEntry(eng *engine.Engine, title, label, duration, filePath string) (*catalog.Entry, error) {
	at := eng.Now()
	id, err := catalog.NewID(at)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	ent := catalog.NewEntry(id, strings.TrimSpace(title), strings.TrimSpace(label), strings.TrimSpace(duration), at)
	ent.FilePath = filePath
	return ent, nil
}

func addComment(ent *catalog.Entry, c Comment, at time.Time) error {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		username = "You"
	}
	added, err := ent.Comments().Add(username, c.Text, at)
	if err != nil {
		return err
	}
	for range c.Likes {
		if _, err := ent.Comments().Like(added.ID); err != nil {
			return err
		}
	}
	return nil
}
