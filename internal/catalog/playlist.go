package catalog

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Playlist is a named, ordered set of entry ids.
type Playlist struct {
	Name      string
	CreatedAt time.Time

	// Auto marks a playlist whose membership is maintained by the engine
	Auto bool

	ids    []string
	member map[string]bool
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(name string, createdAt time.Time) *Playlist {
	return &Playlist{
		Name:      name,
		CreatedAt: createdAt,
		member:    make(map[string]bool),
	}
}

// Add appends id unless it is already a member. Returns false when it was.
func (p *Playlist) Add(id string) bool {
	if p.member[id] {
		return false
	}
	p.member[id] = true
	p.ids = append(p.ids, id)
	return true
}

// Remove drops id. Returns false when it was not a member.
func (p *Playlist) Remove(id string) bool {
	if !p.member[id] {
		return false
	}
	delete(p.member, id)
	p.ids = slices.DeleteFunc(p.ids, func(s string) bool { return s == id })
	return true
}

func (p *Playlist) Contains(id string) bool { return p.member[id] }

func (p *Playlist) Len() int { return len(p.ids) }

// All returns the ids in playlist order.
func (p *Playlist) All() []string {
	return slices.Clone(p.ids)
}

// Shuffle randomizes the order using r.
func (p *Playlist) Shuffle(r *rand.Rand) {
	r.Shuffle(len(p.ids), func(i, j int) {
		p.ids[i], p.ids[j] = p.ids[j], p.ids[i]
	})
}

// Clone returns an independent copy.
func (p *Playlist) Clone() *Playlist {
	c := NewPlaylist(p.Name, p.CreatedAt)
	c.Auto = p.Auto
	for _, id := range p.ids {
		c.Add(id)
	}
	return c
}
