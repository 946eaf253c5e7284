package tts

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/papertone/papertone/internal/display"
)

// PlaceholderVoiceID marks a category with no matching provider voice.
const PlaceholderVoiceID = "placeholder"

// Voice is one entry of the public voice catalog.
type Voice struct {
	Category string `json:"category"`
	ID       string `json:"id"`
}

type category struct {
	label  string
	locale string
	gender string
}

var categories = []category{
	{"American Male", "en-US", "Male"},
	{"American Female", "en-US", "Female"},
	{"British Male", "en-UK", "Male"},
	{"British Female", "en-UK", "Female"},
	{"Australian Male", "en-AU", "Male"},
	{"Australian Female", "en-AU", "Female"},
}

// VoiceLister fetches the provider's raw voice list.
type VoiceLister interface {
	ListVoices(ctx context.Context) ([]ProviderVoice, error)
}

// Catalog maps fixed {region, gender} categories to one representative
// provider voice each. Built lazily on first use and cached for the process
// lifetime; a fetch failure soft-fails to all-placeholder entries, which are
// cached too.
type Catalog struct {
	lister VoiceLister
	cached atomic.Pointer[[]Voice]
}

// NewCatalog creates an unpopulated catalog backed by lister.
func NewCatalog(lister VoiceLister) *Catalog {
	return &Catalog{lister: lister}
}

// Voices returns the cached category mapping, building it on first call.
// Concurrent first calls may fetch twice; the result is identical either
// way, so no lock is taken.
func (c *Catalog) Voices(ctx context.Context) []Voice {
	if v := c.cached.Load(); v != nil {
		return *v
	}
	built := c.build(ctx)
	c.cached.Store(&built)
	return built
}

func (c *Catalog) build(ctx context.Context) []Voice {
	all, err := c.lister.ListVoices(ctx)
	if err != nil {
		display.Warn(fmt.Sprintf("fetch voices: %v", err))
		all = nil
	}

	voices := make([]Voice, 0, len(categories))
	for _, cat := range categories {
		id := PlaceholderVoiceID
		// First matching entry wins.
		for _, pv := range all {
			if pv.Locale == cat.locale && pv.Gender == cat.gender {
				id = pv.VoiceID
				break
			}
		}
		voices = append(voices, Voice{Category: cat.label, ID: id})
	}
	return voices
}
