package store

import (
	"errors"
	"strings"

	"wiki-chat/internal/models"
)

// Store holds the normalized article as ordered text units. It is built once
// and never mutated afterwards.
type Store struct {
	units   []string
	context string
	compact string
}

// New joins the sentences into one text and splits it back on ". ", the same
// unit boundaries the startup listing shows.
func New(sentences []string) (*Store, error) {
	if len(sentences) == 0 {
		return nil, errors.New("store needs at least one sentence")
	}

	units := strings.Split(strings.Join(sentences, models.SentenceJoiner), models.UnitSeparator)
	return &Store{
		units:   units,
		context: strings.Join(units, models.UnitSeparator),
		compact: strings.Join(units, models.CompactSeparator),
	}, nil
}

// Render returns the context blob embedded in augmented prompts.
func (s *Store) Render() string {
	return s.context
}

// Compact returns the units joined without spaces, for raw display.
func (s *Store) Compact() string {
	return s.compact
}

func (s *Store) Units() []string {
	out := make([]string, len(s.units))
	copy(out, s.units)
	return out
}

func (s *Store) Len() int {
	return len(s.units)
}
