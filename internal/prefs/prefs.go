// Package prefs stores the player's cosmetic choices: accent color and avatar.
// Values are read once when the store is loaded and written through to the
// backend synchronously on every change.
package prefs

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/aetheria/internal/core"
)

// Backend keys.
const (
	KeyColor  = "player-color"
	KeyAvatar = "player-avatar"
)

var (
	// ErrInvalidColor is returned for colors that are not #rrggbb.
	ErrInvalidColor = errors.New("prefs: invalid color")
	// ErrInvalidAvatar is returned for unknown avatar ids.
	ErrInvalidAvatar = errors.New("prefs: invalid avatar")
)

// Backend is durable string key/value storage.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Prefs is a snapshot of the cosmetic preferences.
type Prefs struct {
	Color  core.Color
	Avatar core.AvatarKind
}

// Defaults returns the preferences of a new player.
func Defaults() Prefs {
	return Prefs{Color: core.DefaultAccent, Avatar: core.DefaultAvatar}
}

// Store holds the current preferences.
type Store struct {
	backend Backend
	current Prefs
}

// Load reads preferences from backend. Missing or unusable stored values
// fall back to the defaults. A backend read error is returned alongside a
// usable store holding defaults for the keys that could not be read.
func Load(backend Backend) (*Store, error) {
	s := &Store{backend: backend, current: Defaults()}

	var errs []error
	if v, ok, err := backend.Get(KeyColor); err != nil {
		errs = append(errs, fmt.Errorf("prefs: read %s: %w", KeyColor, err))
	} else if ok {
		if c, err := core.ParseHexColor(v); err == nil {
			s.current.Color = c
		}
	}
	if v, ok, err := backend.Get(KeyAvatar); err != nil {
		errs = append(errs, fmt.Errorf("prefs: read %s: %w", KeyAvatar, err))
	} else if ok {
		if a, err := core.ParseAvatar(v); err == nil {
			s.current.Avatar = a
		}
	}
	return s, errors.Join(errs...)
}

// Get returns the current preferences.
func (s *Store) Get() Prefs { return s.current }

// Color returns the accent color.
func (s *Store) Color() core.Color { return s.current.Color }

// Avatar returns the avatar.
func (s *Store) Avatar() core.AvatarKind { return s.current.Avatar }

// SetColor validates and persists a #rrggbb color. The in-memory value only
// changes when the write succeeds.
func (s *Store) SetColor(color string) error {
	c, err := core.ParseHexColor(color)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	if err := s.backend.Set(KeyColor, string(c)); err != nil {
		return fmt.Errorf("prefs: write %s: %w", KeyColor, err)
	}
	s.current.Color = c
	return nil
}

// SetAvatar validates and persists an avatar id.
func (s *Store) SetAvatar(avatar string) error {
	a, err := core.ParseAvatar(avatar)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAvatar, avatar)
	}
	if err := s.backend.Set(KeyAvatar, string(a)); err != nil {
		return fmt.Errorf("prefs: write %s: %w", KeyAvatar, err)
	}
	s.current.Avatar = a
	return nil
}
