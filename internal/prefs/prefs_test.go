package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/storage"
)

type failingBackend struct {
	getErr, setErr error
}

func (b failingBackend) Get(string) (string, bool, error) { return "", false, b.getErr }
func (b failingBackend) Set(string, string) error         { return b.setErr }

func TestLoadDefaults(t *testing.T) {
	s, err := Load(NewMemoryBackend())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Color() != "#00f0ff" || s.Avatar() != core.AvatarMage {
		t.Errorf("Get() = %+v, expected #00f0ff/mage", s.Get())
	}
}

func TestLoadStoredValues(t *testing.T) {
	b := NewMemoryBackend()
	b.Set(KeyColor, "#FF0055")
	b.Set(KeyAvatar, "scout")

	s, _ := Load(b)
	if s.Get() != (Prefs{Color: "#ff0055", Avatar: core.AvatarScout}) {
		t.Errorf("Get() = %+v, expected #ff0055/scout", s.Get())
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	b := NewMemoryBackend()
	b.Set(KeyColor, "blue")
	b.Set(KeyAvatar, "wizard")

	s, err := Load(b)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Get() != Defaults() {
		t.Errorf("Get() = %+v, expected defaults", s.Get())
	}
}

func TestLoadBackendError(t *testing.T) {
	boom := errors.New("disk gone")
	s, err := Load(failingBackend{getErr: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, expected wrapped backend error", err)
	}
	if s == nil || s.Get() != Defaults() {
		t.Error("Load() should still return a store with defaults")
	}
}

func TestSetWritesThrough(t *testing.T) {
	b := NewMemoryBackend()
	s, _ := Load(b)

	if err := s.SetColor("#CCFF00"); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	if err := s.SetAvatar("Guardian"); err != nil {
		t.Fatalf("SetAvatar() error = %v", err)
	}

	if v, _, _ := b.Get(KeyColor); v != "#ccff00" {
		t.Errorf("stored color = %q, expected #ccff00", v)
	}
	if v, _, _ := b.Get(KeyAvatar); v != "guardian" {
		t.Errorf("stored avatar = %q, expected guardian", v)
	}

	reloaded, _ := Load(b)
	if reloaded.Get() != s.Get() {
		t.Errorf("reloaded = %+v, expected %+v", reloaded.Get(), s.Get())
	}
}

func TestSetValidation(t *testing.T) {
	s, _ := Load(NewMemoryBackend())

	if err := s.SetColor("#12345"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("SetColor() error = %v, expected ErrInvalidColor", err)
	}
	if err := s.SetAvatar("knight"); !errors.Is(err, ErrInvalidAvatar) {
		t.Errorf("SetAvatar() error = %v, expected ErrInvalidAvatar", err)
	}
	if s.Get() != Defaults() {
		t.Errorf("Get() = %+v, expected defaults after rejected writes", s.Get())
	}
}

func TestSetFailureKeepsValue(t *testing.T) {
	boom := errors.New("read-only")
	s, _ := Load(failingBackend{setErr: boom})

	if err := s.SetColor("#ff3333"); !errors.Is(err, boom) {
		t.Errorf("SetColor() error = %v, expected backend error", err)
	}
	if s.Color() != core.DefaultAccent {
		t.Errorf("Color() = %q, expected unchanged default", s.Color())
	}
}

func TestSQLiteBackend(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	alice, _ := Load(NewSQLiteBackend(store, "alice"))
	if err := alice.SetAvatar("scout"); err != nil {
		t.Fatalf("SetAvatar() error = %v", err)
	}

	bob, _ := Load(NewSQLiteBackend(store, "bob"))
	if bob.Avatar() != core.AvatarMage {
		t.Errorf("bob Avatar() = %q, expected default mage", bob.Avatar())
	}

	again, _ := Load(NewSQLiteBackend(store, "alice"))
	if again.Avatar() != core.AvatarScout {
		t.Errorf("alice Avatar() = %q, expected scout", again.Avatar())
	}
}
