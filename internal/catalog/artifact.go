// Package catalog provides the fixed set of discoverable artifacts.
// The catalog is built once at startup and is immutable for the session.
package catalog

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/aetheria/internal/core"
)

// ArtifactID identifies an artifact in the catalog.
type ArtifactID string

var (
	// ErrDuplicateID is returned when two artifacts share an id.
	ErrDuplicateID = errors.New("catalog: duplicate artifact id")
	// ErrEmptyID is returned for an artifact without an id.
	ErrEmptyID = errors.New("catalog: empty artifact id")
	// ErrUnknownArtifact is returned by lookups for ids not in the catalog.
	ErrUnknownArtifact = errors.New("catalog: unknown artifact")
)

// Artifact is a discoverable in-world object carrying project metadata.
type Artifact struct {
	ID          ArtifactID
	Title       string
	Description string
	Position    core.Vec3
	Color       core.Color

	// Optional detail-panel fields.
	Content   string
	TechStack []string
	Link      string
}

// Catalog is an ordered, read-only set of artifacts.
type Catalog struct {
	artifacts []Artifact
	byID      map[ArtifactID]int
}

// New builds a catalog, preserving the given order.
func New(artifacts []Artifact) (*Catalog, error) {
	c := &Catalog{
		artifacts: make([]Artifact, 0, len(artifacts)),
		byID:      make(map[ArtifactID]int, len(artifacts)),
	}
	for _, a := range artifacts {
		if a.ID == "" {
			return nil, fmt.Errorf("%w (title %q)", ErrEmptyID, a.Title)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, a.ID)
		}
		if a.Color == "" {
			a.Color = core.DefaultAccent
		}
		a.TechStack = append([]string(nil), a.TechStack...)
		c.byID[a.ID] = len(c.artifacts)
		c.artifacts = append(c.artifacts, a)
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed tables.
func MustNew(artifacts []Artifact) *Catalog {
	c, err := New(artifacts)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of artifacts.
func (c *Catalog) Len() int {
	return len(c.artifacts)
}

// All returns a copy of the artifacts in catalog order.
func (c *Catalog) All() []Artifact {
	out := make([]Artifact, len(c.artifacts))
	copy(out, c.artifacts)
	return out
}

// Get returns the artifact with the given id.
func (c *Catalog) Get(id ArtifactID) (Artifact, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Artifact{}, false
	}
	return c.artifacts[i], true
}

// Lookup is like Get but returns ErrUnknownArtifact for missing ids.
func (c *Catalog) Lookup(id ArtifactID) (Artifact, error) {
	a, ok := c.Get(id)
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownArtifact, id)
	}
	return a, nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id ArtifactID) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns artifact ids in catalog order.
func (c *Catalog) IDs() []ArtifactID {
	ids := make([]ArtifactID, len(c.artifacts))
	for i, a := range c.artifacts {
		ids[i] = a.ID
	}
	return ids
}
