package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/aetheria/internal/core"
)

//go:embed defaults/artifacts.yaml
var defaultCatalogYAML []byte

// fileArtifact is the on-disk shape of an artifact.
type fileArtifact struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Content     string    `yaml:"content"`
	TechStack   []string  `yaml:"tech_stack"`
	Link        string    `yaml:"link"`
	Position    []float64 `yaml:"position"`
	Color       string    `yaml:"color"`
}

type fileCatalog struct {
	Artifacts []fileArtifact `yaml:"artifacts"`
}

// Parse validates and decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}

	artifacts := make([]Artifact, 0, len(fc.Artifacts))
	for _, fa := range fc.Artifacts {
		var pos core.Vec3
		if len(fa.Position) == 3 {
			pos = core.V3(fa.Position[0], fa.Position[1], fa.Position[2])
		}
		color := core.DefaultAccent
		if fa.Color != "" {
			c, err := core.ParseHexColor(fa.Color)
			if err != nil {
				return nil, fmt.Errorf("catalog: artifact %q: %w", fa.ID, err)
			}
			color = c
		}
		artifacts = append(artifacts, Artifact{
			ID:          ArtifactID(fa.ID),
			Title:       fa.Title,
			Description: fa.Description,
			Content:     fa.Content,
			TechStack:   fa.TechStack,
			Link:        fa.Link,
			Position:    pos,
			Color:       color,
		})
	}
	return New(artifacts)
}

// Default returns the embedded default catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load loads the artifact catalog.
// Search order: customPath -> ~/.aetheria/configs/artifacts.yaml -> ./configs/artifacts.yaml -> embedded default
func Load(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", customPath, err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", customPath, err)
		}
		return c, nil
	}

	if path := userCatalogPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if c, err := Parse(data); err == nil {
				return c, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/artifacts.yaml"); err == nil {
		if c, err := Parse(data); err == nil {
			return c, nil
		}
	}

	return Default(), nil
}

func userCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aetheria", "configs", "artifacts.yaml")
}
