package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Lighty0410/autexousious/internal/character"
	"github.com/Lighty0410/autexousious/internal/gamemap"
	"github.com/Lighty0410/autexousious/internal/object"
)

// Asset directory layout:
//
//	<dir>/characters/<namespace>/<name>.yaml
//	<dir>/maps/<namespace>/<name>.yaml
const (
	charactersDir = "characters"
	mapsDir       = "maps"
)

// characterFile is the on-disk shape of a character definition.
type characterFile struct {
	Name   string            `yaml:"name"`
	Object object.Definition `yaml:"object"`
}

// Index holds every loaded definition. Loading is eager and any failure
// aborts: the game never proceeds past loading with partial assets.
type Index struct {
	dir string

	mu         sync.RWMutex
	characters map[Slug]*character.Definition
	maps       map[Slug]*gamemap.Definition
}

// LoadIndex scans dir and loads all character and map definitions.
func LoadIndex(dir string) (*Index, error) {
	idx := &Index{
		dir:        dir,
		characters: make(map[Slug]*character.Definition),
		maps:       make(map[Slug]*gamemap.Definition),
	}

	if err := idx.scan(filepath.Join(dir, charactersDir), idx.loadCharacter); err != nil {
		return nil, err
	}
	if err := idx.scan(filepath.Join(dir, mapsDir), idx.loadMap); err != nil {
		return nil, err
	}

	if len(idx.characters) == 0 {
		return nil, fmt.Errorf("asset: no characters found under %s", dir)
	}
	if len(idx.maps) == 0 {
		return nil, fmt.Errorf("asset: no maps found under %s", dir)
	}
	return idx, nil
}

func (idx *Index) scan(root string, load func(slug Slug, path string) error) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	for _, ns := range entries {
		if !ns.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, ns.Name()))
		if err != nil {
			return fmt.Errorf("asset: %w", err)
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
				continue
			}
			slug := Slug{Namespace: ns.Name(), Name: strings.TrimSuffix(f.Name(), ".yaml")}
			if err := load(slug, filepath.Join(root, ns.Name(), f.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (idx *Index) loadCharacter(slug Slug, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("asset: read %s: %w", slug, err)
	}
	var file characterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("asset: parse character %s: %w", slug, err)
	}
	file.Object.Normalize()
	def := &character.Definition{Name: file.Name, Object: file.Object}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("asset: character %s: %w", slug, err)
	}

	idx.mu.Lock()
	idx.characters[slug] = def
	idx.mu.Unlock()
	return nil
}

func (idx *Index) loadMap(slug Slug, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("asset: read %s: %w", slug, err)
	}
	var def gamemap.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("asset: parse map %s: %w", slug, err)
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("asset: map %s: %w", slug, err)
	}

	idx.mu.Lock()
	idx.maps[slug] = &def
	idx.mu.Unlock()
	return nil
}

func (idx *Index) Character(slug Slug) (*character.Definition, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	def, ok := idx.characters[slug]
	return def, ok
}

func (idx *Index) Map(slug Slug) (*gamemap.Definition, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	def, ok := idx.maps[slug]
	return def, ok
}

// CharacterSlugs returns the indexed character slugs, unordered.
func (idx *Index) CharacterSlugs() []Slug {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	slugs := make([]Slug, 0, len(idx.characters))
	for s := range idx.characters {
		slugs = append(slugs, s)
	}
	return slugs
}

// MapSlugs returns the indexed map slugs, unordered.
func (idx *Index) MapSlugs() []Slug {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	slugs := make([]Slug, 0, len(idx.maps))
	for s := range idx.maps {
		slugs = append(slugs, s)
	}
	return slugs
}
