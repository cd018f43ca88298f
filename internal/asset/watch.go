package asset

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads changed definition files into an index between ticks.
// A failed reload keeps the last good definition and logs the error.
type Watcher struct {
	index   *Index
	watcher *fsnotify.Watcher
}

// NewWatcher watches the index's characters and maps namespace
// directories for definition changes.
func NewWatcher(index *Index) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, sub := range []string{charactersDir, mapsDir} {
		root := filepath.Join(index.dir, sub)
		if err := w.Add(root); err != nil {
			_ = w.Close()
			return nil, err
		}
		for _, slug := range namespaces(index, sub) {
			if err := w.Add(filepath.Join(root, slug)); err != nil {
				_ = w.Close()
				return nil, err
			}
		}
	}

	return &Watcher{index: index, watcher: w}, nil
}

func namespaces(index *Index, sub string) []string {
	seen := make(map[string]struct{})
	var slugs []Slug
	if sub == charactersDir {
		slugs = index.CharacterSlugs()
	} else {
		slugs = index.MapSlugs()
	}
	var out []string
	for _, s := range slugs {
		if _, ok := seen[s.Namespace]; !ok {
			seen[s.Namespace] = struct{}{}
			out = append(out, s.Namespace)
		}
	}
	return out
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	// Editors fire bursts of events per save; debounce per path.
	last := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".yaml") {
				continue
			}
			now := time.Now()
			if t, ok := last[ev.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[ev.Name] = now
			w.reload(ev.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Asset watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(path string) {
	rel, err := filepath.Rel(w.index.dir, path)
	if err != nil {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 {
		return
	}
	kind := parts[0]
	slug := Slug{Namespace: parts[1], Name: strings.TrimSuffix(parts[2], ".yaml")}

	switch kind {
	case charactersDir:
		err = w.index.loadCharacter(slug, path)
	case mapsDir:
		err = w.index.loadMap(slug, path)
	default:
		return
	}
	if err != nil {
		slog.Warn("Asset reload failed, keeping previous definition", "asset", slug, "error", err)
		return
	}
	slog.Info("Asset reloaded", "asset", slug)
}
