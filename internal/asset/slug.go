// Package asset indexes and loads the game's authored definitions.
package asset

import (
	"fmt"
	"strings"
)

// Slug addresses an asset as namespace/name, e.g. "default/heat".
type Slug struct {
	Namespace string
	Name      string
}

func (s Slug) String() string {
	return s.Namespace + "/" + s.Name
}

func ParseSlug(raw string) (Slug, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Slug{}, fmt.Errorf("asset: invalid slug %q, want namespace/name", raw)
	}
	return Slug{Namespace: parts[0], Name: parts[1]}, nil
}
