package character

import (
	"fmt"

	"github.com/Lighty0410/autexousious/internal/object"
)

// Definition is a loaded character: an object definition whose sequences
// cover every character sequence ID.
type Definition struct {
	// Name is the display name from the definition file.
	Name   string
	Object object.Definition
}

// Sequence returns the object sequence for the ID. The ID is known to be
// present on a validated definition.
func (d *Definition) Sequence(id SequenceID) object.Sequence {
	return d.Object.Sequences[string(id)]
}

// Validate checks the underlying object definition and that every
// character sequence is present with known transition targets.
func (d *Definition) Validate() error {
	if err := d.Object.Validate(); err != nil {
		return err
	}
	for _, id := range SequenceIDs {
		if _, ok := d.Object.Sequences[string(id)]; !ok {
			return fmt.Errorf("character: missing sequence %q", id)
		}
	}
	for name := range d.Object.Sequences {
		if _, err := ParseSequenceID(name); err != nil {
			return fmt.Errorf("character: %w", err)
		}
	}
	return nil
}
