package character

import (
	"strings"
	"testing"

	"github.com/Lighty0410/autexousious/internal/object"
)

// minimalDefinition builds a definition with every required sequence,
// each a single frame.
func minimalDefinition() *Definition {
	seqs := make(map[string]object.Sequence, len(SequenceIDs))
	for _, id := range SequenceIDs {
		seqs[string(id)] = object.Sequence{Frames: []object.Frame{{Wait: 1}}}
	}
	return &Definition{Name: "test", Object: object.Definition{Sequences: seqs}}
}

func TestDefinitionValidate(t *testing.T) {
	def := minimalDefinition()
	if err := def.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestDefinitionValidateMissingSequence(t *testing.T) {
	def := minimalDefinition()
	delete(def.Object.Sequences, string(SequenceDazed))

	err := def.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "dazed") {
		t.Errorf("error %q does not name the missing sequence", err)
	}
}

func TestDefinitionValidateUnknownSequence(t *testing.T) {
	def := minimalDefinition()
	def.Object.Sequences["moonwalk"] = object.Sequence{Frames: []object.Frame{{}}}

	err := def.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "moonwalk") {
		t.Errorf("error %q does not name the unknown sequence", err)
	}
}

func TestParseSequenceID(t *testing.T) {
	id, err := ParseSequenceID("jump_descend_land")
	if err != nil {
		t.Fatalf("ParseSequenceID() error = %v", err)
	}
	if id != SequenceJumpDescendLand {
		t.Errorf("ParseSequenceID() = %s, want %s", id, SequenceJumpDescendLand)
	}

	if _, err := ParseSequenceID("cartwheel"); err == nil {
		t.Error("ParseSequenceID(cartwheel) = nil error, want error")
	}
}
