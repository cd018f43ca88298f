// Package gamemap holds map definitions and the playable-area bounds
// enforcement.
package gamemap

import (
	"fmt"

	"github.com/Lighty0410/autexousious/internal/object"
)

// Margins are the world coordinates of the playable area limits. Bottom
// is the ground plane; Back/Front bound the Z depth lanes.
type Margins struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
	Back   float64 `yaml:"back"`
	Front  float64 `yaml:"front"`
}

// Layer is a decorative map layer. Frames are validated so definitions
// stay renderable, though rendering itself happens elsewhere.
type Layer struct {
	Name   string       `yaml:"name"`
	Frames []LayerFrame `yaml:"frames"`
}

// LayerFrame pairs a wait with a sprite reference.
type LayerFrame struct {
	Wait   int              `yaml:"wait"`
	Sprite object.SpriteRef `yaml:"sprite"`
}

// Definition is an authored map.
type Definition struct {
	Name    string  `yaml:"name"`
	Margins Margins `yaml:"margins"`
	Layers  []Layer `yaml:"layers"`
}

func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("map: name must not be empty")
	}
	m := d.Margins
	if m.Left >= m.Right {
		return fmt.Errorf("map %s: left margin %v must be below right %v", d.Name, m.Left, m.Right)
	}
	if m.Bottom >= m.Top {
		return fmt.Errorf("map %s: bottom margin %v must be below top %v", d.Name, m.Bottom, m.Top)
	}
	if m.Back >= m.Front {
		return fmt.Errorf("map %s: back margin %v must be below front %v", d.Name, m.Back, m.Front)
	}
	for li, layer := range d.Layers {
		if len(layer.Frames) == 0 {
			return fmt.Errorf("map %s: layer %d has no frames", d.Name, li)
		}
		for fi, frame := range layer.Frames {
			if frame.Wait < 0 {
				return fmt.Errorf("map %s: layer %d frame %d has negative wait", d.Name, li, fi)
			}
		}
	}
	return nil
}

// Bound clamps a position to the margins and resolves grounding: X and Z
// clamp hard, Y settles onto the ground plane, zeroing fall velocity.
func (m Margins) Bound(pos *object.Position, vel *object.Velocity) object.Grounding {
	if pos.X < m.Left {
		pos.X = m.Left
	} else if pos.X > m.Right {
		pos.X = m.Right
	}

	grounding := object.OnGround
	if pos.Y > m.Bottom {
		grounding = object.Airborne
		if pos.Y > m.Top {
			pos.Y = m.Top
		}
	} else {
		pos.Y = m.Bottom
		vel.Y = 0
	}

	if pos.Z < m.Back {
		pos.Z = m.Back
	} else if pos.Z > m.Front {
		pos.Z = m.Front
	}

	return grounding
}
