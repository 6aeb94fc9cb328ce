// Package export writes generated dungeons as plain text or YAML.
package export

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonplot/internal/populate"
	"github.com/samdwyer/dungeonplot/internal/world"
)

// Document is the YAML form of a generated dungeon.
type Document struct {
	Seed         int64       `yaml:"seed"`
	Theme        string      `yaml:"theme"`
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	Rooms        []RoomYAML  `yaml:"rooms"`
	Spawn        *PointYAML  `yaml:"spawn,omitempty,flow"`
	Collectibles []PointYAML `yaml:"collectibles,omitempty"`
	Rows         []string    `yaml:"rows"`
}

// RoomYAML describes one room.
type RoomYAML struct {
	Origin PointYAML `yaml:"origin,flow"`
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Center PointYAML `yaml:"center,flow"`
}

// PointYAML is a grid coordinate.
type PointYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func point(p world.Point) PointYAML {
	return PointYAML{X: p.X, Y: p.Y}
}

// NewDocument builds a Document from a generated dungeon. layout may be nil
// when nothing was populated.
func NewDocument(d *world.Dungeon, themeID string, layout *populate.Layout) *Document {
	doc := &Document{
		Seed:   d.Stats.Seed,
		Theme:  themeID,
		Width:  d.Width,
		Height: d.Height,
		Rooms:  make([]RoomYAML, 0, len(d.Rooms)),
		Rows:   make([]string, 0, d.Height),
	}
	for _, r := range d.Rooms {
		doc.Rooms = append(doc.Rooms, RoomYAML{
			Origin: PointYAML{X: r.X, Y: r.Y},
			Width:  r.Width,
			Height: r.Height,
			Center: point(r.CenterPoint()),
		})
	}
	if layout != nil {
		spawn := point(layout.Spawn)
		doc.Spawn = &spawn
		for _, p := range layout.Collectibles {
			doc.Collectibles = append(doc.Collectibles, point(p))
		}
	}
	for y := 0; y < d.Grid.Height(); y++ {
		doc.Rows = append(doc.Rows, d.Grid.Row(y))
	}
	return doc
}

// WriteText prints the grid one row per line, top to bottom.
func WriteText(w io.Writer, g *world.Grid) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height(); y++ {
		if _, err := bw.WriteString(g.Row(y)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteYAML writes doc preceded by a comment header.
func WriteYAML(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Dungeon %dx%d - %s theme\n", doc.Width, doc.Height, doc.Theme)
	fmt.Fprintf(bw, "# Generated with seed: %d\n", doc.Seed)
	fmt.Fprintf(bw, "# Room count: %d\n\n", len(doc.Rooms))

	encoder := yaml.NewEncoder(bw)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return bw.Flush()
}
