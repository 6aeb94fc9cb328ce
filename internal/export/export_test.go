package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonplot/internal/populate"
	"github.com/samdwyer/dungeonplot/internal/world"
)

func populated(t *testing.T, seed int64) (*world.Dungeon, *populate.Layout) {
	t.Helper()
	theme := populate.DefaultTheme()
	d := world.NewDungeon(world.DefaultWidth, world.DefaultHeight, theme, world.NewSource(seed))
	if err := d.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	layout, err := populate.Populate(context.Background(), d, theme)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return d, layout
}

func TestWriteText(t *testing.T) {
	d, _ := populated(t, 42)

	var buf bytes.Buffer
	if err := WriteText(&buf, d.Grid); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if buf.String() != d.Grid.String() {
		t.Errorf("text output differs from grid")
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != world.DefaultHeight {
		t.Errorf("got %d lines, want %d", len(lines), world.DefaultHeight)
	}
	if !strings.Contains(buf.String(), "@") {
		t.Error("occupant missing from text output")
	}
}

func TestWriteYAML(t *testing.T) {
	d, layout := populated(t, 42)
	doc := NewDocument(d, "classic", layout)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, doc); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Dungeon 60x40 - classic theme\n",
		"# Generated with seed: 42\n",
		"# Room count: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}

	var got Document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if got.Seed != 42 || got.Width != 60 || got.Height != 40 {
		t.Errorf("got seed=%d %dx%d", got.Seed, got.Width, got.Height)
	}
	if len(got.Rooms) != len(d.Rooms) {
		t.Fatalf("got %d rooms, want %d", len(got.Rooms), len(d.Rooms))
	}
	for i, r := range d.Rooms {
		cx, cy := r.Center()
		gr := got.Rooms[i]
		if gr.Origin.X != r.X || gr.Origin.Y != r.Y || gr.Width != r.Width || gr.Height != r.Height {
			t.Errorf("room %d = %+v, want %+v", i, gr, r)
		}
		if gr.Center.X != cx || gr.Center.Y != cy {
			t.Errorf("room %d center = %+v, want (%d,%d)", i, gr.Center, cx, cy)
		}
	}
	if got.Spawn == nil || got.Spawn.X != layout.Spawn.X || got.Spawn.Y != layout.Spawn.Y {
		t.Errorf("spawn = %+v, want %v", got.Spawn, layout.Spawn)
	}
	if len(got.Collectibles) != len(layout.Collectibles) {
		t.Errorf("got %d collectibles, want %d", len(got.Collectibles), len(layout.Collectibles))
	}
	// Rows keep their leading and trailing background cells.
	for y, row := range got.Rows {
		if row != d.Grid.Row(y) {
			t.Errorf("row %d = %q, want %q", y, row, d.Grid.Row(y))
		}
	}
}

func TestNewDocumentWithoutLayout(t *testing.T) {
	d, _ := populated(t, 7)
	doc := NewDocument(d, "classic", nil)

	var buf bytes.Buffer
	if err := WriteYAML(&buf, doc); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if strings.Contains(buf.String(), "spawn:") || strings.Contains(buf.String(), "collectibles:") {
		t.Errorf("unpopulated document should omit spawn and collectibles:\n%s", buf.String())
	}
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWritersReportErrors(t *testing.T) {
	d, layout := populated(t, 42)

	if err := WriteYAML(failingWriter{}, NewDocument(d, "classic", layout)); err == nil {
		t.Error("WriteYAML ignored a write error")
	}
	if err := WriteText(failingWriter{}, d.Grid); !errors.Is(err, errDiskFull) {
		t.Errorf("WriteText error = %v, want %v", err, errDiskFull)
	}
}
