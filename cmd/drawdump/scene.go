package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack"
	"github.com/gogpu/drawpack/chunk"
	"github.com/gogpu/drawpack/stroke"
	"github.com/gogpu/drawpack/vertex"
)

var errScene = errors.New("drawdump: invalid scene")

// Scene is the YAML description of one frame.
type Scene struct {
	Strokes []StrokeItem `yaml:"strokes"`
	Fills   []FillItem   `yaml:"fills"`
	Glyphs  []GlyphItem  `yaml:"glyphs"`
}

// StrokeItem is one stroked path. Angles are in degrees.
type StrokeItem struct {
	ID         uint64        `yaml:"id"`
	Radius     float64       `yaml:"radius"`
	Join       string        `yaml:"join"`
	Cap        string        `yaml:"cap"`
	MiterLimit float64       `yaml:"miter_limit"`
	Closed     bool          `yaml:"closed"`
	Dashed     bool          `yaml:"dashed"`
	Segments   []SegmentItem `yaml:"segments"`
}

// SegmentItem holds exactly one of Line or Arc.
type SegmentItem struct {
	Line *[2][2]float64 `yaml:"line"`
	Arc  *ArcItem       `yaml:"arc"`
}

// ArcItem is a circular arc.
type ArcItem struct {
	Center [2]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
	Start  float64    `yaml:"start"`
	Sweep  float64    `yaml:"sweep"`
}

// FillItem is a triangulated fill. Windings maps a winding number to the
// triangles (indices into Points) with that winding.
type FillItem struct {
	Rule     string           `yaml:"rule"`
	Points   [][2]float32     `yaml:"points"`
	Windings map[int][]uint32 `yaml:"windings"`
}

// GlyphItem is one positioned glyph. Bounds is min x, min y, max x,
// max y in pixels relative to Origin.
type GlyphItem struct {
	ID     uint16 `yaml:"id"`
	Origin [2]int `yaml:"origin"`
	Bounds [4]int `yaml:"bounds"`
	Render string `yaml:"render"`
	Atlas  uint32 `yaml:"atlas"`
}

func loadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errScene, path, err)
	}
	return &s, nil
}

func lookup[T interface {
	~uint8
	String() string
}](kind, name string, def T, n int) (T, error) {
	if name == "" {
		return def, nil
	}
	for i := range n {
		if v := T(i); v.String() == name {
			return v, nil
		}
	}
	return def, fmt.Errorf("%w: unknown %s %q", errScene, kind, name)
}

func (it StrokeItem) contour() (drawpack.PathID, []stroke.Contour, stroke.Style, error) {
	join, err := lookup("join", it.Join, stroke.JoinMiter, int(stroke.JoinNone)+1)
	if err != nil {
		return 0, nil, stroke.Style{}, err
	}
	cs, err := lookup("cap", it.Cap, stroke.CapButt, stroke.NumCapStyles)
	if err != nil {
		return 0, nil, stroke.Style{}, err
	}

	c := stroke.Contour{Closed: it.Closed}
	for i, seg := range it.Segments {
		switch {
		case seg.Line != nil && seg.Arc == nil:
			l := seg.Line
			c.Segments = append(c.Segments, stroke.Line(
				vec.Vec2{X: l[0][0], Y: l[0][1]}, vec.Vec2{X: l[1][0], Y: l[1][1]}))
		case seg.Arc != nil && seg.Line == nil:
			a := seg.Arc
			c.Segments = append(c.Segments, stroke.Arc(vec.Vec2{X: a.Center[0], Y: a.Center[1]},
				a.Radius, a.Start*math.Pi/180, a.Sweep*math.Pi/180))
		default:
			return 0, nil, stroke.Style{}, fmt.Errorf("%w: stroke %d segment %d needs one of line or arc", errScene, it.ID, i)
		}
	}

	style := stroke.Style{
		Radius:     it.Radius,
		Join:       join,
		Cap:        cs,
		MiterLimit: it.MiterLimit,
		Dashed:     it.Dashed,
	}
	return drawpack.PathID(it.ID), []stroke.Contour{c}, style, nil
}

// fillInput derives the fill rule index arrays from the winding
// triangles.
func (it FillItem) fillInput() (chunk.FillInput, chunk.FillRule, error) {
	rule, err := lookup("fill rule", it.Rule, chunk.FillNonzero, chunk.NumFillRules)
	if err != nil {
		return chunk.FillInput{}, 0, err
	}

	in := chunk.FillInput{Points: make([]vertex.Float2, len(it.Points))}
	for i, p := range it.Points {
		in.Points[i] = vertex.Float2{X: p[0], Y: p[1]}
	}
	for w := range it.Windings {
		in.Windings = append(in.Windings, w)
	}
	slices.Sort(in.Windings)

	for _, w := range in.Windings {
		idx := it.Windings[w]
		if len(idx)%3 != 0 {
			return chunk.FillInput{}, 0, fmt.Errorf("%w: winding %d has %d indices", errScene, w, len(idx))
		}
		for _, i := range idx {
			if int(i) >= len(in.Points) {
				return chunk.FillInput{}, 0, fmt.Errorf("%w: winding %d index %d out of range", errScene, w, i)
			}
		}
		in.WindingIndices = append(in.WindingIndices, idx)

		odd := w%2 != 0
		nonzero := w != 0
		if odd {
			in.RuleIndices[chunk.FillOddEven] = append(in.RuleIndices[chunk.FillOddEven], idx...)
		} else {
			in.RuleIndices[chunk.FillComplementOddEven] = append(in.RuleIndices[chunk.FillComplementOddEven], idx...)
		}
		if nonzero {
			in.RuleIndices[chunk.FillNonzero] = append(in.RuleIndices[chunk.FillNonzero], idx...)
		} else {
			in.RuleIndices[chunk.FillComplementNonzero] = append(in.RuleIndices[chunk.FillComplementNonzero], idx...)
		}
	}
	return in, rule, nil
}

func (it GlyphItem) glyph() (vertex.Glyph, error) {
	render, err := lookup("render type", it.Render, vertex.GlyphCoverage, vertex.NumGlyphRenderTypes)
	if err != nil {
		return vertex.Glyph{}, err
	}
	return vertex.Glyph{
		ID:     font.GID(it.ID),
		Origin: fixed.P(it.Origin[0], it.Origin[1]),
		Bounds: fixed.R(it.Bounds[0], it.Bounds[1], it.Bounds[2], it.Bounds[3]),
		Atlas:  it.Atlas,
		Render: render,
	}, nil
}
