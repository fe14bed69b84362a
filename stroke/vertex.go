package stroke

// OffsetType tags how the shader interprets a vertex's offsets. The
// numeric values are part of the vertex wire format.
type OffsetType uint8

const (
	OffsetEdge OffsetType = iota
	OffsetBevelJoin
	OffsetMiterJoin
	OffsetMiterClipJoin
	OffsetMiterBevelJoin
	OffsetRoundedJoin
	OffsetRoundedCap
	OffsetSquareCap

	// NumOffsetTypes is the number of offset types.
	NumOffsetTypes = iota
)

var offsetTypeNames = [...]string{
	OffsetEdge:           "edge",
	OffsetBevelJoin:      "bevel-join",
	OffsetMiterJoin:      "miter-join",
	OffsetMiterClipJoin:  "miter-clip-join",
	OffsetMiterBevelJoin: "miter-bevel-join",
	OffsetRoundedJoin:    "rounded-join",
	OffsetRoundedCap:     "rounded-cap",
	OffsetSquareCap:      "square-cap",
}

// String returns the offset type name.
func (t OffsetType) String() string {
	if int(t) < len(offsetTypeNames) {
		return offsetTypeNames[t]
	}
	return "unknown"
}

// Vertex is one stroke vertex record.
//
// Boundary vertices are displaced by the stroke radius along Offset in the
// shader; other vertices stay at Position. All values are float32 so that
// encoding to the vertex format is exact.
type Vertex struct {
	Position  Float2
	Offset    Float2
	AuxOffset Float2

	Type       OffsetType
	OnBoundary bool
	Depth      uint32

	// Join is set on all join vertices.
	Join bool
	// EndOfEdge is set on edge vertices at the end of their edge.
	EndOfEdge bool
	// Inner is set on vertices on the concave side of a join.
	Inner bool

	EdgeDistance    float32
	ContourDistance float32
	EdgeLength      float32
	ContourLength   float32
	MiterDistance   float32
}

// PrimitiveKind classifies a primitive.
type PrimitiveKind uint8

const (
	PrimitiveEdge PrimitiveKind = iota
	PrimitiveJoin
	PrimitiveCap
)

// String returns the primitive kind name.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveEdge:
		return "edge"
	case PrimitiveJoin:
		return "join"
	case PrimitiveCap:
		return "cap"
	default:
		return "unknown"
	}
}

// Primitive is one edge, join or cap in a Geometry.
//
// VertexFirst/VertexCount is the range of vertices the primitive owns.
// IndexFirst/IndexCount is its range in Geometry.Indices; the indices are
// absolute into Geometry.Vertices and may reference vertices owned by
// another primitive.
type Primitive struct {
	Kind  PrimitiveKind
	Cap   CapStyle
	Join  JoinStyle
	Depth uint32

	VertexFirst, VertexCount int
	IndexFirst, IndexCount   int
}

// Geometry is the output of a Builder.
type Geometry struct {
	Vertices   []Vertex
	Indices    []uint32
	Primitives []Primitive
}

// Reset empties g, keeping its storage.
func (g *Geometry) Reset() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
	g.Primitives = g.Primitives[:0]
}

// Empty reports whether g has no primitives.
func (g *Geometry) Empty() bool {
	return len(g.Primitives) == 0
}

// PrimitiveVertices returns the vertices owned by p.
func (g *Geometry) PrimitiveVertices(p Primitive) []Vertex {
	return g.Vertices[p.VertexFirst : p.VertexFirst+p.VertexCount]
}

// PrimitiveIndices returns the triangle indices of p.
func (g *Geometry) PrimitiveIndices(p Primitive) []uint32 {
	return g.Indices[p.IndexFirst : p.IndexFirst+p.IndexCount]
}

// Clone returns a deep copy of g.
func (g *Geometry) Clone() *Geometry {
	return &Geometry{
		Vertices:   append([]Vertex(nil), g.Vertices...),
		Indices:    append([]uint32(nil), g.Indices...),
		Primitives: append([]Primitive(nil), g.Primitives...),
	}
}
