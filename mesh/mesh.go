// Package mesh converts shape records into triangle geometry. Lines become
// oriented low-poly cylinder segments, circles become icosahedra; vertices
// carry the growth age so a renderer can animate and color by age.
package mesh

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/nmoller/verdant/types"
)

// cylinderResolution is the number of vertices per ring. Three is enough at
// wallpaper scale and keeps plant meshes small.
const cylinderResolution = 3

// minSegment is the shortest segment that still produces geometry. Shorter
// segments have no stable direction for the rotation arc.
const minSegment = 1e-6

// AgeVertex is a mesh vertex tagged with the growth age of the shape record
// it came from.
type AgeVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Age      float32
	Color    [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []AgeVertex
	Indices  []uint32
}

type template struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	indices   []uint32
}

var (
	cylinderOnce sync.Once
	cylinderTmpl template
)

// cylinderTemplate returns the unit cylinder, built once. Bottom ring first,
// then the top ring, spanning y in [-0.5, 0.5].
func cylinderTemplate() *template {
	cylinderOnce.Do(func() {
		res := cylinderResolution
		for i := 0; i < res; i++ {
			ratio := float64(i) / float64(res)
			r := ratio * 2 * math.Pi
			x := float32(math.Cos(r))
			z := float32(math.Sin(r))
			normal := mgl32.Vec3{x, 0, z}.Normalize()
			cylinderTmpl.positions = append(cylinderTmpl.positions, mgl32.Vec3{x, -0.5, z})
			cylinderTmpl.normals = append(cylinderTmpl.normals, normal)
		}
		for i := 0; i < res; i++ {
			cylinderTmpl.positions = append(cylinderTmpl.positions,
				mgl32.Vec3{cylinderTmpl.positions[i].X(), 0.5, cylinderTmpl.positions[i].Z()})
			cylinderTmpl.normals = append(cylinderTmpl.normals, cylinderTmpl.normals[i])
		}
		for i := 0; i < res; i++ {
			j := uint32(res + i)
			k := uint32((i + 1) % res)
			l := uint32(res + (i+1)%res)
			cylinderTmpl.indices = append(cylinderTmpl.indices,
				uint32(i), j, k,
				j, l, k)
		}
	})
	return &cylinderTmpl
}

// Icosahedron geometry, radius 1.
var icoVertices = func() []mgl32.Vec3 {
	const x, z, n = 0.5257311, 0.8506508, 0.0
	return []mgl32.Vec3{
		{-x, n, z}, {x, n, z}, {-x, n, -z}, {x, n, -z},
		{n, z, x}, {n, z, -x}, {n, -z, x}, {n, -z, -x},
		{z, x, n}, {-z, x, n}, {z, -x, n}, {-z, -x, n},
	}
}()

var icoTriangles = [][3]uint32{
	{0, 4, 1}, {0, 9, 4}, {9, 5, 4}, {4, 5, 8}, {4, 8, 1},
	{8, 10, 1}, {8, 3, 10}, {5, 3, 8}, {5, 2, 3}, {2, 7, 3},
	{7, 10, 3}, {7, 6, 10}, {7, 11, 6}, {11, 0, 6}, {0, 1, 6},
	{6, 1, 10}, {9, 0, 11}, {9, 11, 2}, {9, 2, 5}, {7, 2, 11},
}

// FromShapes meshes a full shape record list. Scope markers carry no
// geometry and are skipped. Degenerate line segments are skipped too.
func FromShapes(shapes []types.RenderShape, cfg *types.RenderConfig) *Mesh {
	m := &Mesh{}
	for _, s := range shapes {
		switch s.Kind {
		case types.RenderLine:
			m.appendLine(s, cfg.WidthMod)
		case types.RenderCircle:
			m.appendCircle(s)
		}
	}
	return m
}

// appendLine emits an oriented cylinder segment. The unit cylinder is scaled
// to the segment, rotated from +Y onto the segment direction, and moved to
// the midpoint. The bottom ring carries the age at the start of the segment,
// the top ring the age at its end.
func (m *Mesh) appendLine(s types.RenderShape, widthMod float32) {
	diff := s.End.Sub(s.Start)
	length := diff.Len()
	if length < minSegment {
		return
	}

	width := s.Width * length * 0.01 * widthMod
	rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, diff.Normalize())
	mat := mgl32.Translate3D(
		s.Start.X()+diff.X()*0.5,
		s.Start.Y()+diff.Y()*0.5,
		s.Start.Z()+diff.Z()*0.5,
	).Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(width, length, width))

	tmpl := cylinderTemplate()
	base := uint32(len(m.Vertices))
	for i, p := range tmpl.positions {
		age := s.LastAge
		if i >= cylinderResolution {
			age = s.Age
		}
		m.Vertices = append(m.Vertices, AgeVertex{
			Position: mat.Mul4x1(p.Vec4(1)).Vec3(),
			Normal:   rot.Rotate(tmpl.normals[i]),
			Age:      age,
			Color:    s.Color,
		})
	}
	for _, idx := range tmpl.indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// appendCircle emits a scaled icosahedron at the record position.
func (m *Mesh) appendCircle(s types.RenderShape) {
	mat := mgl32.Translate3D(s.Pos.X(), s.Pos.Y(), s.Pos.Z()).
		Mul4(mgl32.Scale3D(s.Size, s.Size, s.Size))

	base := uint32(len(m.Vertices))
	for _, v := range icoVertices {
		m.Vertices = append(m.Vertices, AgeVertex{
			Position: mat.Mul4x1(v.Vec4(1)).Vec3(),
			Normal:   v.Normalize(),
			Age:      s.Age,
			Color:    s.Color,
		})
	}
	for _, tri := range icoTriangles {
		m.Indices = append(m.Indices, base+tri[0], base+tri[1], base+tri[2])
	}
}
