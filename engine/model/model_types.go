package model

import (
	"github.com/chewxy/math32"
)

// MeshData is CPU-side indexed triangle geometry.
type MeshData struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// BoundingRadius returns the largest vertex distance from the origin.
func (m MeshData) BoundingRadius() float32 {
	var r float32
	for _, v := range m.Vertices {
		p := v.Position
		r = max(r, math32.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]))
	}
	return r
}

// Plane returns a width×height rectangle centered on the origin in the XY plane, facing +Z.
func Plane(width, height float32) MeshData {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return MeshData{
		Vertices: []GPUVertex{
			{Position: [3]float32{-hw, hh, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{hw, hh, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{-hw, -hh, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
			{Position: [3]float32{hw, -hh, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
		},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}
}

var (
	icoT = (1 + math32.Sqrt(5)) / 2

	icoVertices = [12][3]float32{
		{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
		{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
		{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
	}

	icoFaces = [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron returns a subdivided icosahedron projected onto a sphere of the given radius.
// Each of the 20 faces is split into (detail+1)² triangles; detail 0 is the plain icosahedron.
// Vertices are shared within a face but not across faces, so normals stay smooth while
// UV seams remain per face.
func Icosahedron(radius float32, detail int) MeshData {
	detail = max(detail, 0)
	cols := detail + 1
	perFace := (cols + 1) * (cols + 2) / 2

	mesh := MeshData{
		Vertices: make([]GPUVertex, 0, 20*perFace),
		Indices:  make([]uint32, 0, 20*cols*cols*3),
	}

	for _, f := range icoFaces {
		a, b, c := icoVertices[f[0]], icoVertices[f[1]], icoVertices[f[2]]
		base := uint32(len(mesh.Vertices))

		// grid[i][j] indexes the face-local vertex at row i (toward c), column j.
		grid := make([][]uint32, cols+1)
		next := base
		for i := 0; i <= cols; i++ {
			rows := cols - i
			aj := lerp3(a, c, float32(i)/float32(cols))
			bj := lerp3(b, c, float32(i)/float32(cols))
			grid[i] = make([]uint32, rows+1)
			for j := 0; j <= rows; j++ {
				p := aj
				if rows > 0 {
					p = lerp3(aj, bj, float32(j)/float32(rows))
				}
				mesh.Vertices = append(mesh.Vertices, sphereVertex(p, radius))
				grid[i][j] = next
				next++
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					mesh.Indices = append(mesh.Indices, grid[i][k+1], grid[i+1][k], grid[i][k])
				} else {
					mesh.Indices = append(mesh.Indices, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
				}
			}
		}
	}
	return mesh
}

func sphereVertex(p [3]float32, radius float32) GPUVertex {
	l := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	n := [3]float32{p[0] / l, p[1] / l, p[2] / l}
	u := math32.Atan2(n[2], -n[0])/(2*math32.Pi) + 0.5
	v := 0.5 - math32.Asin(clampUnit(n[1]))/math32.Pi
	return GPUVertex{
		Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
		Normal:   n,
		TexCoord: [2]float32{u, v},
	}
}

// clampUnit clamps to [-1, 1] so Asin never sees rounding overshoot.
func clampUnit(x float32) float32 {
	return min(max(x, -1), 1)
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
