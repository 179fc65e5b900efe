package geometry

import (
	"github.com/chewxy/math32"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// Triangulate splits every polygon into triangles over its own loops.
// An N-gon yields N-2 triangles. Polygons with fewer than 3 loops yield
// none. No loops are added.
func Triangulate(positions []gmath.Vec3, loops []Loop, polys []Polygon) []Triangle {
	count := 0
	for _, p := range polys {
		if p.LoopTotal >= 3 {
			count += p.LoopTotal - 2
		}
	}

	tris := make([]Triangle, 0, count)
	var pts []gmath.Vec3
	for _, p := range polys {
		if p.LoopTotal < 3 {
			continue
		}

		pts = pts[:0]
		for l := p.LoopStart; l < p.LoopStart+p.LoopTotal; l++ {
			pts = append(pts, positions[loops[l].Vertex])
		}

		for _, t := range TriangulatePolygon(pts) {
			tris = append(tris, Triangle{Loops: [3]uint32{
				uint32(p.LoopStart + t[0]),
				uint32(p.LoopStart + t[1]),
				uint32(p.LoopStart + t[2]),
			}})
		}
	}
	return tris
}

// TriangulatePolygon returns triangles as corner indices into pts, keeping
// the polygon's winding. Convex polygons come out as a fan from corner 0.
// Concave polygons are ear clipped in the plane of their Newell normal.
// When no ear can be found (degenerate or self-intersecting input) the
// remaining corners are fanned so the result always has len(pts)-2 entries.
func TriangulatePolygon(pts []gmath.Vec3) [][3]int {
	n := len(pts)
	switch {
	case n < 3:
		return nil
	case n == 3:
		return [][3]int{{0, 1, 2}}
	}

	proj := projectToPlane(pts, newellNormal(pts))
	area := signedArea(proj)
	if area == 0 {
		return fan(identityOrder(n))
	}
	orient := float32(1)
	if area < 0 {
		orient = -1
	}

	remaining := identityOrder(n)
	tris := make([][3]int, 0, n-2)
	for len(remaining) > 3 {
		m := len(remaining)
		clipped := false
		// Start at corner 1 so convex input produces the fan (0,1,2), (0,2,3), ...
		for k := 0; k < m; k++ {
			i := (k + 1) % m
			prev, cur, next := remaining[(i+m-1)%m], remaining[i], remaining[(i+1)%m]
			if !isEar(proj, remaining, prev, cur, next, orient) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return append(tris, fan(remaining)...)
		}
	}
	return append(tris, [3]int{remaining[0], remaining[1], remaining[2]})
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func fan(order []int) [][3]int {
	tris := make([][3]int, 0, len(order)-2)
	for i := 1; i+1 < len(order); i++ {
		tris = append(tris, [3]int{order[0], order[i], order[i+1]})
	}
	return tris
}

// newellNormal is robust for non-planar and concave polygons. Corners are
// taken relative to pts[0] to keep far-from-origin input precise.
func newellNormal(pts []gmath.Vec3) gmath.Vec3 {
	var n gmath.Vec3
	origin := pts[0]
	for i := 1; i+1 < len(pts); i++ {
		n = n.Add(pts[i].Sub(origin).Cross(pts[i+1].Sub(origin)))
	}
	return n
}

// projectToPlane drops the dominant axis of normal.
func projectToPlane(pts []gmath.Vec3, normal gmath.Vec3) []gmath.Vec2 {
	ax, ay, az := math32.Abs(normal.X), math32.Abs(normal.Y), math32.Abs(normal.Z)

	out := make([]gmath.Vec2, len(pts))
	for i, p := range pts {
		switch {
		case az >= ax && az >= ay:
			out[i] = gmath.Vec2{X: p.X, Y: p.Y}
		case ax >= ay:
			out[i] = gmath.Vec2{X: p.Y, Y: p.Z}
		default:
			out[i] = gmath.Vec2{X: p.Z, Y: p.X}
		}
	}
	return out
}

// signedArea is twice the signed area; positive for counter-clockwise.
func signedArea(pts []gmath.Vec2) float32 {
	var a float32
	for i, cur := range pts {
		a += cur.Cross(pts[(i+1)%len(pts)])
	}
	return a
}

func isEar(proj []gmath.Vec2, remaining []int, prev, cur, next int, orient float32) bool {
	a, b, c := proj[prev], proj[cur], proj[next]
	if b.Sub(a).Cross(c.Sub(b))*orient <= 0 {
		return false // reflex or collinear
	}
	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		p := proj[idx]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c, orient) {
			return false
		}
	}
	return true
}

// inTriangle includes points on the edges.
func inTriangle(p, a, b, c gmath.Vec2, orient float32) bool {
	return b.Sub(a).Cross(p.Sub(a))*orient >= 0 &&
		c.Sub(b).Cross(p.Sub(b))*orient >= 0 &&
		a.Sub(c).Cross(p.Sub(c))*orient >= 0
}
