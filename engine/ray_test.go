package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

type testGrid [][]int

func (g testGrid) Width() int  { return len(g[0]) }
func (g testGrid) Height() int { return len(g) }
func (g testGrid) TileAt(col, row int) int {
	if col < 0 || row < 0 || row >= len(g) || col >= len(g[0]) {
		return 0
	}
	return g[row][col]
}

func borderedGrid(w, h int) testGrid {
	g := make(testGrid, h)
	for row := range g {
		g[row] = make([]int, w)
		for col := range g[row] {
			if row == 0 || col == 0 || row == h-1 || col == w-1 {
				g[row][col] = 1
			}
		}
	}
	return g
}

func TestCastRayEastInBorderedRoom(t *testing.T) {
	g := borderedGrid(10, 10)
	r := CastRay(g, geom.Vector2{X: 2, Y: 2}, geom.Vector2{X: 1, Y: 0})

	if !r.Hit {
		t.Fatal("expected a hit")
	}
	if r.MapX != 9 || r.MapY != 2 {
		t.Errorf("hit cell = (%d, %d), want (9, 2)", r.MapX, r.MapY)
	}
	if math.Abs(r.PerpDist-7) > 1e-9 {
		t.Errorf("PerpDist = %v, want 7", r.PerpDist)
	}
	if r.Side != SideVertical {
		t.Errorf("Side = %v, want vertical", r.Side)
	}
	if math.Abs(r.HitPoint.X-9) > 1e-9 {
		t.Errorf("HitPoint.X = %v, want 9", r.HitPoint.X)
	}
	if r.Material != 1 {
		t.Errorf("Material = %d, want 1", r.Material)
	}
}

func TestCastRayMatchesStraightWalk(t *testing.T) {
	for n := 1; n <= 8; n++ {
		w := n + 3
		g := borderedGrid(w, 5)
		origin := geom.Vector2{X: 1.25, Y: 2.5}
		r := CastRay(g, origin, geom.Vector2{X: 1, Y: 0})
		// the east wall is column w-1, its face at x = w-1
		want := float64(w-1) - origin.X
		if math.Abs(r.PerpDist-want) > 1e-9 {
			t.Errorf("n=%d: PerpDist = %v, want %v", n, r.PerpDist, want)
		}

		r = CastRay(g, geom.Vector2{X: float64(w) - 1.75, Y: 2.5}, geom.Vector2{X: -1, Y: 0})
		want = float64(w) - 1.75 - 1
		if math.Abs(r.PerpDist-want) > 1e-9 {
			t.Errorf("n=%d west: PerpDist = %v, want %v", n, r.PerpDist, want)
		}
	}
}

// bruteForce marches along dir in tiny steps until it enters a solid cell
func bruteForce(g Grid, origin, dir geom.Vector2, dt float64) float64 {
	l := math.Hypot(dir.X, dir.Y)
	ux, uy := dir.X/l, dir.Y/l
	for t := 0.0; t < 64; t += dt {
		x, y := origin.X+ux*t, origin.Y+uy*t
		col, row := int(math.Floor(x)), int(math.Floor(y))
		if col < 0 || row < 0 || col >= g.Width() || row >= g.Height() || g.TileAt(col, row) != 0 {
			return t
		}
	}
	return math.Inf(1)
}

func TestCastRayAgreesWithBruteForce(t *testing.T) {
	g := borderedGrid(16, 16)
	g[5][7] = 2
	g[10][3] = 3
	g[8][12] = 4

	rng := rand.New(rand.NewSource(42))
	const dt = 1e-4
	for i := 0; i < 100; i++ {
		origin := geom.Vector2{X: 1 + rng.Float64()*14, Y: 1 + rng.Float64()*14}
		col, row := int(origin.X), int(origin.Y)
		if g.TileAt(col, row) != 0 {
			continue
		}
		angle := rng.Float64() * 2 * math.Pi
		dir := geom.Vector2{X: math.Cos(angle), Y: math.Sin(angle)}

		r := CastRay(g, origin, dir)
		got := r.PerpDist * math.Hypot(dir.X, dir.Y)
		want := bruteForce(g, origin, dir, dt)
		if math.Abs(got-want) > 3*dt {
			t.Errorf("ray %d from %+v angle %.4f: DDA distance %v, brute force %v", i, origin, angle, got, want)
		}
	}
}

func TestCastRayLeavingGrid(t *testing.T) {
	g := testGrid{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}
	r := CastRay(g, geom.Vector2{X: 2.5, Y: 1.5}, geom.Vector2{X: 1, Y: 0})
	if r.Hit {
		t.Error("ray through an open grid should not report a hit")
	}
	if r.Material != 0 {
		t.Errorf("Material = %d, want 0", r.Material)
	}
	if math.Abs(r.PerpDist-2.5) > 1e-9 {
		t.Errorf("PerpDist = %v, want 2.5", r.PerpDist)
	}
}

func TestCastRayDegenerateDirections(t *testing.T) {
	g := borderedGrid(8, 8)
	for _, dir := range []geom.Vector2{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 0, Y: 0}} {
		r := CastRay(g, geom.Vector2{X: 3.5, Y: 3.5}, dir)
		if math.IsNaN(r.PerpDist) || math.IsInf(r.PerpDist, 0) || r.PerpDist <= 0 {
			t.Errorf("dir %+v: PerpDist = %v, want finite positive", dir, r.PerpDist)
		}
		if r.WallX < 0 || r.WallX >= 1 {
			t.Errorf("dir %+v: WallX = %v, want [0,1)", dir, r.WallX)
		}
	}

	r := CastRay(g, geom.Vector2{X: 3.5, Y: 3.5}, geom.Vector2{X: 0, Y: 1})
	if r.Side != SideHorizontal || r.MapY != 7 || math.Abs(r.PerpDist-3.5) > 1e-9 {
		t.Errorf("south ray: side %v row %d dist %v, want horizontal 7 3.5", r.Side, r.MapY, r.PerpDist)
	}
}

func TestTexX(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want int
	}{
		{"vertical facing east flips", Ray{Side: SideVertical, Dir: geom.Vector2{X: 1}, WallX: 0.25}, 64 - 16 - 1},
		{"vertical facing west keeps", Ray{Side: SideVertical, Dir: geom.Vector2{X: -1}, WallX: 0.25}, 16},
		{"horizontal facing north flips", Ray{Side: SideHorizontal, Dir: geom.Vector2{Y: -1}, WallX: 0.5}, 64 - 32 - 1},
		{"horizontal facing south keeps", Ray{Side: SideHorizontal, Dir: geom.Vector2{Y: 1}, WallX: 0.5}, 32},
		{"clamped", Ray{Side: SideVertical, Dir: geom.Vector2{X: -1}, WallX: 0.99999999}, 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.TexX(64); got != tt.want {
				t.Errorf("TexX = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWallSlice(t *testing.T) {
	start, end, lh := WallSlice(2, 480)
	if lh != 240 || start != 120 || end != 360 {
		t.Errorf("WallSlice(2, 480) = %d %d %d, want 120 360 240", start, end, lh)
	}

	start, end, lh = WallSlice(0.1, 480)
	if start != 0 || end != 479 || lh != 4800 {
		t.Errorf("close wall = %d %d %d, want clipped 0 479 4800", start, end, lh)
	}

	start, end, _ = WallSlice(0, 480)
	if start != 0 || end != 479 {
		t.Errorf("zero distance = %d %d, want 0 479", start, end)
	}
}

func TestSideShade(t *testing.T) {
	if SideShade(SideVertical) != 1 || SideShade(SideHorizontal) != 0.7 {
		t.Error("unexpected side shading")
	}
	if Light(20, 10) != 0.3 {
		t.Errorf("Light beyond render distance = %v, want 0.3", Light(20, 10))
	}
	if Light(5, 0) != 1 {
		t.Error("disabled light falloff should be 1")
	}
}
