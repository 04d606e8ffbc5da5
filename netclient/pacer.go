package netclient

import (
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/vmath"
)

// Pacer keeps reported positions within the server's per-update movement
// limit. The reported position chases the local one, so a long frame is
// spread over several updates instead of being rejected.
type Pacer struct {
	Limit    float64
	reported geom.Vector2
	primed   bool
}

func NewPacer(limit float64) *Pacer {
	return &Pacer{Limit: limit}
}

// Reset adopts pos as the position the server holds
func (p *Pacer) Reset(pos geom.Vector2) {
	p.reported = pos
	p.primed = true
}

func (p *Pacer) Reported() geom.Vector2 {
	return p.reported
}

// Next returns the position to report for a local position, moving at most
// Limit from the previous report
func (p *Pacer) Next(local geom.Vector2) geom.Vector2 {
	if !p.primed {
		p.Reset(local)
		return local
	}
	step := vmath.Sub(local, p.reported)
	if d := vmath.Length(step); p.Limit > 0 && d > p.Limit {
		step = vmath.Scale(step, p.Limit/d)
	}
	p.reported = vmath.Add(p.reported, step)
	return p.reported
}
