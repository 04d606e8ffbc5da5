package audio

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gopxl/beep"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/logger"
)

func init() {
	logger.Silence()
}

func TestAttenuation(t *testing.T) {
	origin := geom.Vector2{}
	tests := []struct {
		name   string
		source geom.Vector2
		want   float64
	}{
		{"at listener", geom.Vector2{}, 1},
		{"half way", geom.Vector2{X: 250}, 0.5},
		{"diagonal", geom.Vector2{X: 300, Y: 400}, 0},
		{"beyond range", geom.Vector2{X: 900}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Attenuation(origin, tt.source, 500); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Attenuation = %v, want %v", got, tt.want)
			}
		})
	}
	if got := Attenuation(origin, origin, 0); got != 0 {
		t.Errorf("zero range = %v, want 0", got)
	}
}

func TestSynthLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, s := range Sounds() {
		t.Run(s.String(), func(t *testing.T) {
			st := NewSynth(s, rate, rand.New(rand.NewSource(1)))
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := st.Stream(buf)
				for i := 0; i < n; i++ {
					if math.Abs(buf[i][0]) > 1 || buf[i][0] != buf[i][1] {
						t.Fatalf("sample %d = %v", total+i, buf[i])
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if want := rate.N(s.Duration()); total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
		})
	}
}

func TestShootDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	st := NewSynth(Shoot, rate, rand.New(rand.NewSource(7)))
	samples := make([][2]float64, rate.N(Shoot.Duration()))
	n, _ := st.Stream(samples)

	energy := func(from, to int) float64 {
		var e float64
		for _, s := range samples[from:to] {
			e += s[0] * s[0]
		}
		return e
	}
	quarter := n / 4
	if head, tail := energy(0, quarter), energy(n-quarter, n); tail >= head {
		t.Errorf("tail energy %v not below head %v", tail, head)
	}
}

func TestRender(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := Render(rate, 3)
	b := Render(rate, 3)
	if len(a) != len(Sounds()) {
		t.Fatalf("rendered %d sounds", len(a))
	}
	for _, s := range Sounds() {
		if a[s].Len() != rate.N(s.Duration()) {
			t.Errorf("%s: len %d", s, a[s].Len())
		}
	}

	sa := make([][2]float64, 64)
	sb := make([][2]float64, 64)
	a[Explosion].Streamer(0, 64).Stream(sa)
	b[Explosion].Streamer(0, 64).Stream(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
	}
}

func TestDisabledManager(t *testing.T) {
	cfg := config.Default().Audio
	cfg.Enabled = false
	m := NewManager(cfg)
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if m.Enabled() {
		t.Fatal("disabled config opened the speaker")
	}
	m.Play(Shoot, 1)
	m.Play3D(Hit, geom.Vector2{}, geom.Vector2{X: 10}, 1)
	m.Close()

	cfg.MasterVolume, cfg.SFXVolume = 0.5, 0.5
	if got := NewManager(cfg).Gain(1); got != 0.25 {
		t.Errorf("Gain = %v, want 0.25", got)
	}
}
