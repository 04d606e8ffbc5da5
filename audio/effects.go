// Package audio synthesises the game's sound effects and plays them through
// the system speaker. Every effect is rendered once into a buffer at start
// up; playing one only adds a volume-scaled view of that buffer to the mix.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Sound names a synthesised effect
type Sound int

const (
	Shoot Sound = iota
	Hit
	Explosion
	Pickup
	Hurt
	Meow
)

var soundNames = map[Sound]string{
	Shoot:     "shoot",
	Hit:       "hit",
	Explosion: "explosion",
	Pickup:    "pickup",
	Hurt:      "hurt",
	Meow:      "meow",
}

func (s Sound) String() string {
	if name, ok := soundNames[s]; ok {
		return name
	}
	return "unknown"
}

// Sounds lists every effect
func Sounds() []Sound {
	return []Sound{Shoot, Hit, Explosion, Pickup, Hurt, Meow}
}

// recipe is a mono waveform over t seconds
type recipe struct {
	duration time.Duration
	wave     func(t float64, rng *rand.Rand) float64
}

func noise(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

var recipes = map[Sound]recipe{
	Shoot: {150 * time.Millisecond, func(t float64, rng *rand.Rand) float64 {
		return math.Exp(-t*10) * noise(rng) * 0.3
	}},
	Hit: {100 * time.Millisecond, func(t float64, _ *rand.Rand) float64 {
		return math.Exp(-t*20) * math.Sin(t*1000) * 0.5
	}},
	Explosion: {500 * time.Millisecond, func(t float64, rng *rand.Rand) float64 {
		return math.Exp(-t*3) * noise(rng) * 0.7
	}},
	Pickup: {200 * time.Millisecond, func(t float64, _ *rand.Rand) float64 {
		freq := 440 + t*880
		return math.Exp(-t*8) * math.Sin(2*math.Pi*freq*t) * 0.3
	}},
	Hurt: {300 * time.Millisecond, func(t float64, _ *rand.Rand) float64 {
		freq := 200 - t*150
		return math.Exp(-t*5) * math.Sin(2*math.Pi*freq*t) * 0.4
	}},
	Meow: {400 * time.Millisecond, func(t float64, _ *rand.Rand) float64 {
		freq := 600 + math.Sin(t*10)*200
		return math.Exp(-t*4) * math.Sin(2*math.Pi*freq*t) * 0.3
	}},
}

// Duration of the effect
func (s Sound) Duration() time.Duration {
	return recipes[s].duration
}

// synth streams a recipe sample by sample, the same value on both channels
type synth struct {
	wave     func(t float64, rng *rand.Rand) float64
	rng      *rand.Rand
	rate     beep.SampleRate
	position int
	length   int
}

// NewSynth streams effect s at the given rate. Noise based effects draw
// from rng so a fixed seed reproduces them exactly.
func NewSynth(s Sound, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	r, ok := recipes[s]
	if !ok {
		return beep.Silence(0)
	}
	return &synth{
		wave:   r.wave,
		rng:    rng,
		rate:   rate,
		length: rate.N(r.duration),
	}
}

func (s *synth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.rate)
		v := s.wave(t, s.rng)
		samples[i][0] = v
		samples[i][1] = v
		s.position++
	}
	return len(samples), true
}

func (s *synth) Err() error { return nil }

// Render synthesises every effect into buffers at rate
func Render(rate beep.SampleRate, seed int64) map[Sound]*beep.Buffer {
	rng := rand.New(rand.NewSource(seed))
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}

	buffers := make(map[Sound]*beep.Buffer, len(recipes))
	for _, s := range Sounds() {
		buf := beep.NewBuffer(format)
		buf.Append(NewSynth(s, rate, rng))
		buffers[s] = buf
	}
	return buffers
}
