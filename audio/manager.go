package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/harbdog/raycaster-go/geom"

	"arenagame/config"
	"arenagame/logger"
)

// Attenuation scales a sound by distance: full volume at the listener,
// silent from maxDistance on
func Attenuation(listener, source geom.Vector2, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	d := math.Hypot(source.X-listener.X, source.Y-listener.Y)
	return math.Max(0, 1-d/maxDistance)
}

// newVolume scales s linearly; beep volumes are logarithmic so silence
// needs the Silent flag
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Manager owns the speaker and the rendered effects. A Manager whose
// device failed to open stays usable; every Play is then a no-op.
type Manager struct {
	cfg     config.AudioConfig
	mu      sync.Mutex
	buffers map[Sound]*beep.Buffer
	mixer   *beep.Mixer
	enabled bool
}

func NewManager(cfg config.AudioConfig) *Manager {
	return &Manager{cfg: cfg, mixer: &beep.Mixer{}}
}

// Init renders the effects and opens the speaker. Failure leaves audio
// disabled and is returned for logging only.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Enabled || m.enabled {
		return nil
	}

	rate := beep.SampleRate(m.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		logger.Log.WithError(err).Warn("audio device unavailable, sounds disabled")
		return err
	}
	m.buffers = Render(rate, time.Now().UnixNano())
	speaker.Play(m.mixer)
	m.enabled = true
	logger.Log.WithField("sample_rate", m.cfg.SampleRate).Info("audio initialised")
	return nil
}

func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Gain is the linear volume an effect plays at before attenuation
func (m *Manager) Gain(volume float64) float64 {
	return volume * m.cfg.SFXVolume * m.cfg.MasterVolume
}

// Play mixes in sound s at volume in [0, 1]
func (m *Manager) Play(s Sound, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	buf, ok := m.buffers[s]
	if !ok {
		return
	}
	gain := m.Gain(volume)
	if gain <= 0 {
		return
	}

	speaker.Lock()
	m.mixer.Add(newVolume(buf.Streamer(0, buf.Len()), gain))
	speaker.Unlock()
}

// Play3D plays s attenuated by the distance between listener and source
func (m *Manager) Play3D(s Sound, listener, source geom.Vector2, volume float64) {
	m.Play(s, volume*Attenuation(listener, source, m.cfg.MaxDistance))
}

// Close silences everything and releases the device
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.enabled = false
}
