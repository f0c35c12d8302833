package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"focusflow/internal/errors"
	"focusflow/internal/logging"
)

// State is the service lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// String returns the string representation of the lifecycle state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Notifier is the surface the rest of the application uses to play alerts.
type Notifier interface {
	Unlock() error
	PlayAlert(kind Kind)
	StopAlert()
	Ready() bool
	Playing() bool
}

// Service owns the single shared output device and the decoded sound
// catalog, and serializes alert playback so at most one alert sound plays at
// a time. Playback failures degrade to silence; they are never surfaced to
// phase-transition callers.
type Service struct {
	mu       sync.Mutex
	out      Output
	catalog  *Catalog
	state    State
	unlocked bool
	playing  bool
	gen      uint64
}

// NewService creates a notification service playing through out.
func NewService(out Output) *Service {
	return &Service{out: out}
}

// Initialize decodes the sound catalog from dir. Individual decode failures
// are non-fatal; the service becomes ready once every decode attempt has
// settled.
func (s *Service) Initialize(dir string) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	catalog := LoadCatalog(dir)

	s.mu.Lock()
	s.catalog = catalog
	s.state = StateReady
	s.mu.Unlock()
	logging.Debugf("audio: initialized with %d sounds loaded\n", catalog.Len())
}

// Ready reports whether the catalog has finished loading.
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateReady
}

// Playing reports whether an alert is currently audible.
func (s *Service) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Unlock opens the output device and warms up every loaded clip at near-zero
// volume, returning once all warm-up plays have finished. It is idempotent
// and safe to call repeatedly, including again right before a session starts
// in case the device was released in between. Until the catalog has finished
// loading the unlock is refused, so callers gating on it hold off instead of
// running with dropped cues.
func (s *Service) Unlock() error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		logging.Debugln("audio: unlock requested before sounds finished loading")
		return errors.NewAudioError("unlock, sounds still loading", nil)
	}
	if !s.unlocked {
		if err := s.out.Init(catalogFormat); err != nil {
			s.mu.Unlock()
			return errors.NewAudioError("open output device", err)
		}
		s.unlocked = true
	}
	catalog := s.catalog
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, kind := range catalog.Kinds() {
		buffer, ok := catalog.Lookup(kind)
		if !ok {
			continue
		}
		wg.Add(1)
		s.out.Play(beep.Seq(warmupStreamer(buffer), beep.Callback(wg.Done)))
	}
	wg.Wait()
	logging.Debugf("audio: %d sounds warmed up\n", catalog.Len())
	return nil
}

// warmupStreamer plays a short slice of buffer at an inaudible volume.
func warmupStreamer(buffer *beep.Buffer) beep.Streamer {
	end := catalogFormat.SampleRate.N(warmupWindow)
	if end > buffer.Len() {
		end = buffer.Len()
	}
	return &effects.Volume{
		Streamer: buffer.Streamer(0, end),
		Base:     2,
		Volume:   -10, // inaudible
	}
}

// PlayAlert plays the named alert, stopping any alert already playing. An
// unknown or unloaded kind falls back to the default sound; when neither
// exists the call warns and does nothing. The timeout kind loops until
// StopAlert; every other kind plays once and returns the service to idle.
func (s *Service) PlayAlert(kind Kind) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		logging.Debugf("audio: dropping alert %q, sounds not loaded yet\n", kind)
		return
	}
	if !s.unlocked {
		// The device may have been released since unlock; try to reopen
		// before giving up on the alert.
		if err := s.out.Init(catalogFormat); err != nil {
			s.mu.Unlock()
			logging.Warnf("audio: cannot open output device: %v\n", err)
			return
		}
		s.unlocked = true
	}

	// At most one alert at a time.
	s.out.Clear()
	s.playing = false

	buffer, ok := s.catalog.Lookup(kind)
	if !ok {
		s.mu.Unlock()
		logging.Warnf("audio: no sound loaded for %q or default\n", kind)
		return
	}

	s.gen++
	gen := s.gen
	base := buffer.Streamer(0, buffer.Len())

	var streamer beep.Streamer
	if kind == KindTimeout {
		streamer = beep.Loop(-1, base)
	} else {
		streamer = beep.Seq(base, beep.Callback(func() {
			s.alertDone(gen)
		}))
	}
	s.playing = true
	s.mu.Unlock()

	s.out.Play(streamer)
	logging.Debugf("audio: alert started: %s\n", kind)
}

// StopAlert unconditionally halts and releases the current playback source.
// Safe to call when nothing is playing.
func (s *Service) StopAlert() {
	s.mu.Lock()
	s.gen++ // stale end-of-clip callbacks become no-ops
	s.playing = false
	s.mu.Unlock()

	s.out.Clear()
	logging.Debugln("audio: alert stopped")
}

// alertDone marks playback idle when a non-looping clip finishes. The
// generation guard ignores callbacks from clips that were already replaced
// or stopped.
func (s *Service) alertDone(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen {
		s.playing = false
	}
}
