package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the playback device behind the notification service. The real
// implementation wraps the process-wide speaker; tests substitute a fake so
// playback behavior can be asserted without an audio device.
type Output interface {
	// Init opens the device for the given format. Called once.
	Init(format beep.Format) error
	// Play mixes the streamer into the device asynchronously.
	Play(s beep.Streamer)
	// Clear drops everything currently playing.
	Clear()
}

// speakerOutput plays through the gopxl/beep speaker singleton.
type speakerOutput struct{}

// NewSpeakerOutput returns the production playback device.
func NewSpeakerOutput() Output {
	return &speakerOutput{}
}

func (o *speakerOutput) Init(format beep.Format) error {
	return speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond))
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (o *speakerOutput) Clear() {
	speaker.Clear()
}
