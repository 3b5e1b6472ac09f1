package audio

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"

	"jarvis/internal/failure"
)

const (
	SampleRate = 16000
	frameSize  = 320 // 20ms
	frameDur   = 20 * time.Millisecond

	silenceThreshRMS = 0.015 // tune if needed
	silenceDuration  = 600 * time.Millisecond
)

type Recorder struct {
	threshold float64
}

func NewRecorder() *Recorder { return &Recorder{threshold: silenceThreshRMS} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Listen waits up to timeout for speech to start, then records until
// silenceDuration of quiet or phraseLimit, whichever comes first.
// Output is mono float32 PCM at SampleRate.
func (r *Recorder) Listen(timeout, phraseLimit time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	g := newGate(r.threshold, timeout, phraseLimit)
	for {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		keep, done := g.feed(frameRMS(buf))
		if keep {
			out = append(out, buf...)
		}
		if done {
			break
		}
	}

	if !g.speaking {
		return nil, failure.ErrNoSpeech
	}
	return out, nil
}

// gate tracks speech onset and end over a stream of 20ms frame energies.
type gate struct {
	threshold     float64
	waitFrames    int
	phraseFrames  int
	silenceFrames int

	frames   int
	spoken   int
	quiet    int
	speaking bool
}

func newGate(threshold float64, timeout, phraseLimit time.Duration) *gate {
	return &gate{
		threshold:     threshold,
		waitFrames:    int(timeout / frameDur),
		phraseFrames:  int(phraseLimit / frameDur),
		silenceFrames: int(silenceDuration / frameDur),
	}
}

// feed reports whether the frame belongs to the utterance and whether capture is over.
func (g *gate) feed(rms float64) (keep, done bool) {
	g.frames++

	if !g.speaking {
		if rms > g.threshold {
			g.speaking = true
			g.spoken = 1
			return true, g.phraseFrames > 0 && g.spoken >= g.phraseFrames
		}
		return false, g.waitFrames > 0 && g.frames >= g.waitFrames
	}

	g.spoken++
	if rms > g.threshold {
		g.quiet = 0
	} else {
		g.quiet++
	}
	if g.quiet >= g.silenceFrames {
		return true, true
	}
	return true, g.phraseFrames > 0 && g.spoken >= g.phraseFrames
}

func frameRMS(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
