// Package audioconv decodes recorded audio files into the mono 16 kHz
// float32 PCM the speech recognizer expects.
package audioconv

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const TargetRate = 16000

var ErrUnsupported = errors.New("unsupported audio format")

type decoder func(io.ReadSeeker) (pcm []float32, rate int, err error)

// DecodeFile reads a wav, mp3 or ogg (vorbis or opus) file. maxSamples <= 0
// means no limit.
func DecodeFile(path string, maxSamples int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chain, err := pick(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, dec := range chain {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		pcm, rate, err := dec(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pcm = resampleLinear(pcm, rate, TargetRate)
		if maxSamples > 0 && len(pcm) > maxSamples {
			pcm = pcm[:maxSamples]
		}
		return pcm, nil
	}
	return nil, fmt.Errorf("decode %s: %w", path, errors.Join(errs...))
}

func pick(f io.ReadSeeker, ext string) ([]decoder, error) {
	switch ext {
	case ".wav":
		return []decoder{decodeWAV}, nil
	case ".mp3":
		return []decoder{decodeMP3}, nil
	case ".ogg", ".oga", ".opus":
		return []decoder{decodeVorbis, decodeOpus}, nil
	}

	magic, _ := bufio.NewReader(f).Peek(4)
	switch string(magic) {
	case "RIFF":
		return []decoder{decodeWAV}, nil
	case "OggS":
		return []decoder{decodeVorbis, decodeOpus}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

func decodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav")
	}
	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if pb == nil || len(pb.Data) == 0 {
		return nil, 0, errors.New("empty wav")
	}

	bits := int(dec.BitDepth)
	if bits == 0 {
		bits = 16
	}
	ch, rate := 1, 44100
	if pb.Format != nil {
		if pb.Format.NumChannels > 0 {
			ch = pb.Format.NumChannels
		}
		if pb.Format.SampleRate > 0 {
			rate = pb.Format.SampleRate
		}
	}
	return downmix(intsToFloat(pb.Data, bits), ch), rate, nil
}

func decodeMP3(r io.ReadSeeker) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}
	var raw bytes.Buffer
	if _, err := io.Copy(&raw, dec); err != nil {
		return nil, 0, err
	}
	samples := make([]int16, raw.Len()/2)
	if err := binary.Read(&raw, binary.LittleEndian, samples); err != nil {
		return nil, 0, err
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		rate = 44100
	}
	// go-mp3 always yields interleaved stereo
	return downmix(int16sToFloat(samples), 2), rate, nil
}

func decodeVorbis(r io.ReadSeeker) ([]float32, int, error) {
	pcm, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, 0, errors.New("invalid ogg/vorbis stream")
	}
	return downmix(pcm, format.Channels), format.SampleRate, nil
}

func decodeOpus(r io.ReadSeeker) ([]float32, int, error) {
	dec, err := popus.NewDecoder(r)
	if err != nil {
		return nil, 0, err
	}
	defer dec.Destroy()

	ch := dec.ChannelCount()
	if ch <= 0 {
		ch = 1
	}

	var pcm []float32
	buf := make([]int16, 24000*ch)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			pcm = append(pcm, int16sToFloat(buf[:n*ch])...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	if len(pcm) == 0 {
		return nil, 0, errors.New("empty opus stream")
	}
	// opus always decodes at 48 kHz
	return downmix(pcm, ch), 48000, nil
}

func intsToFloat(data []int, bits int) []float32 {
	out := make([]float32, len(data))
	scale := 1.0 / float64(int64(1)<<(bits-1))
	for i, v := range data {
		out[i] = float32(max(-1, min(float64(v)*scale, 1)))
	}
	return out
}

func int16sToFloat(data []int16) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) / 32768
	}
	return out
}

// downmix averages interleaved channels into one.
func downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	n := len(in) / channels
	out := make([]float32, n)
	for i := range n {
		var sum float64
		for c := range channels {
			sum += float64(in[i*channels+c])
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

func resampleLinear(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}
	ratio := float64(to) / float64(from)
	n := int(math.Ceil(float64(len(in)) * ratio))
	out := make([]float32, n)
	last := len(in) - 1
	for i := range out {
		src := float64(i) / ratio
		i0 := int(src)
		if i0 >= last {
			out[i] = in[last]
			continue
		}
		a := float32(src - float64(i0))
		out[i] = in[i0]*(1-a) + in[i0+1]*a
	}
	return out
}
