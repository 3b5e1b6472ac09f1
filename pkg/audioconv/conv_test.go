package audioconv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownmix(t *testing.T) {
	got := downmix([]float32{1, 0, 0.5, 0.5, -1, 1}, 2)
	assert.Equal(t, []float32{0.5, 0.5, 0}, got)

	mono := []float32{0.1, 0.2}
	assert.Equal(t, mono, downmix(mono, 1))
}

func TestResampleLinear(t *testing.T) {
	in := []float32{0, 0.3, 0.6, 0.9, 1.2, 1.5}

	assert.Len(t, resampleLinear(in, 48000, 16000), 2)
	assert.Equal(t, in, resampleLinear(in, 16000, 16000))

	up := resampleLinear([]float32{0, 1}, 8000, 16000)
	require.Len(t, up, 4)
	assert.InDelta(t, 0.5, up[1], 1e-6)
	assert.Equal(t, float32(1), up[3])
}

func TestInt16sToFloat(t *testing.T) {
	got := int16sToFloat([]int16{0, 16384, -32768})
	assert.Equal(t, []float32{0, 0.5, -1}, got)
}

func TestDecodeFile_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmd.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	// one second of stereo 32 kHz silence with a marker in the left channel
	data := make([]int, 2*32000)
	data[0] = 16384
	enc := wav.NewEncoder(f, 32000, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 32000},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	pcm, err := DecodeFile(path, 0)
	require.NoError(t, err)
	assert.Len(t, pcm, TargetRate)
	assert.InDelta(t, 0.25, pcm[0], 1e-3)

	pcm, err = DecodeFile(path, 100)
	require.NoError(t, err)
	assert.Len(t, pcm, 100)
}

func TestDecodeFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	_, err := DecodeFile(path, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}
