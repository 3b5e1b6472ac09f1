package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

int
engine_open(const char *lang, int rate, int volume)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	espeak_VOICE specs;
	memset(&specs, 0, sizeof(specs));
	specs.languages = lang;
	if (espeak_SetVoiceByProperties(&specs) != EE_OK)
	{ return -2; }

	espeak_SetParameter(espeakRATE, rate, 0);
	espeak_SetParameter(espeakVOLUME, volume, 0);
	return 0;
}

int
engine_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, POS_CHARACTER, 0, espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }
	espeak_Synchronize();
	return 0;
}

void
engine_close(void)
{
	espeak_Terminate();
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

type Options struct {
	Voice  string  // espeak language tag, e.g. "en"
	Rate   int     // words per minute
	Volume float64 // 0.0 - 2.0, 1.0 is normal
}

// Engine owns the espeak-ng instance for the process lifetime.
type Engine struct {
	mu     sync.Mutex
	closed bool
}

func New(opt Options) (*Engine, error) {
	if opt.Voice == "" {
		opt.Voice = "en"
	}
	if opt.Rate <= 0 {
		opt.Rate = 140
	}

	vol := int(opt.Volume * 100)
	if vol < 0 {
		vol = 0
	}
	if vol > 200 {
		vol = 200
	}

	clang := C.CString(opt.Voice)
	defer C.free(unsafe.Pointer(clang))

	if rc := C.engine_open(clang, C.int(opt.Rate), C.int(vol)); rc != 0 {
		return nil, fmt.Errorf("espeak init failed: %d", int(rc))
	}
	return &Engine{}, nil
}

func (e *Engine) Speak(text string) error {
	if text == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.New("espeak engine closed")
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.engine_say(ctext); rc != 0 {
		return fmt.Errorf("espeak synth failed: %d", int(rc))
	}
	return nil
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	C.engine_close()
}
