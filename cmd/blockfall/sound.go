package main

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/blockfall/tetris"
)

const sampleRate = 44100

type note struct {
	freq float64
	dur  time.Duration
}

// cues maps events to the notes played for them.
var cues = map[tetris.EventType][]note{
	tetris.EventRotated:      {{880, 25 * time.Millisecond}},
	tetris.EventHardDropped:  {{220, 40 * time.Millisecond}},
	tetris.EventLocked:       {{330, 30 * time.Millisecond}},
	tetris.EventHeld:         {{660, 30 * time.Millisecond}, {990, 30 * time.Millisecond}},
	tetris.EventLinesCleared: {{523, 60 * time.Millisecond}, {659, 60 * time.Millisecond}, {784, 90 * time.Millisecond}},
	tetris.EventLevelUp:      {{784, 80 * time.Millisecond}, {1047, 160 * time.Millisecond}},
	tetris.EventGameOver:     {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
}

// tone renders notes as 16-bit little endian stereo PCM with a short linear
// fade at both ends of every note.
func tone(notes []note, volume float64) []byte {
	var n int
	for _, nt := range notes {
		n += int(nt.dur.Seconds() * sampleRate)
	}
	buf := make([]byte, 0, n*4)

	for _, nt := range notes {
		samples := int(nt.dur.Seconds() * sampleRate)
		fade := min(samples/8, sampleRate/200)
		for i := 0; i < samples; i++ {
			env := 1.0
			if fade > 0 {
				if i < fade {
					env = float64(i) / float64(fade)
				} else if i >= samples-fade {
					env = float64(samples-1-i) / float64(fade)
				}
			}
			v := math.Sin(2*math.Pi*nt.freq*float64(i)/sampleRate) * volume * env
			s := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s)
			buf = binary.LittleEndian.AppendUint16(buf, s)
		}
	}
	return buf
}

// soundBank plays a pre rendered cue for each event type.
type soundBank struct {
	ctx *audio.Context
	pcm map[tetris.EventType][]byte
}

func newSoundBank() *soundBank {
	b := &soundBank{
		ctx: audio.NewContext(sampleRate),
		pcm: make(map[tetris.EventType][]byte, len(cues)),
	}
	for ev, notes := range cues {
		b.pcm[ev] = tone(notes, 0.25)
	}
	return b
}

func (b *soundBank) play(ev tetris.Event) {
	if b == nil {
		return
	}
	pcm, ok := b.pcm[ev.Type]
	if !ok {
		return
	}
	if ev.Type == tetris.EventLinesCleared && ev.Award.Lines == 4 {
		pcm = b.pcm[tetris.EventLevelUp]
	}
	b.ctx.NewPlayerFromBytes(pcm).Play()
}
