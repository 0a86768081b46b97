package main

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTone(t *testing.T) {
	pcm := tone([]note{{440, 100 * time.Millisecond}, {880, 50 * time.Millisecond}}, 0.5)

	samples := int(0.1*sampleRate) + int(0.05*sampleRate)
	require.Len(t, pcm, samples*4)

	peak := 0
	for i := 0; i < len(pcm); i += 4 {
		left := int16(binary.LittleEndian.Uint16(pcm[i:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		assert.Equal(t, left, right)
		peak = max(peak, int(left), -int(left))
	}
	assert.LessOrEqual(t, peak, 32767/2+1)
	assert.Greater(t, peak, 32767/4)

	assert.Zero(t, binary.LittleEndian.Uint16(pcm), "notes fade in from silence")
}

func TestCuesRender(t *testing.T) {
	for ev, notes := range cues {
		assert.NotEmpty(t, tone(notes, 0.25), ev.String())
	}
}
