package timer

import (
	"testing"
	"time"

	"focusflow/internal/audio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdNotifier_FiresEachThresholdOnce(t *testing.T) {
	n := NewThresholdNotifier()
	elapsed := 5 * time.Minute

	kind, minutes, fired := n.Check(15*60, elapsed)
	require.True(t, fired)
	assert.Equal(t, audio.KindDefault, kind)
	assert.Equal(t, 15, minutes)

	// Repeat ticks within the same second must not re-fire
	for i := 0; i < 5; i++ {
		_, _, fired = n.Check(15*60, elapsed)
		assert.False(t, fired)
	}

	kind, _, fired = n.Check(10*60, elapsed)
	require.True(t, fired)
	assert.Equal(t, audio.KindDefault, kind)

	kind, _, fired = n.Check(5*60, elapsed)
	require.True(t, fired)
	assert.Equal(t, audio.KindFiveMinutes, kind)

	kind, _, fired = n.Check(60, elapsed)
	require.True(t, fired)
	assert.Equal(t, audio.KindOneMinute, kind)
}

func TestThresholdNotifier_IgnoresNonThresholds(t *testing.T) {
	n := NewThresholdNotifier()
	elapsed := time.Minute

	tests := []struct {
		name         string
		remainingSec int
	}{
		{name: "should ignore mid-minute values", remainingSec: 5*60 + 30},
		{name: "should ignore whole minutes off the list", remainingSec: 7 * 60},
		{name: "should ignore large whole minutes", remainingSec: 20 * 60},
		{name: "should ignore zero", remainingSec: 0},
		{name: "should ignore negative values", remainingSec: -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, fired := n.Check(tt.remainingSec, elapsed)
			assert.False(t, fired)
		})
	}
}

func TestThresholdNotifier_StartGuard(t *testing.T) {
	// A 1-minute session crosses "1 minute remaining" immediately; the guard
	// keeps it from firing together with the session-start cue.
	n := NewThresholdNotifier()

	_, _, fired := n.Check(60, 0)
	assert.False(t, fired, "should not fire at second zero")

	_, _, fired = n.Check(60, 2*time.Second)
	assert.False(t, fired, "should not fire inside the guard window")

	_, _, fired = n.Check(60, 3*time.Second)
	assert.True(t, fired, "should fire once the guard window has passed")
}

func TestThresholdNotifier_ShortSessionSkipsEarlierThresholds(t *testing.T) {
	// A 5-minute session never sees 15 or 10 minutes remaining.
	n := NewThresholdNotifier()

	kind, _, fired := n.Check(5*60, 4*time.Second)
	require.True(t, fired)
	assert.Equal(t, audio.KindFiveMinutes, kind)

	kind, _, fired = n.Check(60, 4*time.Minute)
	require.True(t, fired)
	assert.Equal(t, audio.KindOneMinute, kind)
}
