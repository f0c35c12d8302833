package timer

import (
	"time"

	"focusflow/internal/audio"
)

// alertThresholds are the remaining-time marks, in minutes, that trigger a
// reminder during a session.
var alertThresholds = []int{15, 10, 5, 1}

// startGuard suppresses threshold alerts just after a session starts, so a
// short session does not fire its threshold and start cues together (a
// 1-minute session crosses "1 minute remaining" at second zero).
const startGuard = 3 * time.Second

// ThresholdNotifier watches a countdown's remaining time and reports when it
// crosses one of the alert thresholds. Each threshold fires at most once per
// session; the check is edge-triggered on the exact whole-minute value, with
// the fired set deduplicating repeat ticks inside the same second.
type ThresholdNotifier struct {
	fired map[int]bool
}

// NewThresholdNotifier creates a notifier with no thresholds fired.
func NewThresholdNotifier() *ThresholdNotifier {
	return &ThresholdNotifier{
		fired: make(map[int]bool),
	}
}

// Check evaluates the remaining seconds against the alert thresholds. It
// returns the alert kind to play and true when a threshold newly fires.
func (n *ThresholdNotifier) Check(remainingSec int, elapsed time.Duration) (audio.Kind, int, bool) {
	if remainingSec <= 0 || remainingSec%60 != 0 {
		return "", 0, false
	}
	if elapsed < startGuard {
		return "", 0, false
	}

	minutes := remainingSec / 60
	for _, threshold := range alertThresholds {
		if minutes != threshold || n.fired[threshold] {
			continue
		}
		n.fired[threshold] = true
		return kindForThreshold(threshold), threshold, true
	}
	return "", 0, false
}

func kindForThreshold(minutes int) audio.Kind {
	switch minutes {
	case 1:
		return audio.KindOneMinute
	case 5:
		return audio.KindFiveMinutes
	default:
		return audio.KindDefault
	}
}
