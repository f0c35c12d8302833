package session

// Phase is the controller's current screen in the session cycle. There is no
// terminal phase; a finished break returns to home.
type Phase int

const (
	PhaseHome Phase = iota
	PhaseTimer
	PhaseChecklist
	PhaseBreak
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseHome:
		return "HOME"
	case PhaseTimer:
		return "TIMER"
	case PhaseChecklist:
		return "CHECKLIST"
	case PhaseBreak:
		return "BREAK"
	default:
		return "UNKNOWN"
	}
}
