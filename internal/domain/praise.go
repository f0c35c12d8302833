package domain

// praises shown next to completed tasks on the home screen.
var praises = []string{
	"Genius!",
	"Incredible focus!",
	"Well done!",
	"Amazing!",
	"Flawless!",
}

// PraiseFor picks a praise line for a task. The pick is a pure function of
// the task id so it never changes between renders.
func PraiseFor(taskID string) string {
	if taskID == "" {
		return praises[0]
	}
	return praises[int(taskID[0])%len(praises)]
}
