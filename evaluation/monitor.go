package evaluation

// Stopping rule constants. The criterion follows SGDClassifier-style early
// stopping: every checkInterval updates the held-out loss is evaluated, and
// training stops the first time it fails to improve on the best seen value
// by at least improveTol.
const (
	checkInterval   = 100
	improveTol      = 1e-3
	initialBestLoss = 10.0
)

// convergenceMonitor tracks the best held-out loss seen so far.
type convergenceMonitor struct {
	best float64
}

func newConvergenceMonitor() *convergenceMonitor {
	return &convergenceMonitor{best: initialBestLoss}
}

// observe records one held-out loss evaluation and reports whether training
// should stop: true when loss > best - improveTol, otherwise the loss
// becomes the new best and training continues.
func (m *convergenceMonitor) observe(loss float64) bool {
	if loss > m.best-improveTol {
		return true
	}
	m.best = loss
	return false
}
