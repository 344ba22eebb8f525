package engine

type Status string

const (
	StatusStable      Status = "stable"
	StatusWarning     Status = "warning"
	StatusUnstable    Status = "unstable"
	StatusDegrading   Status = "degrading"
	StatusSuppression Status = "suppression"
)

// Classify derives the headline status. Suppression beats interference.
func Classify(suppressed, interferenceToday bool) Status {
	switch {
	case suppressed:
		return StatusSuppression
	case interferenceToday:
		return StatusUnstable
	default:
		return StatusStable
	}
}

// ClassifyTrend grades the number of interference days in the last week.
func ClassifyTrend(suppressed bool, interferenceDays int) Status {
	switch {
	case suppressed, interferenceDays >= 5:
		return StatusSuppression
	case interferenceDays >= 3:
		return StatusDegrading
	case interferenceDays >= 1:
		return StatusWarning
	default:
		return StatusStable
	}
}

func StatusMessage(s Status) string {
	switch s {
	case StatusSuppression:
		return "Reward systems disabled. Suppression active."
	case StatusDegrading:
		return "Performance degrading. Interference is becoming a pattern."
	case StatusWarning:
		return "Interference recorded this week."
	case StatusUnstable:
		return "Interference detected."
	default:
		return "Systems operational. Continue training."
	}
}
