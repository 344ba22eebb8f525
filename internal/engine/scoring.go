package engine

// criticalWeight is the per-quest ceiling used for maxPossibleWeight,
// regardless of the actual importance mix.
const criticalWeight = 12

// TargetExperience returns floor(envelope * completedWeight / maxPossibleWeight)
// over the active quests. No active quests scores 0.
func TargetExperience(envelope int, active []Quest) int {
	if len(active) == 0 || envelope <= 0 {
		return 0
	}
	completed := 0
	for _, q := range active {
		if q.Completed {
			completed += q.Importance.Weight()
		}
	}
	return envelope * completed / (len(active) * criticalWeight)
}

// Efficiency is completedWeight / maxPossibleWeight in [0, 1].
func Efficiency(active []Quest) float64 {
	if len(active) == 0 {
		return 0
	}
	completed := 0
	for _, q := range active {
		if q.Completed {
			completed += q.Importance.Weight()
		}
	}
	return float64(completed) / float64(len(active)*criticalWeight)
}
