package engine

// Achievement is a milestone derived from the read model. Nothing is
// stored; earned state is recomputed from the snapshot every time.
type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Earned      bool   `json:"earned" yaml:"earned"`
}

// AchievementChecker calculates which milestones a snapshot has reached.
type AchievementChecker struct {
	snap *Snapshot
}

func NewAchievementChecker(snap *Snapshot) *AchievementChecker {
	return &AchievementChecker{snap: snap}
}

func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Titles
		c.levelAchievement("awakened", "Awakened", "Reach level 30", "🌱", 30),
		c.levelAchievement("s_rank", "S Rank Hunter", "Reach level 50", "⭐", 50),
		c.levelAchievement("candidate", "Monarch Candidate", "Reach level 71", "🌟", 71),
		c.levelAchievement("monarch", "Shadow Monarch", "Reach level 100", "💫", 100),
		c.levelAchievement("reaper", "Grim Reaper", "Reach level 150", "☠", 150),

		// Streaks
		c.streakAchievement("first_week", "Unbroken Week", "Hold a 7-day streak", "🔥", 7),
		c.streakAchievement("first_month", "Iron Month", "Hold a 30-day streak", "🏅", 30),
		c.streakAchievement("centurion", "Centurion", "Hold a 100-day streak", "🏆", 100),

		// Stats
		c.statAchievement("strong", "Strong", "Strength 25", "💪", StatStrength, 25),
		c.statAchievement("swift", "Swift", "Agility 25", "🏃", StatAgility, 25),
		c.statAchievement("sharp", "Sharp", "Intelligence 25", "🧠", StatIntelligence, 25),
		c.statAchievement("hardy", "Hardy", "Vitality 25", "❤", StatVitality, 25),
		c.statAchievement("resolute", "Resolute", "Willpower 25", "🧘", StatWillpower, 25),

		c.fullClearAchievement("full_clear", "Full Clear", "Complete every quest due today", "✓"),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := c.snap.Player.Level >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := c.snap.LongestStreak >= days
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) statAchievement(id, name, desc, icon string, stat Stat, value int) Achievement {
	earned := c.snap.Player.Stats.Get(stat) >= value
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) fullClearAchievement(id, name, desc, icon string) Achievement {
	earned := DayComplete(c.snap.ActiveQuests(), false)
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}
