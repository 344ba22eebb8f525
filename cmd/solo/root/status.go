package root

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

type statusReport struct {
	engine.Snapshot    `yaml:",inline"`
	Achievements       []engine.Achievement `json:"achievements" yaml:"achievements"`
	AchievementsEarned int                  `json:"achievements_earned" yaml:"achievements_earned"`
	AchievementsTotal  int                  `json:"achievements_total" yaml:"achievements_total"`
}

func newStatusCmd() *cobra.Command {
	var output string
	var calendar int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player, system status and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Snapshot(cmd.Context(), calendar)
			if err != nil {
				return err
			}
			checker := engine.NewAchievementChecker(snap)
			report := statusReport{
				Snapshot:           *snap,
				Achievements:       checker.GetAchievements(),
				AchievementsEarned: checker.CountEarned(),
				AchievementsTotal:  checker.CountTotal(),
			}
			if ok, err := writeStructured(cmd.OutOrStdout(), output, report); ok || err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|json|yaml)")
	cmd.Flags().IntVar(&calendar, "calendar", 0, "Include the last N days of the streak calendar")
	return cmd
}

func printStatus(w io.Writer, r statusReport) {
	snap := &r.Snapshot
	pv := snap.Player

	fmt.Fprintln(w, ui.Heading(ui.IconSparkle, "Player Status"))
	fmt.Fprintln(w, ui.TierStyle(pv.Tier).Render(fmt.Sprintf("Level %d · %s · %s-Rank", pv.Level, pv.Title, pv.Rank)))
	fmt.Fprintln(w, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d", ui.ProgressBar(pv.Experience, pv.Required, 20), pv.Experience, pv.Required)))
	if pv.Ascension.Phase != engine.AscensionDormant {
		fmt.Fprintln(w, ui.LabelValue("Ascension", fmt.Sprintf("%s (%.0f%%)", pv.Ascension.Phase, pv.Ascension.Progress*100)))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, ui.H2.Render("📊 Attributes"))
	for _, stat := range engine.Stats {
		fmt.Fprintf(w, "- %-12s %d\n", stat.Label(), pv.Stats.Get(stat))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, ui.StatusBadge(string(snap.Status)))
	fmt.Fprintln(w, ui.Muted.Render(snap.Message))
	if snap.Trend != snap.Status {
		fmt.Fprintln(w, ui.LabelValue("7-day trend", snap.Trend))
	}
	if snap.InterferenceToday {
		fmt.Fprintln(w, ui.LabelValue("Interference", strings.Join(snap.InterferenceTags, ", ")))
	}
	if snap.InterferenceStreak > 0 {
		fmt.Fprintln(w, ui.LabelValue("Interference streak", fmt.Sprintf("%d day(s)", snap.InterferenceStreak)))
	}
	fmt.Fprintln(w, "")

	active := snap.ActiveQuests()
	done := 0
	for _, q := range active {
		if q.Completed {
			done++
		}
	}
	fmt.Fprintln(w, ui.LabelValue("Quests today", fmt.Sprintf("%d/%d", done, len(active))))
	fmt.Fprintln(w, ui.LabelValue("Efficiency", fmt.Sprintf("%.0f%%", snap.Efficiency*100)))
	fmt.Fprintln(w, ui.LabelValue("XP today", snap.AwardedToday))
	fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d (best %d)", snap.CurrentStreak, snap.LongestStreak)))
	if len(snap.Calendar) > 0 {
		fmt.Fprintln(w, calendarStrip(snap.Calendar))
	}
	fmt.Fprintln(w, ui.LabelValue(ui.IconClock+" Next reset", clock.FormatCountdown(snap.Countdown)))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, ui.H2.Render(fmt.Sprintf("%s Achievements %d/%d", ui.IconTrophy, r.AchievementsEarned, r.AchievementsTotal)))
	for _, a := range r.Achievements {
		if a.Earned {
			fmt.Fprintf(w, "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
		}
	}

	if snap.PenaltyNotice != "" {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.Bad.Render(ui.IconWarn+" Penalty applied at "+snap.PenaltyNotice+" rollover. Run `solo ack` to dismiss."))
	}
}

func calendarStrip(days []engine.CalendarDay) string {
	var b strings.Builder
	for _, d := range days {
		switch {
		case d.Complete:
			b.WriteString(ui.Good.Render("■"))
		case d.Today:
			b.WriteString(ui.Warn.Render("□"))
		default:
			b.WriteString(ui.Muted.Render("·"))
		}
	}
	return b.String()
}
