package root

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (text|json|yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML. It reports false for text so
// callers fall through to their own renderer.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return true, enc.Encode(v)
	default:
		return false, nil
	}
}

func cadenceLabel(q engine.Quest) string {
	switch q.Cadence {
	case engine.CadenceSpecific:
		s := "on " + q.TargetDay
		if q.Repeat != engine.RepeatNone && q.Repeat != "" {
			s += ", then " + string(q.Repeat)
		}
		return s
	default:
		return string(q.Cadence)
	}
}

func questLine(q engine.Quest) string {
	mark := "[ ]"
	if q.Completed {
		mark = "[x]"
	}
	name := q.Name
	if imp := ui.ImportanceMark(string(q.Importance)); imp != "" {
		name += " " + imp
	}
	return fmt.Sprintf("%s %s %s %s %s %s",
		ui.Muted.Render(fmt.Sprintf("#%d", q.ID)),
		mark,
		name,
		ui.Key.Render(strings.ToUpper(string(q.Stat))),
		ui.Muted.Render("("+cadenceLabel(q)+")"),
		ui.QuestState(q.Completed, q.Active),
	)
}

func levelBadge(c engine.LevelChange) string {
	switch c {
	case engine.LevelUp:
		return " " + ui.BadgeLevelUp
	case engine.LevelDown:
		return " " + ui.BadgeLevelDown
	default:
		return ""
	}
}

func printQuestResult(w io.Writer, verb string, res *engine.QuestResult) {
	fmt.Fprintln(w, ui.Good.Render(ui.IconDone+" "+verb)+" "+questLine(res.Quest))
	if res.StatDelta != 0 {
		fmt.Fprintf(w, "%s %+d\n", ui.Key.Render(res.Quest.Stat.Label()+":"), res.StatDelta)
	}
	if res.Suppressed {
		fmt.Fprintln(w, ui.Bad.Render(ui.IconShield+" "+engine.StatusMessage(engine.StatusSuppression)))
		return
	}
	if res.AwardedXP != 0 || res.Level != engine.LevelSame {
		fmt.Fprintf(w, "%s %+d%s\n", ui.Key.Render("XP:"), res.AwardedXP, levelBadge(res.Level))
	}
}

func printRollover(w io.Writer, res *engine.RolloverResult) {
	if !res.Ran {
		fmt.Fprintln(w, ui.Muted.Render(ui.IconInfo+" "+res.Day+" already closed"))
		return
	}
	closed := res.ClosedDay
	if closed == "" {
		closed = "first run"
	}
	if res.Manual {
		fmt.Fprintln(w, ui.Heading(ui.IconClock, "Manual penalty: "+closed))
	} else {
		fmt.Fprintln(w, ui.Heading(ui.IconClock, "Day closed: "+closed))
	}
	for _, p := range res.Penalties {
		fmt.Fprintf(w, "%s %s %s\n", ui.Bad.Render(ui.IconSkull), p.Name, ui.Muted.Render("-1 "+strings.ToUpper(string(p.Stat))))
	}
	if res.XPLost > 0 {
		fmt.Fprintf(w, "%s -%d%s\n", ui.Bad.Render("XP lost:"), res.XPLost, levelBadge(res.Level))
	}
	if res.SuppressionCleared {
		fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" Suppression lifted."))
	}
	if res.SuppressionEngaged {
		fmt.Fprintln(w, ui.Bad.Render(ui.IconShield+" "+engine.StatusMessage(engine.StatusSuppression)))
	}
}
