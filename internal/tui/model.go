package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/ui"
)

const (
	tickInterval     = time.Second
	calendarCollapse = 30
	calendarExpand   = 365
	calendarRowWidth = 30
)

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	keys KeyMap

	width  int
	height int

	snap *engine.Snapshot
	now  time.Time

	showAll      bool
	calendarFull bool
	selected     int

	// focusEnd is the end of the running focus session, zero when idle.
	focusEnd time.Time

	tagging  bool
	tagInput textinput.Model

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap *engine.Snapshot
	err  error
}

type tickMsg time.Time

type rolloverMsg struct {
	res *engine.RolloverResult
	err error
}

type toggledMsg struct {
	res *engine.QuestResult
	err error
}

type focusMsg struct {
	res *engine.FocusResult
	err error
}

type interferedMsg struct {
	res *engine.InterferenceResult
	err error
}

type ackMsg struct {
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	input := textinput.New()
	input.Prompt = "Interference tags: "
	input.Placeholder = "phone, noise, guests"
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		keys:     DefaultKeyMap,
		now:      svc.Clock().Now(),
		tagInput: input,
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.rolloverCmd(), m.tickCmd())
}

func (m boardModel) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m boardModel) calendarDays() int {
	if m.calendarFull {
		return calendarExpand
	}
	return calendarCollapse
}

func (m boardModel) loadCmd() tea.Cmd {
	days := m.calendarDays()
	return func() tea.Msg {
		snap, err := m.svc.Snapshot(m.ctx, days)
		return loadedMsg{snap: snap, err: err}
	}
}

func (m boardModel) rolloverCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CheckRollover(m.ctx)
		return rolloverMsg{res: res, err: err}
	}
}

func (m boardModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleQuest(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) focusCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteFocusSession(m.ctx)
		return focusMsg{res: res, err: err}
	}
}

func (m boardModel) interfereCmd(tags []string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.LogInterference(m.ctx, tags...)
		return interferedMsg{res: res, err: err}
	}
}

func (m boardModel) ackCmd() tea.Cmd {
	return func() tea.Msg {
		return ackMsg{err: m.svc.AcknowledgePenalty(m.ctx)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = m.svc.Clock().Now()
		cmds := []tea.Cmd{m.tickCmd(), m.rolloverCmd()}
		if !m.focusEnd.IsZero() && !m.now.Before(m.focusEnd) {
			m.focusEnd = time.Time{}
			cmds = append(cmds, m.focusCmd())
		}
		return m, tea.Batch(cmds...)

	case rolloverMsg:
		if msg.err != nil {
			m.lastLog = "Rollover failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Ran {
			m.lastLog = describeRollover(msg.res)
			return m, m.loadCmd()
		}
		if m.snap == nil {
			return m, m.loadCmd()
		}
		return m, nil

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		m.clampSelection()
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeToggle(msg.res)
		return m, m.loadCmd()

	case focusMsg:
		if msg.err != nil {
			m.lastLog = "Focus session failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Suppressed {
			m.lastLog = "Focus session complete. Rewards suppressed."
		} else {
			m.lastLog = fmt.Sprintf("Focus session complete: +%d XP", msg.res.Awarded)
		}
		return m, m.loadCmd()

	case interferedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = "Interference logged: " + strings.Join(msg.res.Tags, ", ")
		return m, m.loadCmd()

	case ackMsg:
		if msg.err != nil {
			m.lastLog = "Dismiss failed: " + msg.err.Error()
			return m, nil
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.tagging {
			return m.updateTagging(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateTagging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.tagging = false
		m.tagInput.Blur()
		m.tagInput.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		tags := engine.NormalizeTags(strings.Split(m.tagInput.Value(), ","))
		m.tagging = false
		m.tagInput.Blur()
		m.tagInput.SetValue("")
		if len(tags) == 0 {
			m.lastLog = "No tags entered."
			return m, nil
		}
		return m, m.interfereCmd(tags)
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visibleQuests())-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.ShowAll):
		m.showAll = !m.showAll
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.Calendar):
		m.calendarFull = !m.calendarFull
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Toggle):
		quests := m.visibleQuests()
		if m.selected < 0 || m.selected >= len(quests) {
			return m, nil
		}
		q := quests[m.selected]
		if !q.Active {
			m.lastLog = "That quest is not due today."
			return m, nil
		}
		return m, m.toggleCmd(q.ID)
	case key.Matches(msg, m.keys.Focus):
		if !m.focusEnd.IsZero() {
			m.lastLog = "Focus session already running."
			return m, nil
		}
		m.focusEnd = m.now.Add(m.svc.Rules().FocusLength)
		m.lastLog = "Focus session started."
		return m, nil
	case key.Matches(msg, m.keys.Interfere):
		m.tagging = true
		return m, m.tagInput.Focus()
	case key.Matches(msg, m.keys.Ack):
		if m.snap == nil || m.snap.PenaltyNotice == "" {
			return m, nil
		}
		return m, m.ackCmd()
	}
	return m, nil
}

func (m boardModel) visibleQuests() []engine.Quest {
	if m.snap == nil {
		return nil
	}
	if m.showAll {
		return m.snap.Quests
	}
	return m.snap.ActiveQuests()
}

func (m *boardModel) clampSelection() {
	n := len(m.visibleQuests())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func describeRollover(res *engine.RolloverResult) string {
	parts := []string{"New day " + res.Day + "."}
	if len(res.Penalties) > 0 {
		parts = append(parts, fmt.Sprintf("%d quest(s) missed: -%d XP.", len(res.Penalties), res.XPLost))
	}
	if res.Level == engine.LevelDown {
		parts = append(parts, ui.BadgeLevelDown)
	}
	if res.SuppressionEngaged {
		parts = append(parts, "Suppression engaged.")
	} else if res.SuppressionCleared {
		parts = append(parts, "Suppression lifted.")
	}
	return strings.Join(parts, " ")
}

func describeToggle(res *engine.QuestResult) string {
	verb := "Restored"
	if res.Quest.Completed {
		verb = "Completed"
	}
	s := fmt.Sprintf("%s %q", verb, res.Quest.Name)
	if res.Suppressed && res.Quest.Completed {
		return s + " (rewards suppressed)"
	}
	if res.StatDelta != 0 {
		s += fmt.Sprintf(" %+d %s", res.StatDelta, strings.ToUpper(string(res.Quest.Stat)))
	}
	if res.AwardedXP != 0 {
		s += fmt.Sprintf(" %+d XP", res.AwardedXP)
	}
	switch res.Level {
	case engine.LevelUp:
		s += " " + ui.BadgeLevelUp
	case engine.LevelDown:
		s += " " + ui.BadgeLevelDown
	}
	return s
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.snap == nil {
		return "Solo: loading…\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	left := padLines(sidebar, leftW)
	body := joinColumns(left, main)
	return header + "\n\n" + body + "\n" + m.renderCalendar() + "\n" + footer
}

func (m boardModel) renderHeader() string {
	p := m.snap.Player
	level := ui.TierStyle(p.Tier).Render(fmt.Sprintf("Lv %d %s", p.Level, p.Title))
	bar := ui.ProgressBar(p.Experience, p.Required, 30)
	line := fmt.Sprintf("%s | %s | Rank %s | XP %d/%d %s",
		ui.Title.Render("SOLO"), level, p.Rank, p.Experience, p.Required, bar)
	status := ui.StatusBadge(string(m.snap.Status)) + "  " + ui.Muted.Render(m.snap.Message)
	if m.snap.Trend != m.snap.Status {
		status += "  " + ui.Dim.Render("trend: "+string(m.snap.Trend))
	}
	out := line + "\n" + status
	if m.snap.PenaltyNotice != "" {
		out += "\n" + ui.Bad.Render(ui.IconSkull+" Penalty applied on "+m.snap.PenaltyNotice+". Press x to dismiss.")
	}
	return out
}

func (m boardModel) renderSidebar() string {
	p := m.snap.Player
	lines := []string{ui.PanelTitle.Render("Attributes")}
	for _, st := range engine.Stats {
		lines = append(lines, fmt.Sprintf("%-13s %3d", st.Label(), p.Stats.Get(st)))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s Streak %d (best %d)", ui.IconFire, m.snap.CurrentStreak, m.snap.LongestStreak))
	lines = append(lines, fmt.Sprintf("%s Reset in %s", ui.IconClock, clock.FormatCountdown(clock.Countdown(m.now))))
	if !m.focusEnd.IsZero() {
		left := m.focusEnd.Sub(m.now)
		lines = append(lines, fmt.Sprintf("%s Focus %s", ui.IconBolt, clock.FormatCountdown(left)))
	}
	asc := p.Ascension
	lines = append(lines, ui.Dim.Render(fmt.Sprintf("Entity: %s %.0f%%", asc.Phase, asc.Progress*100)))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	quests := m.visibleQuests()
	title := "Daily Quests"
	if m.showAll {
		title = "All Quests"
	}
	out := []string{ui.PanelTitle.Render(fmt.Sprintf("%s (%d/%d)", title, len(m.snap.Quests), m.svc.Rules().MaxQuests))}
	if len(quests) == 0 {
		out = append(out, ui.Muted.Render("(no quests due)"))
	}
	for i, q := range quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		if q.Completed {
			box = "[x]"
		}
		name := truncateName(q.Name, maxNameWidth)
		if i == m.selected {
			name = ui.SelectedRow.Render(name)
		}
		out = append(out, fmt.Sprintf("%s%s %s%s +1 %s %s", cursor, box, name,
			ui.ImportanceMark(string(q.Importance)), strings.ToUpper(string(q.Stat)),
			ui.QuestState(q.Completed, q.Active)))
	}
	out = append(out, "")
	out = append(out, fmt.Sprintf("Today: +%d XP (%.0f%% efficiency)", m.snap.AwardedToday, m.snap.Efficiency*100))
	if m.snap.InterferenceToday {
		out = append(out, ui.Warn.Render(ui.IconWarn+" Interference: "+strings.Join(m.snap.InterferenceTags, ", ")))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderCalendar() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitle.Render(fmt.Sprintf("Last %d days", m.calendarDays())))
	for i, d := range m.snap.Calendar {
		if i%calendarRowWidth == 0 {
			b.WriteString("\n")
		}
		switch {
		case d.Complete:
			b.WriteString(ui.Good.Render("■"))
		case d.Today:
			b.WriteString(ui.Key.Render("□"))
		default:
			b.WriteString(ui.Dim.Render("□"))
		}
	}
	return b.String()
}

func (m boardModel) renderFooter() string {
	if m.tagging {
		return m.tagInput.View() + ui.Dim.Render("  (enter to log, esc to cancel)")
	}
	var help []string
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, ui.Key.Render(h.Key)+" "+h.Desc)
	}
	return ui.Dim.Render(strings.Join(help, " · ")) + "\n" + m.lastLog
}

// padLines pads every line of s to width columns.
func padLines(s string, width int) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return lines
}

func joinColumns(left []string, right string) string {
	rightLines := strings.Split(right, "\n")
	n := len(left)
	if len(rightLines) > n {
		n = len(rightLines)
	}
	pad := ""
	if len(left) > 0 {
		pad = strings.Repeat(" ", ansiWidth(left[0]))
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		l, r := pad, ""
		if i < len(left) {
			l = left[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(l)
		b.WriteString("  ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}
