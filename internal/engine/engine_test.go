package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/config"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

var day1 = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)

func newTestService(t *testing.T, opts ...Option) (*Service, *clock.FakeClock) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clk := clock.Fake(day1)
	svc := NewService(db, append([]Option{WithClock(clk)}, opts...)...)
	return svc, clk
}

func nextDay(clk *clock.FakeClock) {
	clk.Advance(24 * time.Hour)
}

func addQuest(t *testing.T, svc *Service, name string, stat Stat) Quest {
	t.Helper()
	res, err := svc.AddQuest(context.Background(), QuestInput{Name: name, Stat: stat})
	if err != nil {
		t.Fatalf("AddQuest(%q): %v", name, err)
	}
	return res.Quest
}

func snapshot(t *testing.T, svc *Service) *Snapshot {
	t.Helper()
	snap, err := svc.Snapshot(context.Background(), 0)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return snap
}

func TestRequiredForLevel(t *testing.T) {
	cases := map[int]int{1: 101, 2: 104, 3: 110, 5: 130, 10: 220, 100: 12100}
	for level, want := range cases {
		if got := RequiredForLevel(level); got != want {
			t.Fatalf("RequiredForLevel(%d)=%d, want %d", level, got, want)
		}
	}
}

func TestApplyExperienceKeepsInvariant(t *testing.T) {
	p := &storage.Player{Level: 1}
	for i, delta := range []int{50, 300, -20, 1000, -900, -5000, 101, 7} {
		ApplyExperience(p, delta)
		if p.Level < 1 {
			t.Fatalf("step %d: level=%d", i, p.Level)
		}
		if p.Experience < 0 || p.Experience >= RequiredForLevel(p.Level) {
			t.Fatalf("step %d: experience=%d outside [0, %d)", i, p.Experience, RequiredForLevel(p.Level))
		}
	}
}

func TestApplyExperienceBoundaries(t *testing.T) {
	p := &storage.Player{Level: 1}
	if got := ApplyExperience(p, 101); got != LevelUp {
		t.Fatalf("change=%v, want up", got)
	}
	if p.Level != 2 || p.Experience != 0 {
		t.Fatalf("got level %d xp %d, want level 2 xp 0", p.Level, p.Experience)
	}

	p = &storage.Player{Level: 2, Experience: 5}
	if got := ApplyExperience(p, -10); got != LevelDown {
		t.Fatalf("change=%v, want down", got)
	}
	if p.Level != 1 || p.Experience != 96 {
		t.Fatalf("got level %d xp %d, want level 1 xp 96", p.Level, p.Experience)
	}

	p = &storage.Player{Level: 1, Experience: 20}
	ApplyExperience(p, -50)
	if p.Level != 1 || p.Experience != 0 {
		t.Fatalf("level-1 clamp: got level %d xp %d", p.Level, p.Experience)
	}
}

func TestAdjustStatFloorsAtZero(t *testing.T) {
	p := &storage.Player{Level: 1, Vit: 1}
	AdjustStat(p, StatVitality, -3)
	if p.Vit != 0 {
		t.Fatalf("vit=%d, want 0", p.Vit)
	}
}

func TestTitleAndRank(t *testing.T) {
	cases := []struct {
		level int
		title string
		rank  string
		tier  int
	}{
		{1, "Unawakened", "E", 1},
		{20, "Unawakened", "D", 1},
		{30, "Awakened", "D", 1},
		{50, "S Rank Hunter", "C", 1},
		{71, "Monarch Candidate", "B", 1},
		{99, "Monarch Candidate", "A", 1},
		{100, "Shadow Monarch", "S", 2},
		{120, "Shadow Monarch", "SS", 2},
		{150, "Grim Reaper", "SSS", 3},
	}
	for _, c := range cases {
		if got := TitleFor(c.level); got != c.title {
			t.Fatalf("TitleFor(%d)=%q, want %q", c.level, got, c.title)
		}
		if got := RankFor(c.level); got != c.rank {
			t.Fatalf("RankFor(%d)=%q, want %q", c.level, got, c.rank)
		}
		if got := TierFor(c.level); got != c.tier {
			t.Fatalf("TierFor(%d)=%d, want %d", c.level, got, c.tier)
		}
	}

	if a := AscensionFor(125); a.Phase != AscensionDrift || a.Progress != 0.5 {
		t.Fatalf("AscensionFor(125)=%+v", a)
	}
}

func TestIsActiveOn(t *testing.T) {
	created := "2025-03-03"
	cases := []struct {
		name string
		q    Quest
		day  string
		want bool
	}{
		{"daily", Quest{Cadence: CadenceDaily, CreatedDay: created}, created, true},
		{"alternate creation day", Quest{Cadence: CadenceAlternate, CreatedDay: created}, created, false},
		{"alternate day 1", Quest{Cadence: CadenceAlternate, CreatedDay: created}, "2025-03-04", true},
		{"alternate day 2", Quest{Cadence: CadenceAlternate, CreatedDay: created}, "2025-03-05", false},
		{"alternate day 3", Quest{Cadence: CadenceAlternate, CreatedDay: created}, "2025-03-06", true},
		{"specific before", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatNone}, "2025-03-09", false},
		{"specific on", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatNone}, "2025-03-10", true},
		{"specific after none", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatNone}, "2025-03-11", false},
		{"specific after daily", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatDaily}, "2025-03-12", true},
		{"specific after alternate odd", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatAlternate}, "2025-03-11", true},
		{"specific after alternate even", Quest{Cadence: CadenceSpecific, TargetDay: "2025-03-10", Repeat: RepeatAlternate}, "2025-03-12", false},
		{"specific missing target", Quest{Cadence: CadenceSpecific}, "2025-03-12", false},
	}
	for _, c := range cases {
		if got := IsActiveOn(c.q, c.day); got != c.want {
			t.Fatalf("%s: IsActiveOn=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestTargetExperience(t *testing.T) {
	a := Quest{Importance: ImportanceNormal}
	b := Quest{Importance: ImportanceNormal}
	if got := TargetExperience(100, []Quest{a, b}); got != 0 {
		t.Fatalf("none done=%d, want 0", got)
	}
	a.Completed = true
	if got := TargetExperience(100, []Quest{a, b}); got != 41 {
		t.Fatalf("one done=%d, want 41", got)
	}
	b.Completed = true
	if got := TargetExperience(100, []Quest{a, b}); got != 83 {
		t.Fatalf("both done=%d, want 83", got)
	}
	crit := Quest{Importance: ImportanceCritical, Completed: true}
	if got := TargetExperience(100, []Quest{crit}); got != 100 {
		t.Fatalf("critical=%d, want 100", got)
	}
	if got := TargetExperience(100, nil); got != 0 {
		t.Fatalf("no active=%d, want 0", got)
	}
}

func TestEnvelopeScoring(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := addQuest(t, svc, "Run", StatAgility)
	b := addQuest(t, svc, "Read", StatIntelligence)

	if _, err := svc.CompleteQuest(ctx, a.ID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	snap := snapshot(t, svc)
	if snap.Player.Experience != 41 || snap.AwardedToday != 41 {
		t.Fatalf("after one: xp=%d awarded=%d, want 41", snap.Player.Experience, snap.AwardedToday)
	}
	if snap.Player.Stats.Agility != DefaultStat+1 {
		t.Fatalf("agi=%d, want %d", snap.Player.Stats.Agility, DefaultStat+1)
	}

	if _, err := svc.CompleteQuest(ctx, b.ID); err != nil {
		t.Fatalf("complete b: %v", err)
	}
	snap = snapshot(t, svc)
	if snap.Player.Experience != 83 || snap.AwardedToday != 83 {
		t.Fatalf("after both: xp=%d awarded=%d, want 83", snap.Player.Experience, snap.AwardedToday)
	}

	// A third undone quest dilutes the envelope and takes XP back.
	addQuest(t, svc, "Stretch", StatVitality)
	snap = snapshot(t, svc)
	if want := 100 * 20 / 36; snap.AwardedToday != want || snap.Player.Experience != want {
		t.Fatalf("after add: xp=%d awarded=%d, want %d", snap.Player.Experience, snap.AwardedToday, want)
	}
}

func TestToggleEvenTimesIsNeutral(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addQuest(t, svc, "Push-ups", StatStrength)
	addQuest(t, svc, "Journal", StatWillpower)
	before := snapshot(t, svc)

	for i := 0; i < 4; i++ {
		if _, err := svc.ToggleQuest(ctx, q.ID); err != nil {
			t.Fatalf("toggle #%d: %v", i+1, err)
		}
	}

	after := snapshot(t, svc)
	if after.Player != before.Player {
		t.Fatalf("player changed: before %+v after %+v", before.Player, after.Player)
	}
	if after.AwardedToday != before.AwardedToday {
		t.Fatalf("awarded=%d, want %d", after.AwardedToday, before.AwardedToday)
	}
}

func TestAddQuestCapacityAndValidation(t *testing.T) {
	rules := config.DefaultRules()
	rules.MaxQuests = 3
	svc, _ := newTestService(t, WithRules(rules))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		addQuest(t, svc, "q", StatStrength)
	}
	_, err := svc.AddQuest(ctx, QuestInput{Name: "one too many", Stat: StatStrength})
	var capErr CapacityError
	if !errors.As(err, &capErr) || capErr.Limit != 3 {
		t.Fatalf("err=%v, want CapacityError{3}", err)
	}

	svc2, _ := newTestService(t)
	bad := []QuestInput{
		{Name: "   ", Stat: StatStrength},
		{Name: "x", Stat: "luck"},
		{Name: "x", Stat: StatStrength, Importance: "legendary"},
		{Name: "x", Stat: StatStrength, Cadence: CadenceSpecific},
		{Name: "x", Stat: StatStrength, Cadence: CadenceSpecific, TargetDay: "soon"},
	}
	for _, in := range bad {
		_, err := svc2.AddQuest(ctx, in)
		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("AddQuest(%+v) err=%v, want ValidationError", in, err)
		}
	}
	quests, err := svc2.ListQuests(ctx)
	if err != nil {
		t.Fatalf("ListQuests: %v", err)
	}
	if len(quests) != 0 {
		t.Fatalf("invalid input stored %d quests", len(quests))
	}
}

func TestAddQuestDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	q := addQuest(t, svc, "  Meditate ", StatWillpower)
	if q.Name != "Meditate" || q.Importance != ImportanceNormal || q.Cadence != CadenceDaily {
		t.Fatalf("got %+v", q)
	}
	if q.CreatedDay != "2025-03-03" || !q.Active {
		t.Fatalf("created=%q active=%v", q.CreatedDay, q.Active)
	}
}

func TestEditUnknownQuest(t *testing.T) {
	svc, _ := newTestService(t)
	name := "renamed"
	_, err := svc.EditQuest(context.Background(), 42, QuestPatch{Name: &name})
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != 42 {
		t.Fatalf("err=%v, want NotFoundError{42}", err)
	}
	if _, err := svc.DeleteQuest(context.Background(), 42); !errors.As(err, &nf) {
		t.Fatalf("delete err=%v, want NotFoundError", err)
	}
}

func TestEditKeepsCompletionAndCredit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addQuest(t, svc, "Sprint", StatStrength)
	if _, err := svc.CompleteQuest(ctx, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	agi := StatAgility
	res, err := svc.EditQuest(ctx, q.ID, QuestPatch{Stat: &agi})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !res.Quest.Completed || res.Quest.CreditedStat != StatStrength {
		t.Fatalf("after edit: %+v", res.Quest)
	}

	if _, err := svc.RestoreQuest(ctx, q.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	snap := snapshot(t, svc)
	if snap.Player.Stats.Strength != DefaultStat || snap.Player.Stats.Agility != DefaultStat {
		t.Fatalf("stats after restore: %+v", snap.Player.Stats)
	}
}

func TestDeleteCompletedReversesCreditOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addQuest(t, svc, "Swim", StatVitality)
	keep := addQuest(t, svc, "Walk", StatVitality)
	if _, err := svc.CompleteQuest(ctx, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := snapshot(t, svc).Player.Stats.Vitality; got != DefaultStat+1 {
		t.Fatalf("vit=%d, want %d", got, DefaultStat+1)
	}

	res, err := svc.DeleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.StatDelta != -1 {
		t.Fatalf("stat delta=%d, want -1", res.StatDelta)
	}
	snap := snapshot(t, svc)
	if snap.Player.Stats.Vitality != DefaultStat {
		t.Fatalf("vit=%d, want %d", snap.Player.Stats.Vitality, DefaultStat)
	}
	if snap.AwardedToday != 0 || snap.Player.Experience != 0 {
		t.Fatalf("awarded=%d xp=%d, want 0", snap.AwardedToday, snap.Player.Experience)
	}

	// An undone quest carries no credit.
	if res, err := svc.DeleteQuest(ctx, keep.ID); err != nil || res.StatDelta != 0 {
		t.Fatalf("delete undone: res=%+v err=%v", res, err)
	}
}

func TestToggleInactiveQuestRejected(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.AddQuest(context.Background(), QuestInput{Name: "Laundry", Stat: StatVitality, Cadence: CadenceAlternate})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if res.Quest.Active {
		t.Fatalf("alternate quest active on its creation day")
	}
	_, err = svc.ToggleQuest(context.Background(), res.Quest.ID)
	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}

func TestRolloverPenalty(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	done := addQuest(t, svc, "Run", StatAgility)
	missed := addQuest(t, svc, "Read", StatIntelligence)
	if _, err := svc.CompleteQuest(ctx, done.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	nextDay(clk)
	res, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("CheckRollover: %v", err)
	}
	if !res.Ran || res.ClosedDay != "2025-03-03" || res.Day != "2025-03-04" {
		t.Fatalf("result=%+v", res)
	}
	if len(res.Penalties) != 1 || res.Penalties[0].QuestID != missed.ID {
		t.Fatalf("penalties=%+v, want only quest %d", res.Penalties, missed.ID)
	}

	snap := snapshot(t, svc)
	if snap.Player.Stats.Intelligence != DefaultStat-1 {
		t.Fatalf("int=%d, want %d", snap.Player.Stats.Intelligence, DefaultStat-1)
	}
	if snap.Player.Stats.Agility != DefaultStat+1 {
		t.Fatalf("agi=%d, want %d", snap.Player.Stats.Agility, DefaultStat+1)
	}
	if snap.Player.Experience != 41-config.DefaultPenaltyXP {
		t.Fatalf("xp=%d, want %d", snap.Player.Experience, 41-config.DefaultPenaltyXP)
	}
	for _, q := range snap.Quests {
		if q.Completed || q.CreditedStat != "" {
			t.Fatalf("quest %d not reset: %+v", q.ID, q)
		}
	}
	if snap.AwardedToday != 0 {
		t.Fatalf("awarded=%d, want 0", snap.AwardedToday)
	}
	if snap.PenaltyNotice != "2025-03-04" {
		t.Fatalf("penalty notice=%q", snap.PenaltyNotice)
	}

	again, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("second CheckRollover: %v", err)
	}
	if again.Ran {
		t.Fatalf("second rollover on the same day ran")
	}

	if err := svc.AcknowledgePenalty(ctx); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if n := snapshot(t, svc).PenaltyNotice; n != "" {
		t.Fatalf("notice after ack=%q", n)
	}
}

func TestRolloverSkipsInactiveQuests(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddQuest(ctx, QuestInput{Name: "Laundry", Stat: StatVitality, Cadence: CadenceAlternate}); err != nil {
		t.Fatalf("add: %v", err)
	}
	nextDay(clk)
	res, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("CheckRollover: %v", err)
	}
	if len(res.Penalties) != 0 {
		t.Fatalf("penalised a quest that was not due: %+v", res.Penalties)
	}
}

func TestFirstRolloverHasNoPenalty(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.CheckRollover(context.Background())
	if err != nil {
		t.Fatalf("CheckRollover: %v", err)
	}
	if !res.Ran || res.ClosedDay != "" || len(res.Penalties) != 0 {
		t.Fatalf("first rollover=%+v", res)
	}
}

func TestSuppressionEngagesAndClears(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := svc.LogInterference(ctx, "phone"); err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		nextDay(clk)
	}

	res, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("day 8 rollover: %v", err)
	}
	if !res.SuppressionEngaged {
		t.Fatalf("suppression not engaged on day 8")
	}
	snap := snapshot(t, svc)
	if !snap.Suppressed || snap.Status != StatusSuppression || snap.Trend != StatusSuppression {
		t.Fatalf("day 8 snapshot: suppressed=%v status=%s trend=%s", snap.Suppressed, snap.Status, snap.Trend)
	}

	// Rewards are sealed while suppressed.
	q := addQuest(t, svc, "Run", StatAgility)
	tr, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("complete while suppressed: %v", err)
	}
	if !tr.Suppressed || tr.StatDelta != 0 || tr.AwardedXP != 0 {
		t.Fatalf("suppressed completion=%+v", tr)
	}
	focus, err := svc.CompleteFocusSession(ctx)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if focus.Awarded != 0 {
		t.Fatalf("focus awarded %d while suppressed", focus.Awarded)
	}
	snap = snapshot(t, svc)
	if snap.Player.Experience != 0 || snap.Player.Stats.Agility != DefaultStat {
		t.Fatalf("player changed while suppressed: %+v", snap.Player)
	}
	if _, err := svc.LogInterference(ctx, "phone"); err != nil {
		t.Fatalf("day 8 interference: %v", err)
	}

	nextDay(clk)
	res, err = svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("day 9 rollover: %v", err)
	}
	if !res.SuppressionCleared || res.SuppressionEngaged {
		t.Fatalf("day 9 result=%+v", res)
	}
	if snapshot(t, svc).Suppressed {
		t.Fatalf("suppression spans two days")
	}
}

func TestSuppressionNeedsUnbrokenRun(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if i != 3 {
			if _, err := svc.LogInterference(ctx, "noise"); err != nil {
				t.Fatalf("log: %v", err)
			}
		}
		nextDay(clk)
	}
	res, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if res.SuppressionEngaged {
		t.Fatalf("suppression engaged across a gap")
	}
	n, err := svc.InterferenceStreak(ctx)
	if err != nil {
		t.Fatalf("InterferenceStreak: %v", err)
	}
	if n != 4 {
		t.Fatalf("interference streak=%d, want 4", n)
	}
}

func TestLogInterference(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LogInterference(ctx, " ", ""); err == nil {
		t.Fatalf("expected error for empty tags")
	}
	res, err := svc.LogInterference(ctx, "phone", " phone ", "noise")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(res.Tags) != 2 {
		t.Fatalf("tags=%v", res.Tags)
	}
	res, err = svc.LogInterference(ctx, "noise", "guests")
	if err != nil {
		t.Fatalf("log again: %v", err)
	}
	if len(res.Added) != 1 || res.Added[0] != "guests" || len(res.Tags) != 3 {
		t.Fatalf("second log=%+v", res)
	}

	has, err := svc.HasInterferenceToday(ctx)
	if err != nil || !has {
		t.Fatalf("HasInterferenceToday=%v err=%v", has, err)
	}
	snap := snapshot(t, svc)
	if snap.Status != StatusUnstable || snap.Trend != StatusWarning {
		t.Fatalf("status=%s trend=%s", snap.Status, snap.Trend)
	}
	if snap.CurrentStreak != 1 {
		t.Fatalf("interference day should count toward the streak, got %d", snap.CurrentStreak)
	}
}

func TestStreakMarksFollowCompletion(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	a := addQuest(t, svc, "Run", StatAgility)
	b := addQuest(t, svc, "Read", StatIntelligence)
	if _, err := svc.CompleteQuest(ctx, a.ID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if n := snapshot(t, svc).CurrentStreak; n != 0 {
		t.Fatalf("streak with one undone=%d", n)
	}
	if _, err := svc.CompleteQuest(ctx, b.ID); err != nil {
		t.Fatalf("complete b: %v", err)
	}
	if n := snapshot(t, svc).CurrentStreak; n != 1 {
		t.Fatalf("streak after full clear=%d, want 1", n)
	}
	if _, err := svc.RestoreQuest(ctx, b.ID); err != nil {
		t.Fatalf("restore b: %v", err)
	}
	if n := snapshot(t, svc).CurrentStreak; n != 0 {
		t.Fatalf("streak after restore=%d, want 0", n)
	}
	if _, err := svc.CompleteQuest(ctx, b.ID); err != nil {
		t.Fatalf("complete b again: %v", err)
	}

	nextDay(clk)
	if _, err := svc.CheckRollover(ctx); err != nil {
		t.Fatalf("rollover: %v", err)
	}
	snap := snapshot(t, svc)
	if snap.CurrentStreak != 1 || snap.LongestStreak != 1 {
		t.Fatalf("next day: current=%d longest=%d", snap.CurrentStreak, snap.LongestStreak)
	}
}

func TestStreakCounting(t *testing.T) {
	days := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-06"}
	if got := LongestStreak(days); got != 3 {
		t.Fatalf("LongestStreak=%d, want 3", got)
	}
	if got := CurrentStreak(days, "2025-03-06"); got != 1 {
		t.Fatalf("CurrentStreak(D+5)=%d, want 1", got)
	}
	if got := CurrentStreak(days, "2025-03-04"); got != 3 {
		t.Fatalf("CurrentStreak(yesterday complete)=%d, want 3", got)
	}
	if got := CurrentStreak(days, "2025-03-05"); got != 0 {
		t.Fatalf("CurrentStreak(gap)=%d, want 0", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Fatalf("LongestStreak(nil)=%d", got)
	}

	cal := Calendar(days, "2025-03-06", 4)
	if len(cal) != 4 || cal[0].Day != "2025-03-03" || !cal[0].Complete || cal[1].Complete || !cal[3].Today {
		t.Fatalf("calendar=%+v", cal)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(true, true); got != StatusSuppression {
		t.Fatalf("suppressed+interference=%s", got)
	}
	if got := Classify(false, true); got != StatusUnstable {
		t.Fatalf("interference=%s", got)
	}
	if got := Classify(false, false); got != StatusStable {
		t.Fatalf("quiet=%s", got)
	}

	trend := map[int]Status{0: StatusStable, 1: StatusWarning, 2: StatusWarning, 3: StatusDegrading, 4: StatusDegrading, 5: StatusSuppression, 7: StatusSuppression}
	for n, want := range trend {
		if got := ClassifyTrend(false, n); got != want {
			t.Fatalf("ClassifyTrend(%d)=%s, want %s", n, got, want)
		}
	}
	if got := ClassifyTrend(true, 0); got != StatusSuppression {
		t.Fatalf("suppression override=%s", got)
	}
}

func TestFocusSession(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.CompleteFocusSession(context.Background())
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if res.Awarded != config.DefaultFocusXP {
		t.Fatalf("awarded=%d", res.Awarded)
	}
	if xp := snapshot(t, svc).Player.Experience; xp != config.DefaultFocusXP {
		t.Fatalf("xp=%d", xp)
	}
}

func TestAchievements(t *testing.T) {
	snap := &Snapshot{
		Player:        PlayerView{Level: 55, Stats: StatBlock{Strength: 30}},
		LongestStreak: 8,
	}
	c := NewAchievementChecker(snap)
	earned := map[string]bool{}
	for _, a := range c.GetAchievements() {
		earned[a.ID] = a.Earned
	}
	for _, id := range []string{"awakened", "s_rank", "first_week", "strong"} {
		if !earned[id] {
			t.Fatalf("%s not earned", id)
		}
	}
	for _, id := range []string{"candidate", "first_month", "swift", "full_clear"} {
		if earned[id] {
			t.Fatalf("%s earned early", id)
		}
	}
	if c.CountEarned() != 4 {
		t.Fatalf("CountEarned=%d, want 4", c.CountEarned())
	}
	if c.CountTotal() != len(c.GetAchievements()) {
		t.Fatalf("CountTotal=%d, want %d", c.CountTotal(), len(c.GetAchievements()))
	}
}

func TestForceRolloverCannotFarmRewards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addQuest(t, svc, "Sprints", StatAgility)
	for round := 0; round < 5; round++ {
		if _, err := svc.CompleteQuest(ctx, q.ID); err != nil {
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("round %d complete: %v", round, err)
			}
		}
		if _, err := svc.ForceRollover(ctx); err != nil {
			t.Fatalf("round %d force: %v", round, err)
		}
	}

	snap := snapshot(t, svc)
	if snap.Player.Level != 1 || snap.Player.Experience != 83 {
		t.Fatalf("level=%d xp=%d, want 1/83", snap.Player.Level, snap.Player.Experience)
	}
	if snap.Player.Stats.Agility != DefaultStat+1 {
		t.Fatalf("agi=%d, want %d", snap.Player.Stats.Agility, DefaultStat+1)
	}
	if snap.AwardedToday != 83 {
		t.Fatalf("awarded=%d, want 83", snap.AwardedToday)
	}
	if !snap.Quests[0].Completed || snap.Quests[0].CreditedStat != StatAgility {
		t.Fatalf("manual close touched completion: %+v", snap.Quests[0])
	}
}

func TestForceRolloverPenalisesOncePerDay(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	done := addQuest(t, svc, "Run", StatAgility)
	missed := addQuest(t, svc, "Read", StatIntelligence)
	if _, err := svc.CompleteQuest(ctx, done.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	first, err := svc.ForceRollover(ctx)
	if err != nil {
		t.Fatalf("ForceRollover: %v", err)
	}
	if !first.Ran || !first.Manual || first.ClosedDay != "2025-03-03" {
		t.Fatalf("first=%+v", first)
	}
	if len(first.Penalties) != 1 || first.Penalties[0].QuestID != missed.ID {
		t.Fatalf("penalties=%+v, want only quest %d", first.Penalties, missed.ID)
	}

	second, err := svc.ForceRollover(ctx)
	if err != nil {
		t.Fatalf("second ForceRollover: %v", err)
	}
	if second.Ran || len(second.Penalties) != 0 {
		t.Fatalf("second manual trigger on the same day ran: %+v", second)
	}

	snap := snapshot(t, svc)
	if snap.Player.Stats.Intelligence != DefaultStat-1 {
		t.Fatalf("int=%d, want %d", snap.Player.Stats.Intelligence, DefaultStat-1)
	}
	if snap.Player.Experience != 41-config.DefaultPenaltyXP {
		t.Fatalf("xp=%d, want %d", snap.Player.Experience, 41-config.DefaultPenaltyXP)
	}
	if snap.AwardedToday != 41 {
		t.Fatalf("awarded=%d, want 41", snap.AwardedToday)
	}

	late := addQuest(t, svc, "Stretch", StatVitality)

	// The midnight close skips what the manual trigger already charged.
	nextDay(clk)
	res, err := svc.ForceRollover(ctx)
	if err != nil {
		t.Fatalf("midnight ForceRollover: %v", err)
	}
	if !res.Ran || res.Manual || res.ClosedDay != "2025-03-03" || res.Day != "2025-03-04" {
		t.Fatalf("midnight=%+v", res)
	}
	if len(res.Penalties) != 1 || res.Penalties[0].QuestID != late.ID {
		t.Fatalf("midnight penalties=%+v, want only quest %d", res.Penalties, late.ID)
	}
	snap = snapshot(t, svc)
	if snap.Player.Stats.Intelligence != DefaultStat-1 || snap.Player.Stats.Vitality != DefaultStat-1 {
		t.Fatalf("stats=%+v", snap.Player.Stats)
	}
	for _, q := range snap.Quests {
		if q.Completed {
			t.Fatalf("quest %d not reset at midnight", q.ID)
		}
	}
}

func TestCorruptPlayerIsRepaired(t *testing.T) {
	cases := []struct {
		name      string
		stored    storage.Player
		level, xp int
		str       int
	}{
		{"level below one", storage.Player{Level: 0, Experience: -50, Str: -3, Agi: 10, Int: 10, Vit: 10, Will: 10}, 1, 0, 0},
		{"experience past threshold", storage.Player{Level: 1, Experience: 250, Str: 10, Agi: 10, Int: 10, Vit: 10, Will: 10}, 3, 45, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()

			players := storage.NewPlayerRepo(svc.db)
			if _, err := players.GetOrCreateMain(ctx); err != nil {
				t.Fatal(err)
			}
			stored := tc.stored
			stored.Key = storage.MainPlayerKey
			if err := players.Update(ctx, &stored); err != nil {
				t.Fatal(err)
			}

			snap := snapshot(t, svc)
			if snap.Player.Level != tc.level || snap.Player.Experience != tc.xp || snap.Player.Stats.Strength != tc.str {
				t.Fatalf("player=%+v, want level %d xp %d str %d", snap.Player, tc.level, tc.xp, tc.str)
			}
			addQuest(t, svc, "Pushups", StatStrength)
		})
	}
}

func TestCorruptQuestFieldsFallBackToDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := storage.NewQuestRepo(svc.db).Insert(ctx, storage.Quest{
		Name: "Mystery", Stat: "luck", Importance: "epic", Cadence: "weekly",
		RepeatMode: "sometimes", CreditedStat: "charm", CreatedDay: "2025-03-03",
	})
	if err != nil {
		t.Fatal(err)
	}

	snap := snapshot(t, svc)
	q := snap.Quests[0]
	if q.Stat != StatWillpower || q.Importance != ImportanceNormal || q.Cadence != CadenceDaily ||
		q.Repeat != RepeatNone || q.CreditedStat != "" || !q.Active {
		t.Fatalf("quest=%+v", q)
	}

	if _, err := svc.CompleteQuest(ctx, id); err != nil {
		t.Fatalf("complete repaired quest: %v", err)
	}
	if will := snapshot(t, svc).Player.Stats.Willpower; will != DefaultStat+1 {
		t.Fatalf("will=%d, want %d", will, DefaultStat+1)
	}
	addQuest(t, svc, "Run", StatAgility)
}

func TestCorruptEngineStateRecovers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	addQuest(t, svc, "Read", StatIntelligence)

	state := storage.NewStateRepo(svc.db)
	if err := state.Set(ctx, storage.KeyAwardedDay, "2025-03-03"); err != nil {
		t.Fatal(err)
	}
	if err := state.Set(ctx, storage.KeyAwardedXP, "lots"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.db.ExecContext(ctx, `INSERT INTO interference_log (day, tags) VALUES ('2025-03-03', '{broken')`); err != nil {
		t.Fatal(err)
	}

	snap := snapshot(t, svc)
	if snap.AwardedToday != 0 || snap.InterferenceToday {
		t.Fatalf("awarded=%d interference=%v", snap.AwardedToday, snap.InterferenceToday)
	}
	addQuest(t, svc, "Run", StatAgility)
	if raw, _, _ := state.Get(ctx, storage.KeyAwardedXP); raw != "0" {
		t.Fatalf("awarded counter=%q, want rewritten 0", raw)
	}

	// An unreadable last day closes nothing rather than guessing.
	if err := state.Set(ctx, storage.KeyLastProcessedDay, "last tuesday"); err != nil {
		t.Fatal(err)
	}
	res, err := svc.CheckRollover(ctx)
	if err != nil {
		t.Fatalf("CheckRollover: %v", err)
	}
	if !res.Ran || len(res.Penalties) != 0 {
		t.Fatalf("rollover=%+v", res)
	}
	if day, _, _ := state.Get(ctx, storage.KeyLastProcessedDay); day != "2025-03-03" {
		t.Fatalf("last processed=%q", day)
	}
}
