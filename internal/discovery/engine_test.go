package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leeks92/bus-mustarddata/internal/logging"
	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/ratelimit"
	"github.com/leeks92/bus-mustarddata/internal/tago"
	"github.com/leeks92/bus-mustarddata/internal/terminal"
)

// fakeSource serves schedules for the pairs in schedules and records every
// schedule query
type fakeSource struct {
	destinations map[string][]model.ArrivalTerminal
	schedules    map[string][]tago.ScheduleItem
	queried      []string
	failOn       string
}

func (f *fakeSource) Destinations(ctx context.Context, depCode string) ([]model.ArrivalTerminal, error) {
	return f.destinations[depCode], nil
}

func (f *fakeSource) Schedules(ctx context.Context, depID, arrID, date string) ([]tago.ScheduleItem, error) {
	key := model.RouteKey(depID, arrID)
	f.queried = append(f.queried, key)
	if key == f.failOn {
		return nil, &tago.FetchError{Endpoint: "getStrtpntAlocFndExpbusInfo", Err: tago.ErrQuotaExceeded}
	}
	return f.schedules[key], nil
}

func item(dep, arr, grade string, charge int) tago.ScheduleItem {
	return tago.ScheduleItem{
		DepPlandTime: tago.FlexString(dep),
		ArrPlandTime: tago.FlexString(arr),
		GradeNm:      tago.FlexString(grade),
		Charge:       tago.FlexInt(charge),
	}
}

func newDirectory() *terminal.ExpressDirectory {
	short := []model.ShortTerminal{
		{Code: "010", Name: "서울경부"},
		{Code: "700", Name: "부산"},
	}
	full := []model.Terminal{
		{ID: "NAEK010", Name: "서울경부"},
		{ID: "NAEK700", Name: "부산"},
		{ID: "NAEK300", Name: "대전복합"},
	}
	return terminal.NewExpressDirectory(short, full, terminal.NameMatchResolver{})
}

func TestDiscoverByDestinations(t *testing.T) {
	src := &fakeSource{
		destinations: map[string][]model.ArrivalTerminal{
			"010": {{Code: "700", Name: "부산"}, {Code: "300", Name: "대전"}},
			"700": {{Code: "010", Name: "서울경부"}},
		},
		schedules: map[string][]tago.ScheduleItem{
			"NAEK010-NAEK700": {
				item("202501150600", "202501151020", "우등", 38000),
				item("202501150700", "202501151120", "", 0),
			},
			"NAEK700-NAEK010": {item("202501150630", "202501151050", "프리미엄", 52000)},
		},
	}

	e := NewEngine(ratelimit.Unlimited(), logging.Nop())
	stats, err := e.DiscoverByDestinations(context.Background(), src, newDirectory(), Options{Date: "20250115"})
	if err != nil {
		t.Fatalf("DiscoverByDestinations error = %v", err)
	}

	routes := e.Routes()
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, expected 2", len(routes))
	}
	if stats.Discovered != 2 || stats.APICalls != 5 {
		t.Errorf("stats = %+v, expected 2 discovered over 5 calls", stats)
	}

	first := routes[0]
	if first.Key() != "NAEK010-NAEK700" || first.DepTerminalName != "서울경부" || first.ArrTerminalName != "부산" {
		t.Errorf("routes[0] = %+v", first)
	}
	if len(first.Schedules) != 2 {
		t.Fatalf("len(schedules) = %d, expected one per provider item", len(first.Schedules))
	}
	if first.Schedules[0].DepTime != "06:00" || first.Schedules[0].ArrTime != "10:20" {
		t.Errorf("schedule times = %+v", first.Schedules[0])
	}
	if first.Schedules[1].Grade != model.DefaultGrade || first.Schedules[1].Charge != 0 {
		t.Errorf("defaults not applied: %+v", first.Schedules[1])
	}

	// 300 is not in the short list; it resolves by fallback and has no schedules
	if e.Seen("NAEK010-NAEK300") {
		t.Error("pair without schedules should not be marked seen")
	}
}

func TestDiscoverByDestinations_FullIDArrival(t *testing.T) {
	src := &fakeSource{
		destinations: map[string][]model.ArrivalTerminal{
			"010": {{Code: "NAEK700", Name: "부산"}},
		},
		schedules: map[string][]tago.ScheduleItem{
			"NAEK010-NAEK700": {item("202501150600", "202501151020", "우등", 38000)},
		},
	}

	e := NewEngine(ratelimit.Unlimited(), logging.Nop())
	if _, err := e.DiscoverByDestinations(context.Background(), src, newDirectory(), Options{Date: "20250115"}); err != nil {
		t.Fatal(err)
	}
	if !e.Seen("NAEK010-NAEK700") {
		t.Errorf("queried %v, expected the full id arrival to be used as is", src.queried)
	}
}

func TestProbePairs_SkipsSeenAndSelf(t *testing.T) {
	src := &fakeSource{
		destinations: map[string][]model.ArrivalTerminal{
			"010": {{Code: "700", Name: "부산"}},
		},
		schedules: map[string][]tago.ScheduleItem{
			"NAEK010-NAEK700": {item("202501150600", "202501151020", "우등", 38000)},
			"NAEK010-NAEK300": {item("202501150600", "202501150800", "일반", 12000)},
		},
	}
	dir := newDirectory()
	e := NewEngine(ratelimit.Unlimited(), logging.Nop())

	if _, err := e.DiscoverByDestinations(context.Background(), src, dir, Options{Date: "20250115"}); err != nil {
		t.Fatal(err)
	}
	src.queried = nil

	majors := []model.Terminal{{ID: "NAEK010", Name: "서울경부"}}
	stats, err := e.ProbePairs(context.Background(), src, majors, dir.Full, Options{Date: "20250115", ScheduleClass: ratelimit.ClassProbe})
	if err != nil {
		t.Fatalf("ProbePairs error = %v", err)
	}

	if stats.SkippedSelf != 1 || stats.SkippedSeen != 1 {
		t.Errorf("stats = %+v, expected one self pair and one seen pair skipped", stats)
	}
	if len(src.queried) != 1 || src.queried[0] != "NAEK010-NAEK300" {
		t.Errorf("queried = %v, expected only NAEK010-NAEK300", src.queried)
	}

	keys := map[string]int{}
	for _, r := range e.Routes() {
		keys[r.Key()]++
	}
	for k, n := range keys {
		if n != 1 {
			t.Errorf("route %s appears %d times", k, n)
		}
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 unique routes, got %v", keys)
	}
}

func TestProbePairs_QuotaAbortsImmediately(t *testing.T) {
	src := &fakeSource{failOn: "A-B"}
	all := []model.Terminal{{ID: "A"}, {ID: "B"}, {ID: "C"}}

	e := NewEngine(ratelimit.Unlimited(), logging.Nop())
	_, err := e.ProbePairs(context.Background(), src, all, all, Options{Date: "20250115"})
	if !errors.Is(err, tago.ErrQuotaExceeded) {
		t.Fatalf("ProbePairs error = %v, expected ErrQuotaExceeded", err)
	}
	if len(src.queried) != 1 {
		t.Errorf("queried %v, expected no call after the quota error", src.queried)
	}
}

func TestProbePairs_Checkpoints(t *testing.T) {
	src := &fakeSource{schedules: map[string][]tago.ScheduleItem{
		"A-B": {item("202501150600", "202501150700", "일반", 1000)},
		"C-A": {item("202501150800", "202501150900", "일반", 1000)},
	}}
	all := []model.Terminal{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}

	var saved [][]model.Route
	opts := Options{
		Date:            "20250115",
		CheckpointEvery: 2,
		Checkpoint: func(ctx context.Context, routes []model.Route) error {
			saved = append(saved, routes)
			return nil
		},
	}

	e := NewEngine(ratelimit.Unlimited(), logging.Nop())
	if _, err := e.ProbePairs(context.Background(), src, all, all, opts); err != nil {
		t.Fatal(err)
	}

	if len(saved) != 2 {
		t.Fatalf("checkpoints = %d, expected 2 for 4 departures every 2", len(saved))
	}
	if len(saved[0]) != 1 || len(saved[1]) != 2 {
		t.Errorf("checkpoint sizes = %d, %d, expected 1, 2", len(saved[0]), len(saved[1]))
	}
}

func TestProbePairs_CheckpointFailure(t *testing.T) {
	all := []model.Terminal{{ID: "A"}, {ID: "B"}}
	boom := errors.New("disk full")
	opts := Options{
		CheckpointEvery: 1,
		Checkpoint:      func(ctx context.Context, routes []model.Route) error { return boom },
	}

	e := NewEngine(ratelimit.Unlimited(), logging.Nop())
	if _, err := e.ProbePairs(context.Background(), &fakeSource{}, all, all, opts); !errors.Is(err, boom) {
		t.Errorf("ProbePairs error = %v, expected checkpoint error", err)
	}
}

func TestProbePairs_CanceledContext(t *testing.T) {
	all := []model.Terminal{{ID: "A"}, {ID: "B"}}
	limiter := ratelimit.NewLimiter(0, map[ratelimit.Class]time.Duration{ratelimit.ClassSchedules: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{}
	e := NewEngine(limiter, logging.Nop())

	// first call consumes the free token; cancel before the second
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := e.ProbePairs(ctx, src, all, all, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ProbePairs error = %v, expected context.Canceled", err)
	}
}

func TestMapSchedules_PreservesOrderAndCount(t *testing.T) {
	items := []tago.ScheduleItem{
		item("202501151800", "202501152000", "심야우등", 40000),
		item("202501150600", "202501150800", "", -5),
		item("2025", "", "일반", 0),
	}

	schedules := MapSchedules(items)
	if len(schedules) != len(items) {
		t.Fatalf("len(schedules) = %d, expected %d", len(schedules), len(items))
	}
	if schedules[0].DepTime != "18:00" || schedules[1].DepTime != "06:00" {
		t.Errorf("provider order not preserved: %+v", schedules)
	}
	if schedules[1].Charge != 0 || schedules[1].Grade != model.DefaultGrade {
		t.Errorf("schedules[1] = %+v, expected defaults", schedules[1])
	}
	if schedules[2].DepTime != "" || schedules[2].ArrTime != "" {
		t.Errorf("short timestamps should format to empty, got %+v", schedules[2])
	}
}
