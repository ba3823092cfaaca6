package check

import (
	"strings"
	"sync"
	"testing"

	"github.com/luci/go-render/render"

	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

func TestCheckRecordsEveryCase(t *testing.T) {
	report := NewReport(nil)
	g := report.Group("Model API: UpdateModel")

	var resp *modelpb.UpdateModelResponse
	all := g.CheckAll(
		Case{"status", func() bool { return true }},
		Case{"model.name", func() bool { return resp.Model.Name == "models/x" }},
		Case{"model.id", func() bool { return false }},
		Case{"model.uid", func() bool { return true }},
	)
	if all {
		t.Fatal("expected CheckAll to report a failure")
	}

	got := report.Results()
	want := []Tally{
		{Group: "Model API: UpdateModel", Name: "status", Passes: 1},
		{Group: "Model API: UpdateModel", Name: "model.name", Fails: 1},
		{Group: "Model API: UpdateModel", Name: "model.id", Fails: 1},
		{Group: "Model API: UpdateModel", Name: "model.uid", Passes: 1},
	}
	if render.Render(got) != render.Render(want) {
		t.Fatalf("got %s\nwant %s", render.Render(got), render.Render(want))
	}
	if !report.Failed() {
		t.Fatal("report should be failed")
	}
}

func TestPanicIsFailure(t *testing.T) {
	report := NewReport(nil)
	var res Result
	report.AddListener(ListenerFunc(func(r Result) { res = r }))

	var m *modelpb.Model
	if report.Group("g").Check("nil deref", func() bool { return m.Configuration.Fields != nil }) {
		t.Fatal("panicking predicate should fail")
	}
	if res.Passed || res.Panic == "" {
		t.Fatalf("listener got %+v", res)
	}
}

func TestConcurrentRecording(t *testing.T) {
	reg := stats.NewFinagleStatsRegistry()
	report := NewReport(stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg }))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := report.Group("g")
			for j := 0; j < 100; j++ {
				g.Check("even", func() bool { return i%2 == 0 })
			}
		}(i)
	}
	wg.Wait()

	passes, fails := report.Totals()
	if passes != 500 || fails != 500 {
		t.Fatalf("got %d passes %d fails", passes, fails)
	}
	stats.VerifyStats("checks", reg, t, map[string]stats.Rule{
		"checks/passes": {Checker: stats.Int64EqTest, Value: 500},
		"checks/fails":  {Checker: stats.Int64EqTest, Value: 500},
	})
}

func TestRemoveListener(t *testing.T) {
	report := NewReport(nil)
	calls := 0
	remove := report.AddListener(ListenerFunc(func(Result) { calls++ }))
	report.Group("g").Check("a", func() bool { return true })
	remove()
	report.Group("g").Check("a", func() bool { return true })
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestSummary(t *testing.T) {
	report := NewReport(nil)
	g := report.Group("Model API: UpdateModel")
	g.Check("UpdateModel response status", func() bool { return true })
	g.Check("Delete model status is OK", func() bool { return false })
	g.Check("Delete model status is OK", func() bool { return true })

	want := "█ Model API: UpdateModel\n\n" +
		"  ✓ UpdateModel response status\n" +
		"  ✗ Delete model status is OK\n" +
		"   ↳  50% — ✓ 1 / ✗ 1\n" +
		"\n" +
		"checks.....................: 66.67% ✓ 2 ✗ 1\n"
	if got := report.Summary(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	if !strings.HasPrefix(NewReport(nil).Summary(), "checks.....................: 0.00% ✓ 0 ✗ 0") {
		t.Fatal("unexpected empty summary")
	}
}

func TestGroupCounts(t *testing.T) {
	report := NewReport(nil)
	g1 := report.Group("g")
	g2 := report.Group("g")
	g1.Check("a", func() bool { return true })
	g1.Check("b", func() bool { return false })
	g2.Check("a", func() bool { return true })
	if g1.Passes() != 1 || g1.Fails() != 1 || g2.Passes() != 1 || g2.Fails() != 0 {
		t.Fatalf("unexpected group counts %d/%d %d/%d", g1.Passes(), g1.Fails(), g2.Passes(), g2.Fails())
	}
	if len(report.Results()) != 2 {
		t.Fatalf("groups with one name should share tallies: %v", report.Results())
	}
}
