package session

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/tuircle/internal/geometry"
	"github.com/verte-zerg/tuircle/internal/scoring"
)

type segment struct {
	from, to geometry.Point
	color    scoring.Color
}

type recorder struct {
	resets   int
	segments []segment
	live     []float64
	outcomes []Outcome
}

func (r *recorder) OnLiveReset() { r.resets++ }

func (r *recorder) OnSegmentDrawn(from, to geometry.Point, color scoring.Color) {
	r.segments = append(r.segments, segment{from: from, to: to, color: color})
}

func (r *recorder) OnLiveAccuracy(accuracy float64, _ scoring.Color) {
	r.live = append(r.live, accuracy)
}

func (r *recorder) OnAttemptResult(outcome Outcome) {
	r.outcomes = append(r.outcomes, outcome)
}

func circlePoints(center geometry.Point, radius float64, n int) geometry.Stroke {
	out := make(geometry.Stroke, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, geometry.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a)))
	}
	return out
}

func draw(c *Controller, stroke geometry.Stroke) Outcome {
	if len(stroke) == 0 {
		out, _ := c.PointerUp()
		return out
	}
	c.PointerDown(stroke[0])
	for _, p := range stroke[1:] {
		c.PointerMove(p)
	}
	out, _ := c.PointerUp()
	return out
}

func TestScenarioPerfectCircle(t *testing.T) {
	rec := &recorder{}
	c := New(DefaultConfig(), rec)
	stroke := circlePoints(geometry.Pt(300, 300), 150, 36)
	stroke = append(stroke, stroke[0])
	out := draw(c, stroke)

	if !out.Accepted() {
		t.Fatalf("expected accepted outcome, got %v", out.Reason())
	}
	if out.Accuracy() != 100 {
		t.Fatalf("expected accuracy 100, got %v", out.Accuracy())
	}
	if out.Color != scoring.Green {
		t.Fatalf("expected green, got %v", out.Color)
	}
	if !out.NewBest {
		t.Fatalf("expected first accepted attempt to become best")
	}
	if len(rec.outcomes) != 1 {
		t.Fatalf("expected one result event, got %d", len(rec.outcomes))
	}
	if c.State() != Idle {
		t.Fatalf("expected idle after evaluation, got %v", c.State())
	}
}

func TestScenarioTooSmall(t *testing.T) {
	c := New(DefaultConfig(), nil)
	out := draw(c, circlePoints(geometry.Pt(300, 300), 20, 36))
	if out.Accepted() || out.Reason() != scoring.TooSmall {
		t.Fatalf("expected TooSmall, got %v", out.Reason())
	}
	if _, ok := c.Best(); ok {
		t.Fatalf("rejected attempt must not become best")
	}
}

func TestScenarioNotClosed(t *testing.T) {
	center := geometry.Pt(300, 300)
	gap := 2 * math.Asin(200.0/300.0)
	var stroke geometry.Stroke
	for i := 0; i < 50; i++ {
		a := (2*math.Pi - gap) * float64(i) / 49
		stroke = append(stroke, geometry.Pt(center.X+150*math.Cos(a), center.Y+150*math.Sin(a)))
	}
	out := draw(New(DefaultConfig(), nil), stroke)
	if out.Accepted() || out.Reason() != scoring.NotClosed {
		t.Fatalf("expected NotClosed, got %v", out.Reason())
	}
}

func TestScenarioNotAroundCenter(t *testing.T) {
	out := draw(New(DefaultConfig(), nil), geometry.Stroke{geometry.Pt(400, 300), geometry.Pt(450, 320)})
	if out.Accepted() || out.Reason() != scoring.NotAroundCenter {
		t.Fatalf("expected NotAroundCenter, got %v", out.Reason())
	}
}

func TestSmallOffCenterStrokeIsTooSmall(t *testing.T) {
	stroke := geometry.Stroke{
		geometry.Pt(315, 295),
		geometry.Pt(320, 300),
		geometry.Pt(315, 305),
		geometry.Pt(325, 300),
	}
	for _, mode := range []scoring.Mode{scoring.ModeDeviation, scoring.ModeEndpoint} {
		cfg := DefaultConfig()
		cfg.Mode = mode
		out := draw(New(cfg, nil), stroke)
		if out.Accepted() || out.Reason() != scoring.TooSmall {
			t.Fatalf("%v: expected TooSmall, got %v", mode, out.Reason())
		}
	}
}

func TestSinglePointAttempt(t *testing.T) {
	out := draw(New(DefaultConfig(), nil), geometry.Stroke{geometry.Pt(450, 300)})
	if out.Accepted() || out.Reason() != scoring.TooFewPoints {
		t.Fatalf("expected TooFewPoints, got %v", out.Reason())
	}
}

func TestLiveFeedback(t *testing.T) {
	rec := &recorder{}
	c := New(DefaultConfig(), rec)
	stroke := circlePoints(geometry.Pt(300, 300), 150, 12)
	c.PointerDown(stroke[0])
	if len(rec.segments) != 0 || rec.resets != 1 {
		t.Fatalf("press must only reset the live display")
	}
	for _, p := range stroke[1:] {
		c.PointerMove(p)
	}
	if len(rec.segments) != len(stroke)-1 || len(rec.live) != len(stroke)-1 {
		t.Fatalf("expected %d feedback events, got %d segments and %d live", len(stroke)-1, len(rec.segments), len(rec.live))
	}
	want := segment{from: stroke[0], to: stroke[1], color: scoring.Green}
	if d := cmp.Diff(want, rec.segments[0], cmp.AllowUnexported(segment{})); d != "" {
		t.Fatalf("unexpected first segment (-want +got):\n%s", d)
	}
	if c.State() != Recording {
		t.Fatalf("expected recording, got %v", c.State())
	}
}

func TestEventsIgnoredWhenIdle(t *testing.T) {
	rec := &recorder{}
	c := New(DefaultConfig(), rec)
	c.PointerMove(geometry.Pt(1, 1))
	if _, ok := c.PointerUp(); ok {
		t.Fatalf("expected no outcome without an attempt")
	}
	if len(rec.segments) != 0 || len(rec.outcomes) != 0 {
		t.Fatalf("expected no events while idle")
	}
	if len(c.Points()) != 0 {
		t.Fatalf("expected no recorded points")
	}
}

func TestBestKeepsHighest(t *testing.T) {
	c := New(DefaultConfig(), nil)
	center := geometry.Pt(300, 300)
	perfect := circlePoints(center, 150, 36)
	wobbly := make(geometry.Stroke, len(perfect))
	for i, p := range perfect {
		r := 150.0 + 6*math.Sin(float64(i))
		a := geometry.Angle(center, p)
		wobbly[i] = geometry.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}

	first := draw(c, wobbly)
	if !first.Accepted() || !first.NewBest {
		t.Fatalf("expected wobbly circle to be accepted as best, got %+v", first.Reason())
	}
	second := draw(c, perfect)
	if !second.NewBest {
		t.Fatalf("expected perfect circle to replace best")
	}
	third := draw(c, wobbly)
	if third.NewBest {
		t.Fatalf("worse attempt must not replace best")
	}
	rec, ok := c.Best()
	if !ok || rec.Accuracy != 100 {
		t.Fatalf("expected best accuracy 100, got %+v", rec.Accuracy)
	}
	if d := cmp.Diff(perfect, rec.Stroke); d != "" {
		t.Fatalf("unexpected best stroke (-want +got):\n%s", d)
	}
}

func TestPressWhileRecordingRestarts(t *testing.T) {
	rec := &recorder{}
	c := New(DefaultConfig(), rec)
	c.PointerDown(geometry.Pt(450, 300))
	c.PointerMove(geometry.Pt(440, 320))
	c.PointerDown(geometry.Pt(100, 100))
	if got := c.Points(); len(got) != 1 || got[0] != geometry.Pt(100, 100) {
		t.Fatalf("expected fresh stroke, got %v", got)
	}
	if rec.resets != 2 {
		t.Fatalf("expected two resets, got %d", rec.resets)
	}
}

func TestEndpointModeOutcome(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = scoring.ModeEndpoint
	out := draw(New(cfg, nil), circlePoints(geometry.Pt(300, 300), 150, 36))
	if !out.Accepted() || out.Accuracy() != 100 {
		t.Fatalf("expected accepted 100 in endpoint mode, got %+v", out.Attempt)
	}
	if out.Attempt.Mode != scoring.ModeEndpoint {
		t.Fatalf("expected endpoint mode on the attempt")
	}
}

func TestMultiAndFuncs(t *testing.T) {
	var results int
	a := &recorder{}
	l := Multi{a, ListenerFuncs{AttemptResult: func(Outcome) { results++ }}}
	draw(New(DefaultConfig(), l), circlePoints(geometry.Pt(300, 300), 150, 36))
	if results != 1 || len(a.outcomes) != 1 {
		t.Fatalf("expected both listeners to see the result")
	}
}
