package stroke

import (
	"testing"

	"github.com/verte-zerg/tuircle/internal/geometry"
)

func TestAddIgnoredWhenIdle(t *testing.T) {
	r := NewRecorder()
	if r.Add(geometry.Pt(1, 1)) {
		t.Fatalf("expected sample to be rejected while idle")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty buffer, got %d", r.Len())
	}
}

func TestBeginClearsPreviousStroke(t *testing.T) {
	r := NewRecorder()
	r.Begin()
	r.Add(geometry.Pt(1, 1))
	r.Add(geometry.Pt(2, 2))
	r.End()
	r.Begin()
	if r.Len() != 0 {
		t.Fatalf("expected empty buffer after Begin, got %d", r.Len())
	}
	if !r.Recording() {
		t.Fatalf("expected recording state")
	}
}

func TestEndReturnsSnapshot(t *testing.T) {
	r := NewRecorder()
	r.Begin()
	r.Add(geometry.Pt(1, 1))
	r.Add(geometry.Pt(1, 1))
	got := r.End()
	if len(got) != 2 {
		t.Fatalf("expected duplicate samples to be kept, got %d points", len(got))
	}
	if r.Recording() {
		t.Fatalf("expected recording to stop")
	}

	r.Begin()
	r.Add(geometry.Pt(5, 5))
	if got[0] != geometry.Pt(1, 1) {
		t.Fatalf("snapshot changed after new attempt: %+v", got)
	}
}

func TestLast(t *testing.T) {
	r := NewRecorder()
	if _, ok := r.Last(); ok {
		t.Fatalf("expected no last point")
	}
	r.Begin()
	r.Add(geometry.Pt(3, 4))
	last, ok := r.Last()
	if !ok || last != geometry.Pt(3, 4) {
		t.Fatalf("unexpected last point: %+v %v", last, ok)
	}
}
