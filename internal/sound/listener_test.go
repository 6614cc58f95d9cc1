package sound

import (
	"testing"

	"github.com/verte-zerg/tuircle/internal/scoring"
	"github.com/verte-zerg/tuircle/internal/session"
)

type countingPlayer struct {
	rejects, bests int
}

func (p *countingPlayer) Reject() { p.rejects++ }
func (p *countingPlayer) NewBest() { p.bests++ }
func (p *countingPlayer) Close() {}

func TestListenerCues(t *testing.T) {
	p := &countingPlayer{}
	l := Listener(p)
	l.OnAttemptResult(session.Outcome{Attempt: scoring.Attempt{Reason: scoring.TooSmall}})
	l.OnAttemptResult(session.Outcome{Attempt: scoring.Attempt{Valid: true, Accuracy: 80}, NewBest: true})
	l.OnAttemptResult(session.Outcome{Attempt: scoring.Attempt{Valid: true, Accuracy: 70}})
	l.OnLiveReset()
	if p.rejects != 1 || p.bests != 1 {
		t.Fatalf("expected 1 reject and 1 best, got %d and %d", p.rejects, p.bests)
	}
}
