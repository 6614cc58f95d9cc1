package sound

import "github.com/verte-zerg/tuircle/internal/session"

// Listener plays the reject cue for rejected attempts and the chime for a
// new best. Accepted attempts that do not beat the best stay silent.
func Listener(p Player) session.ListenerFuncs {
	return session.ListenerFuncs{
		AttemptResult: func(outcome session.Outcome) {
			switch {
			case !outcome.Accepted():
				p.Reject()
			case outcome.NewBest:
				p.NewBest()
			}
		},
	}
}
