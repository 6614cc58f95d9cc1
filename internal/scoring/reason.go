package scoring

// Reason explains why an attempt was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	TooFewPoints
	TooSmall
	NotClosed
	NotAroundCenter
)

// String returns a stable identifier for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case TooFewPoints:
		return "too-few-points"
	case TooSmall:
		return "too-small"
	case NotClosed:
		return "not-closed"
	case NotAroundCenter:
		return "not-around-center"
	default:
		return "unknown"
	}
}

// Message returns the text shown to the player.
func (r Reason) Message() string {
	switch r {
	case TooFewPoints:
		return "Keep the button pressed and drag to draw a circle."
	case TooSmall:
		return "The circle is too small. Please draw a larger circle."
	case NotClosed:
		return "The circle is not closed. Finish near where you started."
	case NotAroundCenter:
		return "The circle must be drawn around the central point."
	default:
		return ""
	}
}

// ParseReason is the inverse of Reason.String.
func ParseReason(s string) (Reason, bool) {
	for _, r := range []Reason{ReasonNone, TooFewPoints, TooSmall, NotClosed, NotAroundCenter} {
		if r.String() == s {
			return r, true
		}
	}
	return ReasonNone, false
}
