package schedule

import "time"

type State string

const (
	StateUpcoming State = "UPCOMING"
	StateActive   State = "ACTIVE"
	StateEnded    State = "ENDED"
)

// StateAt derives the lifecycle state of i at now. It is never cached.
func StateAt(i Interval, now time.Time) State {
	switch {
	case now.Before(i.Start):
		return StateUpcoming
	case now.Before(i.End):
		return StateActive
	default:
		return StateEnded
	}
}

func (i Interval) StartsBefore(now time.Time) bool {
	return i.Start.Before(now)
}

// HasEndedBy reports end < now, the condition the participant sweep uses.
func (i Interval) HasEndedBy(now time.Time) bool {
	return i.End.Before(now)
}
