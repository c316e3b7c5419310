package jobs

// State is a job's position in its lifecycle.
type State string

const (
	Validating State = "validating"
	Running    State = "running"
	Succeeded  State = "succeeded"
	Cancelled  State = "cancelled"
	TimedOut   State = "timed_out"
	Failed     State = "failed"
	Exhausted  State = "exhausted"
)

// Terminal reports whether s is final.
func (s State) Terminal() bool {
	switch s {
	case Succeeded, Cancelled, TimedOut, Failed, Exhausted:
		return true
	}
	return false
}

// Kind classifies a notification.
type Kind string

const (
	KindStart     Kind = "start"
	KindProgress  Kind = "progress"
	KindSuccess   Kind = "success"
	KindError     Kind = "error"
	KindCancelled Kind = "cancelled"
)

// kindFor maps a terminal state to the notification it produces.
func kindFor(s State) Kind {
	switch s {
	case Succeeded:
		return KindSuccess
	case Cancelled, TimedOut:
		return KindCancelled
	default:
		return KindError
	}
}
