package voice

import "fmt"

// Session state machine: Idle -> Connecting -> Active -> Finished. A new
// session may start only from Idle or Finished; Finished is terminal for a
// given session instance. A connection error drops the session back to Idle
// so the caller may start over.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateActive     State = "active"
	StateFinished   State = "finished"
)

func (s State) CanStart() bool { return s == StateIdle || s == StateFinished }

type Session struct {
	state State
}

func NewSession() *Session { return &Session{state: StateIdle} }

func (s *Session) State() State { return s.state }

// Begin moves the session into Connecting. Valid only from a startable state.
func (s *Session) Begin() error {
	if !s.state.CanStart() {
		return fmt.Errorf("cannot start session from state %q", s.state)
	}
	s.state = StateConnecting
	return nil
}

// Apply advances the state machine for one lifecycle event and reports
// whether the event is acceptable in the current state. Speech and
// transcript events do not change state.
func (s *Session) Apply(ev EventType) error {
	switch ev {
	case EventCallStart:
		if s.state != StateConnecting {
			return fmt.Errorf("call-start in state %q", s.state)
		}
		s.state = StateActive
	case EventCallEnd:
		if s.state != StateConnecting && s.state != StateActive {
			return fmt.Errorf("call-end in state %q", s.state)
		}
		s.state = StateFinished
	case EventError:
		if s.state == StateFinished {
			return fmt.Errorf("error event in state %q", s.state)
		}
		s.state = StateIdle
	case EventTranscript, EventSpeechStart, EventSpeechEnd:
		if s.state != StateActive {
			return fmt.Errorf("%s in state %q", ev, s.state)
		}
	default:
		return fmt.Errorf("unknown event %q", ev)
	}
	return nil
}
