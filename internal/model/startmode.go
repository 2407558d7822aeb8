package model

// StartMode selects the reference point for a new session.
type StartMode int

const (
	// StartNow starts the session at the current time, leaving any idle
	// gap since the previous session.
	StartNow StartMode = iota
	// StartAtLastStop asks watson to start the session immediately after
	// the previous one stopped (the --no-gap flag).
	StartAtLastStop
)

// StartModes lists the selectable modes in display order.
func StartModes() []StartMode {
	return []StartMode{StartNow, StartAtLastStop}
}

// NoGap reports whether the mode maps to watson's --no-gap flag.
func (m StartMode) NoGap() bool {
	return m == StartAtLastStop
}

func (m StartMode) String() string {
	switch m {
	case StartAtLastStop:
		return "Last stop time"
	default:
		return "Now"
	}
}

// ParseStartMode maps a config value to a mode. Unknown values fall back
// to StartNow.
func ParseStartMode(s string) StartMode {
	switch s {
	case "last-stop", "last_stop", "no-gap":
		return StartAtLastStop
	default:
		return StartNow
	}
}
