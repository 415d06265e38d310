package state

type flash struct {
	message   string
	set       bool
	remaining *int
}

// SetFlash shows message for the given number of ticks.
func (s *State) SetFlash(message string, ticks int) {
	s.flash = flash{message: message, set: true, remaining: &ticks}
}

// SetPersistentFlash shows message until it is cleared.
func (s *State) SetPersistentFlash(message string) {
	s.flash = flash{message: message, set: true}
}

// TickFlash counts elapsed ticks down from the remaining lifetime.
func (s *State) TickFlash(elapsed int) {
	if s.flash.remaining == nil {
		return
	}
	left := *s.flash.remaining - elapsed
	if left < 0 {
		left = 0
	}
	*s.flash.remaining = left
}

// Flash returns the message while it is visible. An expired message stays
// stored until ClearFlash.
func (s *State) Flash() (string, bool) {
	if !s.flash.set {
		return "", false
	}
	if s.flash.remaining != nil && *s.flash.remaining == 0 {
		return "", false
	}
	return s.flash.message, true
}

func (s *State) ClearFlash() {
	s.flash = flash{}
}
