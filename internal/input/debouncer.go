package input

// Debouncer gates repeated actions: an action is allowed once at least
// minTicks elapsed since the last allowed one.
type Debouncer struct {
	elapsed  int
	minTicks int
}

func NewDebouncer(minTicks int) *Debouncer {
	return &Debouncer{elapsed: minTicks, minTicks: minTicks}
}

func (d *Debouncer) Tick(elapsed int) {
	d.elapsed += elapsed
}

// Reset closes the gate for minTicks.
func (d *Debouncer) Reset() {
	d.elapsed = 0
}

// Release opens the gate, e.g. once a different key was pressed.
func (d *Debouncer) Release() {
	d.elapsed = d.minTicks
}

// IsActionAllowed reports whether the gate is open and closes it if so.
func (d *Debouncer) IsActionAllowed() bool {
	if d.elapsed < d.minTicks {
		return false
	}
	d.elapsed = 0
	return true
}
