package mockmode

// Debug is the interactive surface for poking at the simulator flag. It is
// returned to the caller at startup and mounted explicitly wherever operators
// need it (HTTP endpoint, CLI, console); nothing is installed globally.
type Debug interface {
	Enable()
	Disable()
	IsEnabled() bool
	Status() Status
}

var _ Debug = (*Controller)(nil)
