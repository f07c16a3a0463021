package lifecycle

// State is the adapter's position in the host lifecycle.
type State int

const (
	Unregistered State = iota
	Bootstrapped
	Mounted
	Unmounted
	// Standalone adapters ran their module at start and accept no host
	// lifecycle call.
	Standalone
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "Unregistered"
	case Bootstrapped:
		return "Bootstrapped"
	case Mounted:
		return "Mounted"
	case Unmounted:
		return "Unmounted"
	case Standalone:
		return "Standalone"
	default:
		return "Unknown"
	}
}
