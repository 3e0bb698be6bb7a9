package booking

type Status string

const (
	StatusHold      Status = "HOLD"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

var AllStatuses = []Status{
	StatusHold,
	StatusConfirmed,
	StatusCanceled,
	StatusCompleted,
	StatusExpired,
}

// transitions is the complete table of legal moves. EXPIRED -> CONFIRMED is
// reserved for a late payment and is only taken after a slot recheck.
var transitions = map[Status][]Status{
	StatusHold:      {StatusConfirmed, StatusExpired, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
	StatusExpired:   {StatusConfirmed},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusConfirmed, StatusCanceled, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// Occupying reports whether a reservation in this status holds its slot.
func (s Status) Occupying() bool {
	return s == StatusHold || s == StatusConfirmed
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
