package checkout

type State string

const (
	StateIdle             State = "IDLE"
	StateSubmitting       State = "SUBMITTING"
	StateAwaitingRedirect State = "AWAITING_GATEWAY_REDIRECT"
	StateCompleted        State = "COMPLETED"
)

// Submission failures (order rejected, no redirect URL) fall back to IDLE
// with the cart intact so the shopper can retry. COMPLETED and
// AWAITING_GATEWAY_REDIRECT are terminal here: after a redirect control
// leaves the application entirely.
var validNext = map[State]map[State]bool{
	StateIdle:             {StateSubmitting: true},
	StateSubmitting:       {StateIdle: true, StateAwaitingRedirect: true, StateCompleted: true},
	StateAwaitingRedirect: {},
	StateCompleted:        {},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}
