package spin

import (
	"context"
	"errors"
	"sync"

	"github.com/nandanicollection/storefront/internal/commerce"
)

type Phase string

const (
	PhaseUnknown  Phase = "UNKNOWN"
	PhaseReady    Phase = "READY"
	PhaseSpinning Phase = "SPINNING"
	PhaseRevealed Phase = "REVEALED"
)

// ErrNotReady rejects a spin from any phase but READY. A failed status check
// blocks spinning (fail-closed): the server-side order-id ledger is the sole
// source of truth, and an unreachable server must not look like a fresh spin.
var ErrNotReady = errors.New("spin not available")

type API interface {
	WheelItems(ctx context.Context) ([]commerce.WheelSegment, error)
	SpinResult(ctx context.Context, orderID string) (*commerce.SpinResult, error)
}

// Flow is the per-order prize state machine:
// UNKNOWN -> READY -> SPINNING -> REVEALED, with UNKNOWN -> REVEALED when
// the order already spun. The server decides the prize; this side only
// decides what the wheel looks like while it lands.
type Flow struct {
	api     API
	orderID string

	mu       sync.Mutex
	phase    Phase
	segments []commerce.WheelSegment
	prize    *commerce.SpinResult
	greeted  bool // confetti fires once, on first arrival at READY
}

func NewFlow(api API, orderID string) *Flow {
	return &Flow{api: api, orderID: orderID, phase: PhaseUnknown}
}

type LoadResult struct {
	Phase    Phase                   `json:"phase"`
	Segments []commerce.WheelSegment `json:"segments"`
	Prize    *commerce.SpinResult    `json:"prize,omitempty"`
	Confetti bool                    `json:"confetti"`
}

// Load fetches the wheel config and asks the server whether this order has
// already spun. On a status-check failure the flow stays UNKNOWN and the
// error is returned; the caller gets no spin offer.
func (f *Flow) Load(ctx context.Context) (LoadResult, error) {
	segments, err := f.api.WheelItems(ctx)
	if err != nil {
		return LoadResult{Phase: f.Phase()}, err
	}

	f.mu.Lock()
	f.segments = segments
	if f.phase == PhaseRevealed {
		prize := f.prize
		f.mu.Unlock()
		return LoadResult{Phase: PhaseRevealed, Segments: segments, Prize: prize}, nil
	}
	f.mu.Unlock()

	// Status check runs outside the lock; the commit below re-checks phase
	// in case a concurrent request moved it meanwhile.
	status, err := f.api.SpinResult(ctx, f.orderID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		if f.phase == PhaseReady {
			f.phase = PhaseUnknown
		}
		return LoadResult{Phase: f.phase, Segments: segments}, err
	}

	switch f.phase {
	case PhaseRevealed:
		return LoadResult{Phase: f.phase, Segments: segments, Prize: f.prize}, nil
	case PhaseSpinning:
		return LoadResult{Phase: f.phase, Segments: segments}, nil
	}

	if status.AlreadySpun {
		// Prize was granted on an earlier visit: reveal directly, no
		// animation, no confetti.
		f.phase = PhaseRevealed
		f.prize = status
		return LoadResult{Phase: f.phase, Segments: segments, Prize: status}, nil
	}

	confetti := false
	if f.phase == PhaseUnknown {
		confetti = !f.greeted
		f.greeted = true
	}
	f.phase = PhaseReady
	return LoadResult{Phase: f.phase, Segments: segments, Confetti: confetti}, nil
}

type SpinOutcome struct {
	Prize        *commerce.SpinResult `json:"prize"`
	SegmentIndex int                  `json:"segment_index"`
	Rotation     float64              `json:"rotation"`
	DurationMS   int                  `json:"duration_ms"`
}

// Spin asks the server for the (idempotent, order-keyed) prize and computes
// the rotation that lands on it.
func (f *Flow) Spin(ctx context.Context) (SpinOutcome, error) {
	f.mu.Lock()
	if f.phase != PhaseReady {
		f.mu.Unlock()
		return SpinOutcome{}, ErrNotReady
	}
	f.phase = PhaseSpinning
	segments := f.segments
	f.mu.Unlock()

	prize, err := f.api.SpinResult(ctx, f.orderID)
	if err != nil {
		f.mu.Lock()
		f.phase = PhaseReady
		f.mu.Unlock()
		return SpinOutcome{}, err
	}
	if !prize.Success {
		f.mu.Lock()
		f.phase = PhaseReady
		f.mu.Unlock()
		return SpinOutcome{}, errors.New(prize.Message)
	}

	idx := SegmentIndex(segments, prize.DiscountText)

	f.mu.Lock()
	f.phase = PhaseRevealed
	f.prize = prize
	f.mu.Unlock()

	return SpinOutcome{
		Prize:        prize,
		SegmentIndex: idx,
		Rotation:     Rotation(len(segments), idx),
		DurationMS:   SpinDurationMS,
	}, nil
}

func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Manager hands out one Flow per order id so repeated HTTP requests for the
// same order share phase.
type Manager struct {
	API API

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewManager(api API) *Manager {
	return &Manager{API: api, flows: make(map[string]*Flow)}
}

func (m *Manager) Flow(orderID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.flows[orderID]; ok {
		return f
	}
	f := NewFlow(m.API, orderID)
	m.flows[orderID] = f
	return f
}
