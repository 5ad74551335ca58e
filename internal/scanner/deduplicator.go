package scanner

import (
	"context"
	"sync"
	"time"
)

// DefaultCooldown suppresses rapid re-reads of the same physical code.
const DefaultCooldown = 1200 * time.Millisecond

// Detection is one decode event from a scanning surface. Err is set when the
// surface could not decode the frame.
type Detection struct {
	Text string `json:"text"`
	Err  error  `json:"-"`
}

type Outcome int

const (
	Accepted Outcome = iota
	Duplicate
	CoolingDown
	Paused
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Duplicate:
		return "duplicate"
	case CoolingDown:
		return "cooling_down"
	case Paused:
		return "paused"
	default:
		return "empty"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// State is a point-in-time copy of a deduplicator.
type State struct {
	Collected     []string   `json:"collected"`
	Accepting     bool       `json:"accepting"`
	Paused        bool       `json:"paused"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	LastScanned   string     `json:"last_scanned,omitempty"`
}

type Option func(*Deduplicator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Deduplicator) {
		d.now = now
	}
}

// Deduplicator collects distinct codes for one scanning session.
type Deduplicator struct {
	mu            sync.Mutex
	collected     []string
	seen          map[string]struct{}
	paused        bool
	cooldownUntil time.Time
	lastScanned   string
	cooldown      time.Duration
	now           func() time.Time
}

func NewDeduplicator(cooldown time.Duration, opts ...Option) *Deduplicator {
	if cooldown < 0 {
		cooldown = 0
	}
	d := &Deduplicator{
		collected: make([]string, 0),
		seen:      make(map[string]struct{}),
		cooldown:  cooldown,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Deduplicator) coolingDown(now time.Time) bool {
	return now.Before(d.cooldownUntil)
}

// Offer applies the dedup policy to a single detection.
func (d *Deduplicator) Offer(det Detection) Outcome {
	if det.Err != nil || det.Text == "" {
		return Empty
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if d.paused {
		return Paused
	}
	if d.coolingDown(now) {
		return CoolingDown
	}
	if _, ok := d.seen[det.Text]; ok {
		return Duplicate
	}

	d.seen[det.Text] = struct{}{}
	d.collected = append(d.collected, det.Text)
	d.lastScanned = det.Text
	d.cooldownUntil = now.Add(d.cooldown)
	return Accepted
}

// Consume drains in until it is closed or ctx is done. onOutcome may be nil.
func (d *Deduplicator) Consume(ctx context.Context, in <-chan Detection, onOutcome func(Detection, Outcome)) {
	for {
		select {
		case <-ctx.Done():
			return
		case det, ok := <-in:
			if !ok {
				return
			}
			outcome := d.Offer(det)
			if onOutcome != nil {
				onOutcome(det, outcome)
			}
		}
	}
}

func (d *Deduplicator) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = true
}

// Resume accepts immediately, even if a cool-down was still running.
func (d *Deduplicator) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = false
	d.cooldownUntil = time.Time{}
}

// Toggle flips between paused and resumed and reports whether it is now paused.
func (d *Deduplicator) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused {
		d.paused = false
		d.cooldownUntil = time.Time{}
		return false
	}
	d.paused = true
	return true
}

// Clear empties the collected set and accepts again right away.
func (d *Deduplicator) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.collected = make([]string, 0)
	d.seen = make(map[string]struct{})
	d.paused = false
	d.cooldownUntil = time.Time{}
	d.lastScanned = ""
}

// Forget drops the given codes from the collected set, leaving anything
// accepted since, and returns how many codes remain.
func (d *Deduplicator) Forget(codes []string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	drop := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		drop[code] = struct{}{}
		delete(d.seen, code)
	}
	kept := make([]string, 0, len(d.collected))
	for _, code := range d.collected {
		if _, ok := drop[code]; !ok {
			kept = append(kept, code)
		}
	}
	d.collected = kept
	return len(kept)
}

func (d *Deduplicator) Collected() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.collected))
	copy(out, d.collected)
	return out
}

func (d *Deduplicator) Accepting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.paused && !d.coolingDown(d.now())
}

func (d *Deduplicator) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	state := State{
		Collected: make([]string, len(d.collected)),
		Paused:    d.paused,
		Accepting: !d.paused && !d.coolingDown(now),
	}
	copy(state.Collected, d.collected)
	if d.coolingDown(now) {
		until := d.cooldownUntil
		state.CooldownUntil = &until
		state.LastScanned = d.lastScanned
	}
	return state
}
