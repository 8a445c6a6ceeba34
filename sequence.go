package spotlight

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PlayResult reports how a Sequence.Play call ended.
type PlayResult uint8

const (
	PlayCompleted PlayResult = iota // every region was shown
	PlayAborted                     // pointer input or cancellation ended the run early
	PlayIgnored                     // a run was already in progress
)

func (r PlayResult) String() string {
	switch r {
	case PlayCompleted:
		return "completed"
	case PlayAborted:
		return "aborted"
	case PlayIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Driver identifies which producer owns the beam and overlay targets.
type Driver uint8

const (
	DriverPointer  Driver = iota // pointer-driven interaction (default)
	DriverSequence               // a running guided tour
)

func (d Driver) String() string {
	if d == DriverSequence {
		return "sequence"
	}
	return "pointer"
}

// sequenceHost is the animation state a Sequence drives. Stage implements it
// under its lock.
type sequenceHost interface {
	// claim makes the sequence the driver, arranges for abort to be called
	// on pointer input and returns the regions to visit. The returned func
	// undoes both. ok is false when the run was superseded before it could
	// take over; nothing is changed then.
	claim(abort context.CancelFunc) (regions []*Region, release func(), ok bool)
	// present and conceal report false once the sequence is no longer the
	// driver, in which case nothing is changed.
	present(r *Region) bool
	conceal() bool
}

// Sequence plays a guided tour: each region is opened for a dwell period
// and closed for a transition period, in order. Pointer input aborts the
// whole run.
type Sequence struct {
	host    sequenceHost
	playing atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc

	// newTimer is replaceable in tests.
	newTimer func(d time.Duration) (<-chan time.Time, func() bool)
}

// NewSequence creates a player driving host.
func NewSequence(host sequenceHost) *Sequence {
	return &Sequence{host: host, newTimer: realTimer}
}

func realTimer(d time.Duration) (<-chan time.Time, func() bool) {
	t := time.NewTimer(d)
	return t.C, t.Stop
}

// IsPlaying reports whether a run is in progress.
func (p *Sequence) IsPlaying() bool {
	return p.playing.Load()
}

// Stop cancels a running tour. It is a no-op when nothing is playing.
func (p *Sequence) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Play shows each region the host hands out for dwell, then closes it for
// transition. It blocks until the run completes or is aborted; run it on its
// own goroutine from a game loop. A call while another run is in progress
// returns PlayIgnored.
func (p *Sequence) Play(ctx context.Context, dwell, transition time.Duration) PlayResult {
	if !p.playing.CompareAndSwap(false, true) {
		return PlayIgnored
	}
	defer p.playing.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.setCancel(cancel)
	defer p.setCancel(nil)

	regions, release, ok := p.host.claim(cancel)
	if !ok {
		return p.aborted()
	}
	defer release()

	debugf("sequence started (%d regions)", len(regions))
	for _, r := range regions {
		if ctx.Err() != nil || !p.host.present(r) {
			return p.aborted()
		}
		if !p.wait(ctx, dwell) {
			return p.aborted()
		}
		if !p.host.conceal() {
			return p.aborted()
		}
		if !p.wait(ctx, transition) {
			return p.aborted()
		}
	}
	debugf("sequence completed")
	return PlayCompleted
}

func (p *Sequence) aborted() PlayResult {
	debugf("sequence aborted")
	return PlayAborted
}

func (p *Sequence) setCancel(cancel context.CancelFunc) {
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
}

// wait blocks for d or until ctx is done. It reports whether the run may
// continue.
func (p *Sequence) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	c, stop := p.newTimer(d)
	defer stop()
	select {
	case <-c:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}
