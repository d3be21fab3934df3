package window

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// defaultRefreshRate is assumed when the display reports no refresh rate.
const defaultRefreshRate = 60

// framePacer holds frames to one per display refresh when the buffer swap
// does not block.
type framePacer struct {
	period time.Duration
	next   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func newFramePacer(hz int) *framePacer {
	if hz <= 0 {
		hz = defaultRefreshRate
	}
	return &framePacer{
		period: time.Second / time.Duration(hz),
		now:    time.Now,
		sleep:  func(d time.Duration) { sdl.Delay(uint32(d.Milliseconds())) },
	}
}

// wait sleeps until the next refresh deadline. A frame that overran its
// deadline starts a new schedule instead of bursting to catch up.
func (p *framePacer) wait() {
	now := p.now()
	if p.next.IsZero() || now.Sub(p.next) > p.period {
		p.next = now.Add(p.period)
		return
	}
	if d := p.next.Sub(now); d > 0 {
		p.sleep(d)
	}
	p.next = p.next.Add(p.period)
}
