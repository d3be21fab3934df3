package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestPacer(hz int) (*framePacer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := newFramePacer(hz)
	p.now = clock.now
	p.sleep = clock.sleep
	return p, clock
}

func TestFramePacerPeriod(t *testing.T) {
	p, _ := newTestPacer(120)
	assert.Equal(t, time.Second/120, p.period)

	p, _ = newTestPacer(0)
	assert.Equal(t, time.Second/defaultRefreshRate, p.period)
}

func TestFramePacerSleepsOutRemainder(t *testing.T) {
	p, clock := newTestPacer(50) // 20ms
	p.wait()
	assert.Empty(t, clock.slept, "first frame sets the schedule")

	clock.t = clock.t.Add(5 * time.Millisecond)
	p.wait()
	assert.Equal(t, []time.Duration{15 * time.Millisecond}, clock.slept)

	// A fast loop is held to one frame per period.
	for i := 0; i < 10; i++ {
		p.wait()
	}
	assert.Len(t, clock.slept, 11)
	for _, d := range clock.slept[1:] {
		assert.Equal(t, 20*time.Millisecond, d)
	}
}

func TestFramePacerResyncsAfterOverrun(t *testing.T) {
	p, clock := newTestPacer(50)
	p.wait()

	clock.t = clock.t.Add(time.Second)
	p.wait()
	assert.Empty(t, clock.slept, "overrun frame should not sleep")

	clock.t = clock.t.Add(2 * time.Millisecond)
	p.wait()
	assert.Equal(t, []time.Duration{18 * time.Millisecond}, clock.slept)
}
