package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerSetAddFiresAfterDuration(t *testing.T) {
	timer := NewTimerSet()
	fired := make(chan struct{}, 1)
	timer.Add(TimerStalled, 10*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timer did not fire")
	}
}

func TestTimerSetRemoveStopsDelivery(t *testing.T) {
	timer := NewTimerSet()
	fired := make(chan struct{}, 1)
	timer.Add(TimerIdle, 20*time.Millisecond, func() { fired <- struct{}{} })
	timer.Remove(TimerIdle)

	select {
	case <-fired:
		t.Fatal("removed timer must not fire")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimerSetResetExtendsDeadline(t *testing.T) {
	timer := NewTimerSet()
	fired := make(chan struct{}, 1)
	timer.Add(TimerNoXfer, 30*time.Millisecond, func() { fired <- struct{}{} })

	time.Sleep(15 * time.Millisecond)
	timer.Reset(TimerNoXfer)

	select {
	case <-fired:
		t.Fatal("timer should not have fired yet, it was reset midway")
	case <-time.After(10 * time.Millisecond):
	}

	select {
	case <-fired:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("reset timer never fired")
	}
}

func TestTimerSetResetOnUnknownKindIsNoop(t *testing.T) {
	timer := NewTimerSet()
	assert.NotPanics(t, func() { timer.Reset(TimerStalled) })
}
