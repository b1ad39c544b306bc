package mapview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(200*time.Millisecond, func() { order = append(order, "pan") })
	s.After(0, func() { order = append(order, "open") })
	s.After(0, func() { order = append(order, "load") })

	d, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), d)

	assert.Equal(t, 2, s.Advance(0))
	assert.Equal(t, []string{"open", "load"}, order)

	d, _ = s.Next()
	assert.Equal(t, 200*time.Millisecond, d)

	assert.Equal(t, 0, s.Advance(150*time.Millisecond))
	assert.Equal(t, 1, s.Advance(50*time.Millisecond))
	assert.Equal(t, []string{"open", "load", "pan"}, order)
	assert.Equal(t, 200*time.Millisecond, s.Now())

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestScheduler_AdvanceRunsTasksScheduledOnTheWay(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(10*time.Millisecond, func() {
		order = append(order, "first")
		s.After(10*time.Millisecond, func() { order = append(order, "second") })
		s.After(time.Second, func() { order = append(order, "later") })
	})

	assert.Equal(t, 2, s.Advance(25*time.Millisecond))
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_FlushRunsEverything(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.After(time.Hour, func() { ran++ })
	s.After(time.Minute, func() {
		ran++
		s.After(0, func() { ran++ })
	})

	assert.Equal(t, 3, s.Flush())
	assert.Equal(t, 3, ran)
	assert.Equal(t, time.Hour, s.Now())
}

func TestScheduler_FlushStopsRunawayWork(t *testing.T) {
	s := NewScheduler()
	var again func()
	again = func() { s.After(time.Millisecond, again) }
	s.After(0, again)

	assert.Equal(t, maxFlush, s.Flush())
	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_NegativeDelayRunsNow(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.After(-time.Second, func() { ran = true })

	s.Advance(0)
	assert.True(t, ran)
}
