package mock_test

import (
	"testing"
	"time"

	"github.com/fwojciec/docview/mock"
	"github.com/stretchr/testify/assert"
)

func TestScheduler(t *testing.T) {
	t.Parallel()

	t.Run("fires only after the delay elapses", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		fired := 0
		s.AfterFunc(150*time.Millisecond, func() { fired++ })

		s.Advance(149 * time.Millisecond)
		assert.Equal(t, 0, fired)
		assert.Equal(t, 1, s.Pending())

		s.Advance(time.Millisecond)
		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		fired := false
		timer := s.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		s.Advance(2 * time.Second)

		assert.False(t, fired)
	})

	t.Run("fires in deadline order", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		var order []string
		s.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
		s.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })

		s.Advance(time.Second)

		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("Stop after firing returns false", func(t *testing.T) {
		t.Parallel()

		s := &mock.Scheduler{}
		timer := s.AfterFunc(time.Millisecond, func() {})
		s.Advance(time.Millisecond)

		assert.False(t, timer.Stop())
	})
}
