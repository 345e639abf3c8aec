package viewer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/mock"
	"github.com/fwojciec/docview/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectionObserver_Intersects(t *testing.T) {
	t.Parallel()

	o := viewer.DefaultIntersectionObserver()

	tests := []struct {
		name string
		span viewer.Span
		want bool
	}{
		{"fully inside", viewer.Span{Top: 100, Height: 50}, true},
		{"inside the bottom margin", viewer.Span{Top: 520, Height: 100}, true},
		{"below the margin", viewer.Span{Top: 551, Height: 100}, false},
		{"less than ten percent visible", viewer.Span{Top: 545, Height: 100}, false},
		{"exactly ten percent visible", viewer.Span{Top: 540, Height: 100}, true},
		{"above the viewport", viewer.Span{Top: -200, Height: 100}, false},
		{"zero height", viewer.Span{Top: 100, Height: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, o.Intersects(tt.span, 0, 500))
		})
	}
}

func TestCopyControls(t *testing.T) {
	t.Parallel()

	blocks := []docview.CodeBlock{{Lang: "go", Text: "fmt.Println()"}, {Text: "ls -la"}}

	t.Run("attaches once per block", func(t *testing.T) {
		t.Parallel()

		c := viewer.NewCopyControls(blocks, &mock.Clipboard{}, &mock.Scheduler{})
		c.SetSpans([]viewer.Span{{Top: 10, Height: 20}, {Top: 1000, Height: 20}})

		assert.Equal(t, []int{0}, c.Observe(0, 100))
		assert.Empty(t, c.Observe(0, 100))
		assert.Equal(t, []int{1}, c.Observe(950, 100))
		assert.Empty(t, c.Observe(0, 100))

		assert.True(t, c.Attached(0))
		assert.True(t, c.Attached(1))
		assert.Equal(t, viewer.CopyLabel, c.Label(0))
	})

	t.Run("copy flips label and reverts", func(t *testing.T) {
		t.Parallel()

		var copied string
		clip := &mock.Clipboard{WriteAllFn: func(text string) error { copied = text; return nil }}
		sched := &mock.Scheduler{}
		c := viewer.NewCopyControls(blocks, clip, sched)
		c.SetSpans([]viewer.Span{{Top: 0, Height: 10}})
		c.Observe(0, 100)

		require.NoError(t, c.Copy(0))
		assert.Equal(t, "fmt.Println()", copied)
		assert.Equal(t, viewer.CopiedLabel, c.Label(0))

		sched.Advance(viewer.CopiedDuration - time.Millisecond)
		assert.Equal(t, viewer.CopiedLabel, c.Label(0))
		sched.Advance(time.Millisecond)
		assert.Equal(t, viewer.CopyLabel, c.Label(0))
	})

	t.Run("copy without control is rejected", func(t *testing.T) {
		t.Parallel()

		c := viewer.NewCopyControls(blocks, &mock.Clipboard{}, &mock.Scheduler{})

		err := c.Copy(1)

		assert.Equal(t, docview.EINVALID, docview.ErrorCode(err))
		assert.Empty(t, c.Label(1))
	})

	t.Run("clipboard failure keeps label", func(t *testing.T) {
		t.Parallel()

		clip := &mock.Clipboard{WriteAllFn: func(string) error { return errors.New("no display") }}
		c := viewer.NewCopyControls(blocks, clip, &mock.Scheduler{})
		c.SetSpans([]viewer.Span{{Top: 0, Height: 10}})
		c.Observe(0, 100)

		require.Error(t, c.Copy(0))
		assert.Equal(t, viewer.CopyLabel, c.Label(0))
	})
}
