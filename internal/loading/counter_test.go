package loading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	t.Run("nested show and hide", func(t *testing.T) {
		c := NewCounter()
		c.Show()
		c.Show()
		c.Hide()

		assert.True(t, c.Active())
		assert.Equal(t, 1, c.Count())

		c.Hide()
		assert.False(t, c.Active())
	})

	t.Run("never drops below zero", func(t *testing.T) {
		c := NewCounter()
		c.Hide()
		c.Hide()
		c.Show()

		assert.True(t, c.Active())
		assert.Equal(t, 1, c.Count())
	})

	t.Run("concurrent callers", func(t *testing.T) {
		c := NewCounter()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Show()
				c.Hide()
			}()
		}
		wg.Wait()

		assert.Equal(t, 0, c.Count())
	})
}
