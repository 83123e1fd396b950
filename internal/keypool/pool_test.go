package keypool_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/keypool"
)

func TestPool(t *testing.T) {
	t.Run("should hand out keys in configuration order", func(t *testing.T) {
		pool := keypool.New([]string{"key-1", "key-2", "key-3"})

		current, err := pool.Current()
		require.NoError(t, err)
		require.Equal(t, "key-1", current)

		next, err := pool.Advance()
		require.NoError(t, err)
		require.Equal(t, "key-2", next)

		next, err = pool.Advance()
		require.NoError(t, err)
		require.Equal(t, "key-3", next)
	})

	t.Run("should refuse to advance past the last key", func(t *testing.T) {
		pool := keypool.New([]string{"key-1", "key-2"})

		_, err := pool.Advance()
		require.NoError(t, err)

		_, err = pool.Advance()
		require.ErrorIs(t, err, domain.ErrPoolExhausted)

		// The cursor stays on the last key, so Current keeps working.
		_, err = pool.Advance()
		require.ErrorIs(t, err, domain.ErrPoolExhausted)

		current, err := pool.Current()
		require.NoError(t, err)
		require.Equal(t, "key-2", current)
	})

	t.Run("should exhaust immediately with a single key", func(t *testing.T) {
		pool := keypool.New([]string{"only-key"})

		_, err := pool.Advance()
		require.ErrorIs(t, err, domain.ErrPoolExhausted)

		current, err := pool.Current()
		require.NoError(t, err)
		require.Equal(t, "only-key", current)
	})

	t.Run("should drop blank keys", func(t *testing.T) {
		pool := keypool.New([]string{"  ", "key-1", "", "key-2", "\t"})

		status := pool.Status()
		require.Equal(t, 2, status.TotalKeys)

		current, err := pool.Current()
		require.NoError(t, err)
		require.Equal(t, "key-1", current)
	})

	t.Run("should fall back to the placeholder when no keys are configured", func(t *testing.T) {
		pool := keypool.New(nil)

		current, err := pool.Current()
		require.NoError(t, err)
		require.Equal(t, keypool.PlaceholderKey, current)

		status := pool.Status()
		require.Equal(t, 1, status.TotalKeys)
		require.Zero(t, status.RemainingKeys)
	})
}

func TestPool_Status(t *testing.T) {
	pool := keypool.New([]string{"key-1", "key-2", "key-3"})

	status := pool.Status()
	require.Equal(t, 1, status.ActiveKey)
	require.Equal(t, 3, status.TotalKeys)
	require.Equal(t, 2, status.RemainingKeys)

	_, err := pool.Advance()
	require.NoError(t, err)

	status = pool.Status()
	require.Equal(t, 2, status.ActiveKey)
	require.Equal(t, 3, status.TotalKeys)
	require.Equal(t, 1, status.RemainingKeys)
}

func TestPool_ConcurrentAdvance(t *testing.T) {
	keys := make([]string, 20)
	for i := range keys {
		keys[i] = "key"
	}
	pool := keypool.New(keys)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := pool.Advance(); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	status := pool.Status()
	require.Equal(t, 20, status.ActiveKey)
	require.Zero(t, status.RemainingKeys)
}
