package insighting

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettleBoth(t *testing.T) {
	t.Run("Ambos com sucesso", func(t *testing.T) {
		a, b := settleBoth(context.Background(),
			func(context.Context) (string, error) { return "entidades", nil },
			func(context.Context) (int, error) { return 42, nil },
		)

		assert.True(t, a.OK())
		assert.True(t, b.OK())
		assert.Equal(t, "entidades", a.Value)
		assert.Equal(t, 42, b.Value)
	})

	t.Run("Falha de um lado não cancela o outro", func(t *testing.T) {
		var finished atomic.Bool

		a, b := settleBoth(context.Background(),
			func(context.Context) (string, error) { return "", errors.New("boom") },
			func(ctx context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				finished.Store(true)
				return 7, ctx.Err()
			},
		)

		assert.False(t, a.OK())
		assert.True(t, b.OK())
		assert.Equal(t, 7, b.Value)
		assert.True(t, finished.Load(), "settleBoth espera os dois ramos")
	})

	t.Run("Pânico vira erro do ramo", func(t *testing.T) {
		a, b := settleBoth(context.Background(),
			func(context.Context) (string, error) { panic("falhou") },
			func(context.Context) (int, error) { return 1, nil },
		)

		assert.EqualError(t, a.Err, "panic: falhou")
		assert.True(t, b.OK())
	})

	t.Run("Chamadas rodam em paralelo", func(t *testing.T) {
		start := time.Now()
		settleBoth(context.Background(),
			func(context.Context) (int, error) { time.Sleep(50 * time.Millisecond); return 0, nil },
			func(context.Context) (int, error) { time.Sleep(50 * time.Millisecond); return 0, nil },
		)

		assert.Less(t, time.Since(start), 95*time.Millisecond)
	})
}
