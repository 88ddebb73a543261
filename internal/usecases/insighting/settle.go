package insighting

import (
	"context"
	"fmt"
	"sync"
)

// Result é o resultado de um ramo do settleBoth: ou Value ou Err
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// settleBoth roda as duas chamadas em paralelo e espera as duas, sem falhar rápido.
// A decisão de degradar ou falhar fica com quem chama.
func settleBoth[A, B any](
	ctx context.Context,
	first func(context.Context) (A, error),
	second func(context.Context) (B, error),
) (Result[A], Result[B]) {
	var (
		ra Result[A]
		rb Result[B]
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer recoverInto(&ra.Err)
		ra.Value, ra.Err = first(ctx)
	}()

	go func() {
		defer wg.Done()
		defer recoverInto(&rb.Err)
		rb.Value, rb.Err = second(ctx)
	}()

	wg.Wait()

	return ra, rb
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
