package openai

import (
	"context"
	"sync"
)

// Handler receives the outcome of a callback-form call. It is invoked exactly once,
// on a goroutine owned by the client, with either a response or an error.
type Handler[T any] func(*T, error)

type outcome[T any] struct {
	value *T
	err   error
}

func send[T any](c *Client, ctx context.Context, ep Endpoint, model string, payload any, handler Handler[T]) {
	if handler == nil {
		handler = func(*T, error) {}
	}
	go func() {
		out := new(T)
		if err := c.roundTrip(ctx, ep, model, payload, out); err != nil {
			handler(nil, err)
			return
		}
		handler(out, nil)
	}()
}

// await parks the caller until start's handler fires.
func await[T any](start func(Handler[T])) (*T, error) {
	done := make(chan outcome[T], 1)
	var once sync.Once
	start(func(v *T, err error) {
		once.Do(func() { done <- outcome[T]{value: v, err: err} })
	})
	o := <-done
	return o.value, o.err
}
