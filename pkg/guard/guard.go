// Package guard composes typed request-authorization pipelines.
//
// A pipeline is a chain of stages where each stage narrows the request
// context: a raw Request becomes an Authed request once the session is
// resolved, and an Authed request becomes a Scoped one once a tenant
// and role are attached. Because each stage's output type is the next
// stage's input type, skipping a prerequisite stage is a compile error
// rather than a runtime surprise.
package guard

import "context"

// Stage transforms a request context, optionally augmenting the
// context.Context passed downstream. Returning an error terminates the
// pipeline; later stages never run.
type Stage[In, Out any] func(ctx context.Context, in In) (context.Context, Out, error)

// Then chains two stages. The zero Out value is returned on error.
func Then[A, B, C any](first Stage[A, B], second Stage[B, C]) Stage[A, C] {
	return func(ctx context.Context, in A) (context.Context, C, error) {
		ctx, mid, err := first(ctx, in)
		if err != nil {
			var zero C
			return ctx, zero, err
		}
		return second(ctx, mid)
	}
}
