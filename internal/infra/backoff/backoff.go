// Package backoff arma la política de reintentos exponenciales sobre go-retry.
package backoff

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy: el n-ésimo sleep (n ≥ 1) es Factor·Base^n, con techo MaxDelay.
// Attempts cuenta intentos totales, no reintentos.
type Policy struct {
	Base     float64
	Factor   time.Duration
	MaxDelay time.Duration
	Attempts int
}

var (
	// Requests a osu.ppy.sh.
	Osu = Policy{Base: 2, Factor: 500 * time.Millisecond, MaxDelay: 10 * time.Second, Attempts: 10}
	// Reacciones de la paginación.
	Reactions = Policy{Base: 5, Factor: 40 * time.Millisecond, MaxDelay: 2 * time.Second, Attempts: 3}
)

// RetryLimitError: se agotaron los intentos sobre fallas transitorias.
type RetryLimitError struct {
	Attempts int
	Last     error
}

func (e *RetryLimitError) Error() string {
	return fmt.Sprintf("reached retry limit after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryLimitError) Unwrap() error { return e.Last }

// Exponential es el generador de delays, sin límite de intentos.
func (p Policy) Exponential() retry.Backoff {
	var mu sync.Mutex
	current := p.Base
	raw := retry.BackoffFunc(func() (time.Duration, bool) {
		mu.Lock()
		defer mu.Unlock()

		d := float64(p.Factor) * current
		current *= p.Base
		if d >= math.MaxInt64 {
			return math.MaxInt64, false
		}
		return time.Duration(d), false
	})
	return retry.WithCappedDuration(p.MaxDelay, raw)
}

// Backoff limita la exponencial a Attempts-1 sleeps.
func (p Policy) Backoff() retry.Backoff {
	retries := 0
	if p.Attempts > 1 {
		retries = p.Attempts - 1
	}
	return retry.WithMaxRetries(uint64(retries), p.Exponential())
}

// Do corre fn hasta que devuelva nil, un error no transitorio o se acaben los
// intentos. transient decide qué errores se reintentan.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error, transient func(error) bool) error {
	attempts := 0
	err := retry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		attempts++
		err := fn(ctx)
		if err != nil && transient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) && transient(err) {
		return &RetryLimitError{Attempts: attempts, Last: err}
	}
	return err
}
