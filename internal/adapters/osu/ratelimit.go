package osu

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Site es la clase de endpoint; cada una tiene su propio bucket.
type Site uint8

const (
	SiteLeaderboard Site = iota
	SiteMapFile
)

func (s Site) String() string {
	switch s {
	case SiteLeaderboard:
		return "leaderboard"
	case SiteMapFile:
		return "map_file"
	}
	return "unknown"
}

// TokenBucket: capacidad fija, un token nuevo cada interval. Acquire atiende
// en orden de llegada (cada llamada reserva su turno al entrar).
type TokenBucket struct {
	lim *rate.Limiter
}

func NewTokenBucket(capacity int, interval time.Duration) *TokenBucket {
	if capacity < 1 {
		capacity = 1
	}
	return &TokenBucket{lim: rate.NewLimiter(rate.Every(interval), capacity)}
}

// PerSecond: bucket de n tokens que se recarga a n por segundo.
func PerSecond(n int) *TokenBucket {
	if n < 1 {
		n = 1
	}
	return NewTokenBucket(n, time.Second/time.Duration(n))
}

// Acquire bloquea hasta que haya un token o se cancele ctx.
func (b *TokenBucket) Acquire(ctx context.Context) error {
	return b.lim.Wait(ctx)
}

func (b *TokenBucket) Capacity() int { return b.lim.Burst() }

// Available es la cantidad de tokens en este momento, entre 0 y Capacity.
func (b *TokenBucket) Available() float64 {
	t := b.lim.Tokens()
	if t < 0 {
		return 0
	}
	return t
}
