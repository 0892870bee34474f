package osu

import (
	"net/http"

	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithRetryPolicy(p backoff.Policy) Option {
	return func(c *Client) { c.retry = p }
}

func WithLimiter(site Site, b *TokenBucket) Option {
	return func(c *Client) { c.limiters[site] = b }
}
