package osu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
)

const (
	defaultBase = "https://osu.ppy.sh/"
	userAgent   = "osu-leaderboard-bot (+https://github.com/jose-valero/osu-leaderboard-bot)"
	maxBody     = 16 << 20
)

// Client habla con la web de osu! (endpoints que no están en la API pública).
// Cada request pasa por el bucket de su Site y por la política de reintentos.
type Client struct {
	session  string
	http     *http.Client
	baseURL  string
	retry    backoff.Policy
	limiters map[Site]*TokenBucket
}

func New(session string, opts ...Option) *Client {
	c := &Client{
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBase,
		retry:   backoff.Osu,
		limiters: map[Site]*TokenBucket{
			SiteLeaderboard: PerSecond(2),
			SiteMapFile:     PerSecond(5),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// get: token del bucket → request → reintento si es 429 o "not ready".
func (c *Client) get(ctx context.Context, site Site, u string, ready func([]byte) bool) ([]byte, error) {
	var body []byte
	attempt := 0
	err := c.retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		if err := c.limiters[site].Acquire(ctx); err != nil {
			return err
		}
		b, err := c.do(ctx, u)
		if err == nil && ready != nil && !ready(b) {
			err = errNotReady
		}
		if err != nil {
			if isTransient(err) {
				log.Debug().Err(err).Str("site", site.String()).Str("url", u).Int("attempt", attempt).Msg("osu request not ready, backing off")
			}
			return err
		}
		body = b
		return nil
	}, isTransient)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "osu_session", Value: c.session})
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osu http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, &StatusError{Status: res.StatusCode, URL: u}
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("osu read body: %w", err)
	}
	return b, nil
}

func notHTML(b []byte) bool { return !bytes.HasPrefix(b, []byte("<html>")) }

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
