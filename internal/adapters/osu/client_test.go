package osu

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
	"github.com/jose-valero/osu-leaderboard-bot/internal/infra/backoff"
)

func fastRetry() backoff.Policy {
	return backoff.Policy{Base: 2, Factor: time.Microsecond, MaxDelay: 100 * time.Microsecond, Attempts: 10}
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New("secret",
		WithBaseURL(srv.URL+"/"),
		WithHTTPClient(srv.Client()),
		WithRetryPolicy(fastRetry()),
		WithLimiter(SiteLeaderboard, NewTokenBucket(100, time.Millisecond)),
		WithLimiter(SiteMapFile, NewTokenBucket(100, time.Millisecond)),
	)
	return c, srv
}

type rawScore struct {
	ID         uint64   `json:"id"`
	UserID     uint32   `json:"user_id"`
	Accuracy   float64  `json:"accuracy"`
	Mods       []string `json:"mods"`
	TotalScore uint64   `json:"total_score"`
	User       struct {
		Username string `json:"username"`
	} `json:"user"`
}

func writeScores(w http.ResponseWriter, scores ...rawScore) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"scores": scores})
}

func score(user uint32, total uint64, mods ...string) rawScore {
	s := rawScore{ID: uint64(user)*1000 + total, UserID: user, Accuracy: 0.9876, Mods: mods, TotalScore: total}
	s.User.Username = fmt.Sprintf("player%d", user)
	return s
}

func TestLeaderboardRequest(t *testing.T) {
	var got *http.Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		writeScores(w, score(1, 1000, "HD"))
	})

	scores, err := c.Leaderboard(t.Context(), LeaderboardQuery{
		MapID: 2240404, National: true, Mode: domain.ModeOsu,
		Mods: domain.ModHidden | domain.ModHardRock, Filter: true,
	})

	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "/beatmaps/2240404/scores", got.URL.Path)
	assert.Equal(t, "country", got.URL.Query().Get("type"))
	assert.Equal(t, []string{"HD", "HR"}, got.URL.Query()["mods[]"])
	cookie, err := got.Cookie("osu_session")
	require.NoError(t, err)
	assert.Equal(t, "secret", cookie.Value)

	assert.Equal(t, "player1", scores[0].Username)
	assert.InDelta(t, 98.76, scores[0].Accuracy, 0.001)
	assert.Equal(t, domain.ModHidden, scores[0].Mods)
}

func TestLeaderboardURL(t *testing.T) {
	c := New("")
	tests := []struct {
		name     string
		national bool
		f        facet
		want     string
	}{
		{"global no filter", false, facet{}, "https://osu.ppy.sh/beatmaps/1/scores?"},
		{"national nomod", true, facet{mods: domain.NoMods, filter: true}, "https://osu.ppy.sh/beatmaps/1/scores?type=country&mods[]=NM"},
		{"mods", true, facet{mods: domain.ModDoubleTime | domain.ModNightcore, filter: true}, "https://osu.ppy.sh/beatmaps/1/scores?type=country&mods[]=DT&mods[]=NC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.leaderboardURL(1, tt.national, tt.f))
		})
	}
}

func TestFacets(t *testing.T) {
	dt := domain.ModDoubleTime
	nc := domain.ModNightcore
	mr := domain.ModMirror
	hd := domain.ModHidden

	tests := []struct {
		name string
		q    LeaderboardQuery
		want []facet
	}{
		{"osu no filter", LeaderboardQuery{Mode: domain.ModeOsu}, []facet{{}}},
		{"mania no filter", LeaderboardQuery{Mode: domain.ModeMania}, []facet{{}, {mods: mr, filter: true}}},
		{"mania with mirror", LeaderboardQuery{Mode: domain.ModeMania, Mods: mr | hd, Filter: true}, []facet{{mods: mr | hd, filter: true}}},
		{"osu dt", LeaderboardQuery{Mode: domain.ModeOsu, Mods: dt | hd, Filter: true}, []facet{
			{mods: dt | hd, filter: true},
			{mods: dt | nc | hd, filter: true},
		}},
		{"osu nc", LeaderboardQuery{Mode: domain.ModeOsu, Mods: nc, Filter: true}, []facet{
			{mods: nc, filter: true},
			{mods: dt, filter: true},
		}},
		{"mania dt", LeaderboardQuery{Mode: domain.ModeMania, Mods: dt, Filter: true}, []facet{
			{mods: dt, filter: true},
			{mods: dt | mr, filter: true},
			{mods: dt | nc | mr, filter: true},
			{mods: dt | nc, filter: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, facets(tt.q))
		})
	}
}

func TestLeaderboardManiaMerge(t *testing.T) {
	var mu sync.Mutex
	var seen [][]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mods := r.URL.Query()["mods[]"]
		mu.Lock()
		seen = append(seen, mods)
		mu.Unlock()

		switch strings.Join(mods, "") {
		case "DT":
			writeScores(w, score(1, 900, "DT"), score(2, 800, "DT"))
		case "DTMR":
			writeScores(w, score(2, 950, "DT", "MR"), score(3, 500, "DT", "MR"))
		case "DTNCMR":
			writeScores(w, score(3, 990, "DT", "NC", "MR"))
		case "DTNC":
			writeScores(w, score(1, 100, "DT", "NC"), score(4, 50, "DT", "NC"))
		default:
			http.Error(w, "unexpected", http.StatusBadRequest)
		}
	})

	scores, err := c.Leaderboard(t.Context(), LeaderboardQuery{
		MapID: 7, Mode: domain.ModeMania, Mods: domain.ModDoubleTime, Filter: true,
	})

	require.NoError(t, err)
	assert.Len(t, seen, 4)
	got := make([]string, 0, len(scores))
	for _, s := range scores {
		got = append(got, fmt.Sprintf("%d:%d", s.UserID, s.Score))
	}
	assert.Equal(t, []string{"3:990", "2:950", "1:900", "4:50"}, got)
}

func TestLeaderboardTruncatesAndDedupes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// la variante MR repite 30 jugadores con otro score
		offset, bump := uint32(0), uint64(0)
		if slices.Contains(r.URL.Query()["mods[]"], "MR") {
			offset, bump = 20, 5
		}
		var out []rawScore
		for i := uint32(0); i < 50; i++ {
			out = append(out, score(i+offset, uint64(10_000-i*10)-bump))
		}
		writeScores(w, out...)
	})

	scores, err := c.Leaderboard(t.Context(), LeaderboardQuery{MapID: 1, Mode: domain.ModeMania})

	require.NoError(t, err)
	require.Len(t, scores, domain.LeaderboardSize)
	users := map[uint32]bool{}
	for i, s := range scores {
		assert.False(t, users[s.UserID])
		users[s.UserID] = true
		if i > 0 {
			assert.Greater(t, scores[i-1].Score, s.Score)
		}
	}
}

func TestLeaderboardRetryLimit(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Leaderboard(t.Context(), LeaderboardQuery{MapID: 1, Mode: domain.ModeOsu})

	var rle *backoff.RetryLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, int32(10), hits.Load())
}

func TestLeaderboardStatusErrorNoRetry(t *testing.T) {
	var hits atomic.Int32
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Leaderboard(t.Context(), LeaderboardQuery{MapID: 1, National: true, Mode: domain.ModeOsu})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, srv.URL+"/beatmaps/1/scores?type=country", se.URL)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLeaderboardParseError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ddos</html>"))
	})

	_, err := c.Leaderboard(t.Context(), LeaderboardQuery{MapID: 1})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "leaderboard", pe.Kind)
}

func TestMapFileRetriesUntilReady(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/osu/42", r.URL.Path)
		if hits.Add(1) < 3 {
			_, _ = w.Write([]byte("<html>wait</html>"))
			return
		}
		_, _ = w.Write([]byte("osu file format v14\n"))
	})

	b, err := c.MapFile(t.Context(), 42)

	require.NoError(t, err)
	assert.Equal(t, "osu file format v14\n", string(b))
	assert.Equal(t, int32(3), hits.Load())
}

func TestMapFileNeverReady(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html>wait</html>"))
	})

	_, err := c.MapFile(t.Context(), 42)

	var rle *backoff.RetryLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, int32(10), hits.Load())
}
