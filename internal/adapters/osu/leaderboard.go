package osu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

type LeaderboardQuery struct {
	MapID    uint32
	National bool
	Mode     domain.GameMode
	// Mods sólo se manda si Filter es true; Filter con NoMods pide "NM".
	Mods   domain.GameMods
	Filter bool
}

type facet struct {
	mods   domain.GameMods
	filter bool
}

// facets arma los requests de un leaderboard: el pedido base, la variante con
// mirror en mania y los alternos DT/NC (también con mirror si aplica).
func facets(q LeaderboardQuery) []facet {
	out := []facet{{mods: q.Mods, filter: q.Filter}}

	nonMirror := !q.Filter || !q.Mods.Contains(domain.ModMirror)
	mirror := q.Mode.HasMirrorEquivalence() && nonMirror
	if mirror {
		out = append(out, facet{mods: q.Mods | domain.ModMirror, filter: true})
	}
	if !q.Filter {
		return out
	}

	var alt domain.GameMods
	switch {
	case q.Mods.Contains(domain.ModDoubleTime):
		alt = q.Mods | domain.ModNightcore
	case q.Mods.Contains(domain.ModNightcore):
		alt = (q.Mods &^ domain.ModNightcore) | domain.ModDoubleTime
	default:
		return out
	}
	if mirror {
		out = append(out, facet{mods: alt | domain.ModMirror, filter: true})
	}
	return append(out, facet{mods: alt, filter: true})
}

// Leaderboard devuelve hasta 50 scores, uno por jugador, de mayor a menor.
// Puede hacer hasta cuatro requests (ver facets).
func (c *Client) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]domain.Score, error) {
	fs := facets(q)
	results := make([][]domain.Score, len(fs))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fs {
		g.Go(func() error {
			scores, err := c.leaderboardPage(gctx, q.MapID, q.National, f)
			if err != nil {
				return err
			}
			results[i] = scores
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return domain.MergeScores(results...), nil
}

func (c *Client) leaderboardURL(mapID uint32, national bool, f facet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sbeatmaps/%d/scores?", c.baseURL, mapID)
	if national {
		b.WriteString("type=country")
	}
	if f.filter {
		if f.mods == domain.NoMods {
			b.WriteString("&mods[]=NM")
		} else {
			for _, m := range f.mods.Acronyms() {
				b.WriteString("&mods[]=")
				b.WriteString(m)
			}
		}
	}
	return b.String()
}

func (c *Client) leaderboardPage(ctx context.Context, mapID uint32, national bool, f facet) ([]domain.Score, error) {
	body, err := c.get(ctx, SiteLeaderboard, c.leaderboardURL(mapID, national, f), nil)
	if err != nil {
		return nil, err
	}
	var dto scoresDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &ParseError{Kind: "leaderboard", Body: truncate(body, 512), Err: err}
	}
	out := make([]domain.Score, len(dto.Scores))
	for i, s := range dto.Scores {
		out[i] = s.toDomain()
	}
	return out, nil
}
