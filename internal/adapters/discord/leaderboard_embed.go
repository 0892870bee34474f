package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/osu-leaderboard-bot/internal/adapters/discord/pagination"
	"github.com/jose-valero/osu-leaderboard-bot/internal/domain"
)

const scoresPerPage = 10

// leaderboardEmbed renderiza la página p del leaderboard.
func leaderboardEmbed(info domain.MapInfo, scores []domain.Score, p pagination.Pages, emotes Emotes) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name: info.DisplayTitle(),
			URL:  info.URL(),
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: fmt.Sprintf("https://b.ppy.sh/thumb/%dl.jpg", info.MapsetID),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d • map by %s", p.Number(), p.Total, info.Creator),
		},
	}
	if len(scores) == 0 {
		embed.Description = "No scores found"
		return embed
	}
	embed.Author.IconURL = fmt.Sprintf("https://a.ppy.sh/%d", scores[0].UserID)

	var b strings.Builder
	start, end := p.Start(), min(p.End(), len(scores))
	for i := start; i < end; i++ {
		writeScoreLine(&b, i+1, scores[i], emotes)
	}
	embed.Description = b.String()
	return embed
}

func writeScoreLine(b *strings.Builder, rank int, s domain.Score, emotes Emotes) {
	pp := "-"
	if s.PP != nil {
		pp = fmt.Sprintf("**%.2f**pp", *s.PP)
	}
	fmt.Fprintf(b, "**%d.** %s **[%s](https://osu.ppy.sh/users/%d)**: %s [ **%dx** ] **+%s**\n",
		rank, emotes.grade(s.Grade), escapeMarkdown(s.Username), s.UserID, withComma(s.Score), s.MaxCombo, s.Mods)
	fmt.Fprintf(b, " - %s • %.2f%% • %d%s <t:%d:R>\n",
		pp, s.Accuracy, s.Statistics.Miss, emotes.Miss, s.EndedAt.Unix())
}

// withComma: 12345678 → 12,345,678.
func withComma(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"|", `\|`,
	">", `\>`,
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
