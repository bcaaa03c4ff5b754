package promo

import (
	"fmt"
	"strings"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// チャネルごとの見出し表記です。表示順は domain.Channels に従います。
var channelHeadings = map[domain.Channel]string{
	domain.ChannelPressRelease: "보도자료 (Press Release)",
	domain.ChannelSNS:          "SNS",
	domain.ChannelNotice:       "안내문 (Notice)",
}

// BuildCampaignMarkdown は販促テキスト一式とバナーのパスリストを
// 1枚のキャンペーンサマリー Markdown に組み立てます。
func BuildCampaignMarkdown(bundle domain.PromoBundle, bannerPaths []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", bundle.FestivalName))

	if len(bannerPaths) > 0 {
		sb.WriteString("## Banners\n")
		for _, p := range bannerPaths {
			sb.WriteString(fmt.Sprintf("![banner](%s)\n", p))
		}
		sb.WriteString("\n")
	}

	for _, ch := range domain.Channels {
		piece, ok := bundle.PieceFor(ch)
		if !ok {
			continue
		}
		heading := channelHeadings[ch]
		if heading == "" {
			heading = string(ch)
		}
		sb.WriteString(fmt.Sprintf("## %s\n", heading))
		if piece.Title != "" {
			sb.WriteString(fmt.Sprintf("**%s**\n\n", piece.Title))
		}
		sb.WriteString(piece.Body)
		sb.WriteString("\n")
		if len(piece.Hashtags) > 0 {
			sb.WriteString(formatHashtags(piece.Hashtags))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatHashtags は # 接頭辞を補ってハッシュタグ行を組み立てるのだ。
func formatHashtags(tags []string) string {
	formatted := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		formatted = append(formatted, tag)
	}
	return strings.Join(formatted, " ")
}
