package promo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

func TestParseBundle(t *testing.T) {
	t.Run("コードフェンス付きJSONをパースできるのだ", func(t *testing.T) {
		raw := "```json\n" + `{
			"festival_name": "한강 불빛 축제",
			"pieces": [
				{"channel": "press_release", "title": "보도자료 제목", "body": "본문"},
				{"channel": "sns", "title": "SNS", "body": "빛이 내리는 밤!", "hashtags": ["한강축제", "불꽃놀이"]}
			]
		}` + "\n```"

		bundle, err := ParseBundle(raw)
		require.NoError(t, err)

		assert.Equal(t, "한강 불빛 축제", bundle.FestivalName)
		require.Len(t, bundle.Pieces, 2)
		sns, ok := bundle.PieceFor(domain.ChannelSNS)
		require.True(t, ok)
		assert.Equal(t, []string{"한강축제", "불꽃놀이"}, sns.Hashtags)
	})

	t.Run("壊れたJSONはエラーなのだ", func(t *testing.T) {
		_, err := ParseBundle("this is not json")
		require.Error(t, err)
	})

	t.Run("piecesが空だとエラーなのだ", func(t *testing.T) {
		_, err := ParseBundle(`{"festival_name": "x", "pieces": []}`)
		require.Error(t, err)
	})
}

func TestBuildCampaignMarkdown(t *testing.T) {
	bundle := domain.PromoBundle{
		FestivalName: "한강 불빛 축제",
		Pieces: []domain.PromoPiece{
			{Channel: domain.ChannelSNS, Title: "밤을 밝히다", Body: "본문", Hashtags: []string{"한강축제", "#불꽃놀이"}},
			{Channel: domain.ChannelPressRelease, Title: "보도자료", Body: "프레스 본문"},
		},
	}

	got := BuildCampaignMarkdown(bundle, []string{"output/banners/banner_1.png"})

	t.Run("タイトルとバナーが含まれるのだ", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(got, "# 한강 불빛 축제\n"))
		assert.Contains(t, got, "![banner](output/banners/banner_1.png)")
	})

	t.Run("チャネルは定義順に並ぶのだ", func(t *testing.T) {
		pressIdx := strings.Index(got, "보도자료 (Press Release)")
		snsIdx := strings.Index(got, "## SNS")
		require.True(t, pressIdx >= 0 && snsIdx >= 0)
		assert.Less(t, pressIdx, snsIdx, "press releaseがSNSより先に出るべきなのだ")
	})

	t.Run("ハッシュタグは#が補完されるのだ", func(t *testing.T) {
		assert.Contains(t, got, "#한강축제 #불꽃놀이")
	})

	t.Run("欠けているチャネルはスキップされるのだ", func(t *testing.T) {
		assert.NotContains(t, got, "안내문")
	})
}
