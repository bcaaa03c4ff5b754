package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdown(t *testing.T) {
	t.Run("Markdown企画書を正しく解析できるのだ", func(t *testing.T) {
		input := `# 한강 불빛 축제

- period: 2026-10-01 ~ 2026-10-05
- venue: 여의도 한강공원
- audience: families and young couples
- keywords: night market, fireworks, lantern
- tone: festive

## 概要
한강에서 열리는 가을 빛 축제.
夜間マーケットと花火がメインなのだ。
`

		brief, err := ParseMarkdown(input)
		require.NoError(t, err)

		assert.Equal(t, "한강 불빛 축제", brief.FestivalName)
		assert.Equal(t, "2026-10-01 ~ 2026-10-05", brief.Period)
		assert.Equal(t, "여의도 한강공원", brief.Venue)
		assert.Equal(t, []string{"night market", "fireworks", "lantern"}, brief.Keywords)
		assert.Contains(t, brief.Summary, "가을 빛 축제")
	})

	t.Run("タイトル行が無いとエラーになるのだ", func(t *testing.T) {
		_, err := ParseMarkdown("- period: 2026-10-01\n")
		require.Error(t, err)
	})

	t.Run("未知のフィールドは読み飛ばすのだ", func(t *testing.T) {
		brief, err := ParseMarkdown("# 축제\n- budget: 100000000\n- venue: 서울\n")
		require.NoError(t, err)
		assert.Equal(t, "서울", brief.Venue)
	})
}
