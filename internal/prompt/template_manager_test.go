package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPromptByMode(t *testing.T) {
	t.Run("既知のモードはテンプレートを返すのだ", func(t *testing.T) {
		content, err := GetPromptByMode(ModePromo)
		require.NoError(t, err)
		assert.Contains(t, content, "press_release")

		content, err = GetPromptByMode(ModePlan)
		require.NoError(t, err)
		assert.Contains(t, content, "keywords")
	})

	t.Run("未知のモードはエラーになるのだ", func(t *testing.T) {
		_, err := GetPromptByMode("comic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plan, promo", "サポート一覧がソート順で列挙されること")
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("入力テキストが埋め込まれるのだ", func(t *testing.T) {
		result, err := BuildPrompt(ModePromo, TemplateData{InputText: "夏祭り 8月1日 中央公園"})
		require.NoError(t, err)
		assert.Contains(t, result, "夏祭り 8月1日 中央公園")
	})

	t.Run("未知のモードはエラーになるのだ", func(t *testing.T) {
		_, err := BuildPrompt("comic", TemplateData{})
		assert.Error(t, err)
	})
}
