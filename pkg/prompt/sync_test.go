package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

func TestGeminiTranslator_Translate(t *testing.T) {
	ctx := context.Background()

	t.Run("翻訳結果を返しキャッシュに保存するのだ", func(t *testing.T) {
		ai := &mockAIClient{responseText: "  autumn festival banner  "}
		cache := &mockCache{data: make(map[string]any)}
		tr, err := NewGeminiTranslator(ai, "gemini-3-flash-preview", cache, time.Hour)
		require.NoError(t, err)

		got, err := tr.Translate(ctx, "가을 축제 배너")

		require.NoError(t, err)
		assert.Equal(t, "autumn festival banner", got, "前後の空白は除去されるのだ")
		assert.Contains(t, ai.lastPrompt, "가을 축제 배너")
	})

	t.Run("キャッシュヒット時はAPIを呼ばないのだ", func(t *testing.T) {
		ai := &mockAIClient{responseText: "fresh translation"}
		cache := &mockCache{data: make(map[string]any)}
		tr, err := NewGeminiTranslator(ai, "gemini-3-flash-preview", cache, time.Hour)
		require.NoError(t, err)

		first, err := tr.Translate(ctx, "같은 프롬프트")
		require.NoError(t, err)
		second, err := tr.Translate(ctx, "같은 프롬프트")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, ai.generateCalled, "2回目はキャッシュから返すべきなのだ")
	})

	t.Run("空の翻訳結果はエラーなのだ", func(t *testing.T) {
		ai := &mockAIClient{responseText: "   "}
		tr, err := NewGeminiTranslator(ai, "m", nil, 0)
		require.NoError(t, err)

		_, err = tr.Translate(ctx, "프롬프트")
		require.Error(t, err)
	})
}

func TestSyncer_Ensure(t *testing.T) {
	ctx := context.Background()

	t.Run("同期済みペアは翻訳せずそのまま返すのだ", func(t *testing.T) {
		ko := "한강 불빛 축제 배너"
		mt := &mockTranslator{result: "should not be used"}
		syncer, err := NewSyncer(mt)
		require.NoError(t, err)

		pair := domain.PromptPair{Korean: ko, English: "existing", SourceHash: domain.HashPrompt(ko)}
		got, err := syncer.Ensure(ctx, pair)

		require.NoError(t, err)
		assert.Equal(t, pair, got)
		assert.Zero(t, mt.called)
	})

	t.Run("同期切れなら再翻訳してハッシュを更新するのだ", func(t *testing.T) {
		mt := &mockTranslator{result: "new english prompt"}
		syncer, err := NewSyncer(mt)
		require.NoError(t, err)

		pair := domain.PromptPair{Korean: "수정된 프롬프트", English: "stale", SourceHash: "deadbeef"}
		got, err := syncer.Ensure(ctx, pair)

		require.NoError(t, err)
		assert.Equal(t, "new english prompt", got.English)
		assert.True(t, got.InSync(), "更新後のペアは同期済みであるべきなのだ")
	})

	t.Run("KOが空なら即エラーなのだ", func(t *testing.T) {
		syncer, err := NewSyncer(&mockTranslator{})
		require.NoError(t, err)

		_, err = syncer.Ensure(ctx, domain.PromptPair{})
		require.Error(t, err)
	})

	t.Run("翻訳失敗は伝播するのだ", func(t *testing.T) {
		trErr := errors.New("quota exceeded")
		syncer, err := NewSyncer(&mockTranslator{err: trErr})
		require.NoError(t, err)

		_, err = syncer.Ensure(ctx, domain.PromptPair{Korean: "ko"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, trErr))
	})
}

func TestPromptBuilder_BuildKoreanMaster(t *testing.T) {
	pb := NewPromptBuilder("festival poster style, vibrant colors, high resolution")

	t.Run("企画書の要素が順序どおり合成されるのだ", func(t *testing.T) {
		brief := domain.PlanningBrief{
			FestivalName: "한강 불빛 축제",
			Period:       "2026-10-01 ~ 2026-10-05",
			Keywords:     []string{"fireworks", "lantern"},
			Tone:         "축제",
		}

		got := pb.BuildKoreanMaster(brief)

		assert.Contains(t, got, "한강 불빛 축제 공식 홍보 배너")
		assert.Contains(t, got, "행사 기간: 2026-10-01 ~ 2026-10-05")
		assert.Contains(t, got, "fireworks, lantern")
		assert.Contains(t, got, "festival poster style")
	})

	t.Run("空要素はスキップされるのだ", func(t *testing.T) {
		got := NewPromptBuilder("").BuildKoreanMaster(domain.PlanningBrief{FestivalName: "축제"})
		assert.Equal(t, "축제 공식 홍보 배너", got)
	})
}
