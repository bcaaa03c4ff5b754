package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// 画像生成モデルは英語プロンプトの方が安定するため、KO マスターから
// EN 実行用プロンプトを派生させます。翻訳指示は逐語訳ではなく
// 画像生成プロンプトとしての言い換えを要求します。
const translateInstruction = `You are a prompt translator for an image generation model.
Translate the following Korean festival-marketing banner prompt into concise English
suitable as an image generation prompt. Keep proper nouns as-is.
Return ONLY the translated prompt text, no explanations.

Korean prompt:
`

// TranslationCacher は翻訳結果のキャッシュ操作を抽象化するインターフェースです。
type TranslationCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// Translator はテキストを英語へ翻訳するためのインターフェースです。
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GeminiTranslator は Gemini のテキストモデルによる Translator 実装です。
type GeminiTranslator struct {
	aiClient gemini.GenerativeModel
	model    string
	cache    TranslationCacher
	cacheTTL time.Duration
}

// NewGeminiTranslator は依存関係を注入して GeminiTranslator を生成します。
// cache は nil を許容します（キャッシュなし動作）。
func NewGeminiTranslator(aiClient gemini.GenerativeModel, model string, cache TranslationCacher, cacheTTL time.Duration) (*GeminiTranslator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &GeminiTranslator{aiClient: aiClient, model: model, cache: cache, cacheTTL: cacheTTL}, nil
}

// Translate は韓国語プロンプトを英語の画像生成プロンプトへ変換します。
func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	cacheKey := "translate:" + domain.HashPrompt(text)
	if t.cache != nil {
		if val, ok := t.cache.Get(cacheKey); ok {
			if cached, ok := val.(string); ok {
				return cached, nil
			}
		}
	}

	resp, err := t.aiClient.GenerateContent(ctx, t.model, translateInstruction+text)
	if err != nil {
		return "", fmt.Errorf("翻訳リクエストに失敗しました: %w", err)
	}

	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		return "", fmt.Errorf("翻訳結果が空でした")
	}

	if t.cache != nil {
		t.cache.Set(cacheKey, translated, t.cacheTTL)
	}
	return translated, nil
}

// Syncer は KO マスタープロンプトと EN 実行用プロンプトの同期を管理します。
type Syncer struct {
	translator Translator
}

// NewSyncer は Translator を注入して Syncer を生成します。
func NewSyncer(translator Translator) (*Syncer, error) {
	if translator == nil {
		return nil, fmt.Errorf("translator is required")
	}
	return &Syncer{translator: translator}, nil
}

// Ensure はペアの同期状態を確認し、EN 側が古い場合のみ再翻訳します。
// 同期済みならペアをそのまま返し、翻訳呼び出しは発生しません。
func (s *Syncer) Ensure(ctx context.Context, pair domain.PromptPair) (domain.PromptPair, error) {
	if strings.TrimSpace(pair.Korean) == "" {
		return domain.PromptPair{}, fmt.Errorf("KOマスタープロンプトが空です")
	}
	if pair.InSync() {
		return pair, nil
	}

	slog.Info("ENプロンプトが同期切れのため再翻訳するのだ", "hash", domain.HashPrompt(pair.Korean))

	english, err := s.translator.Translate(ctx, pair.Korean)
	if err != nil {
		return domain.PromptPair{}, err
	}

	return domain.PromptPair{
		Korean:     pair.Korean,
		English:    english,
		SourceHash: domain.HashPrompt(pair.Korean),
	}, nil
}
