package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel              = "gemini-3-flash-preview"
	DefaultImageModel         = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout        = 30 * time.Second
	DefaultVariants           = 1
	DefaultRateLimit          = 30 * time.Second
	DefaultLocalOutputDir     = "output"                 // 成果物一式のデフォルト保存先なのだ
	DefaultLocalBannerDir     = "output/banners"         // バナー画像のデフォルト保存先なのだ
	DefaultArtifactPrefix     = "banner"                 // 保存ファイル名の接頭辞なのだ
	DefaultBannerPromptSuffix = "festival key visual, vivid poster composition, bold typography space, celebratory atmosphere, high-quality digital illustration, clean shapes, print-ready, masterpiece, ultra-detailed, high resolution"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID          string
	LocationID         string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiImageModel   string
	BannerPromptSuffix string

	// OpenAI互換エンドポイント設定（代替プロバイダ用）なのだ
	OpenAIEndpoint string
	OpenAIAPIKey   string
	OpenAIModel    string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:          envutil.GetEnv("PROJECT_ID", ""),
		LocationID:         envutil.GetEnv("REGION", ""),
		GeminiAPIKey:       envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:        envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		BannerPromptSuffix: envutil.GetEnv("BANNER_PROMPT_SUFFIX", DefaultBannerPromptSuffix),
		OpenAIEndpoint:     envutil.GetEnv("OPENAI_COMPAT_ENDPOINT", ""),
		OpenAIAPIKey:       envutil.GetEnv("OPENAI_COMPAT_API_KEY", ""),
		OpenAIModel:        envutil.GetEnv("OPENAI_COMPAT_MODEL", ""),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	BriefURL  string // --brief-url
	BriefFile string // --brief-file
	OutputDir string // --output-dir
	Prefix    string // --prefix

	// 画像生成関連
	Width        int    // --width
	Height       int    // --height
	AspectMode   string // --aspect
	Variants     int    // --variants: 生成するバナーの枚数
	Provider     string // --provider: gemini または openai-compat
	ReferenceURL string // --reference-url: 画風参照用の画像URL
	Seed         int64  // --seed (0は未指定扱い)

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
