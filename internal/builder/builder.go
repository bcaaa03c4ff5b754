package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-festival-kit/internal/runner"
	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/banner"
	"github.com/shouni/go-festival-kit/pkg/prompt"
	"github.com/shouni/go-festival-kit/pkg/publisher"
	"github.com/shouni/go-festival-kit/pkg/score"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"google.golang.org/genai"
)

// BuildBannerRunner はバナー画像の並列生成を担当する Runner を構築します。
func BuildBannerRunner(ctx context.Context, appCtx *AppContext) (runner.BannerRunner, error) {
	gen, err := initializeGenerator(appCtx)
	if err != nil {
		return nil, fmt.Errorf("バナー生成器の初期化に失敗したのだ: %w", err)
	}

	processor, err := buildProcessor()
	if err != nil {
		return nil, err
	}

	service, err := banner.NewService(gen, processor)
	if err != nil {
		return nil, fmt.Errorf("バナーサービスの初期化に失敗したのだ: %w", err)
	}

	syncer, err := buildSyncer(appCtx)
	if err != nil {
		return nil, err
	}

	return runner.NewFestivalBannerRunner(
		service,
		prompt.NewPromptBuilder(appCtx.Config.BannerPromptSuffix),
		syncer,
		appCtx.Options,
	), nil
}

// BuildPromoRunner は販促テキスト生成を担当する Runner を構築します。
func BuildPromoRunner(ctx context.Context, appCtx *AppContext) (runner.PromoRunner, error) {
	extractor, err := extract.NewExtractor(appCtx.httpClient)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化に失敗したのだ: %w", err)
	}
	return runner.NewFestivalPromoRunner(*appCtx.Config, extractor, appCtx.aiClient, appCtx.Reader), nil
}

// BuildPlanRunner は企画資料の分析を担当する Runner を構築します。
func BuildPlanRunner(ctx context.Context, appCtx *AppContext) (runner.PlanRunner, error) {
	extractor, err := extract.NewExtractor(appCtx.httpClient)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化に失敗したのだ: %w", err)
	}
	return runner.NewFestivalPlanRunner(*appCtx.Config, extractor, appCtx.aiClient, appCtx.Reader), nil
}

// BuildPosterRunner はポスター品質採点を担当する Runner を構築します。
func BuildPosterRunner(ctx context.Context, appCtx *AppContext) (runner.PosterRunner, error) {
	scorer, err := score.NewScorer(appCtx.aiClient, appCtx.Config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("Scorerの初期化に失敗したのだ: %w", err)
	}
	return runner.NewDefaultPosterRunner(scorer, appCtx.Reader), nil
}

// BuildPublisherRunner はコンテンツ保存と変換を行う Runner を構築します。
func BuildPublisherRunner(ctx context.Context, appCtx *AppContext) (runner.PublisherRunner, error) {
	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	appBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	pub := publisher.NewCampaignPublisher(appCtx.Writer, md2htmlRunner)
	return runner.NewDefaultPublisherRunner(appCtx.Options, pub), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializeGenerator は Options.Provider に応じたバナー生成バックエンドを返します。
func initializeGenerator(appCtx *AppContext) (banner.Generator, error) {
	if appCtx.Options.Provider == "openai-compat" {
		cfg := appCtx.Config
		if cfg.OpenAIEndpoint == "" {
			return nil, fmt.Errorf("OPENAI_COMPAT_ENDPOINT が設定されていないのだ")
		}
		return banner.NewOpenAICompatGenerator(cfg.OpenAIEndpoint, cfg.OpenAIAPIKey, cfg.OpenAIModel, appCtx.Options.HTTPTimeout)
	}

	return banner.InitializeGeminiGenerator(
		appCtx.httpClient,
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.Config.GeminiImageModel,
		appCtx.Options.ReferenceURL,
	)
}

// buildProcessor は成果物の正規化と保存を行う Processor を組み立てます。
// 画像URLの取得は生成APIより長くかかることがあるため、専用のタイムアウトを使います。
func buildProcessor() (*artifact.Processor, error) {
	saver, err := artifact.NewSaver(artifact.NewHTTPFetcher(artifact.DefaultFetchTimeout))
	if err != nil {
		return nil, fmt.Errorf("Saverの初期化に失敗したのだ: %w", err)
	}
	processor, err := artifact.NewProcessor(saver)
	if err != nil {
		return nil, fmt.Errorf("Processorの初期化に失敗したのだ: %w", err)
	}
	return processor, nil
}

// buildSyncer は韓英プロンプト同期の Syncer を組み立てます。
// 翻訳結果は go-cache で保持し、同一マスターの再翻訳を避けます。
func buildSyncer(appCtx *AppContext) (*prompt.Syncer, error) {
	translationCache := cache.New(30*time.Minute, 1*time.Hour)
	translator, err := prompt.NewGeminiTranslator(appCtx.aiClient, appCtx.Config.GeminiModel, translationCache, 1*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("Translatorの初期化に失敗したのだ: %w", err)
	}
	syncer, err := prompt.NewSyncer(translator)
	if err != nil {
		return nil, fmt.Errorf("Syncerの初期化に失敗したのだ: %w", err)
	}
	return syncer, nil
}
