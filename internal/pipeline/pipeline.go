package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-festival-kit/internal/builder"
	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/asset"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/parser"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteCampaign は、企画概要の解決からバナー生成、販促テキスト生成、
// 公開処理までを一気に実行するフルパイプラインなのだ。
func ExecuteCampaign(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Phase 1: Plan Phase (企画概要の解決) ---
	brief, err := resolveBrief(ctx, appCtx)
	if err != nil {
		return err
	}

	// --- Phase 2: Banner Phase (バナー生成) ---
	envelope, err := runBannerStep(ctx, appCtx, *brief)
	if err != nil {
		return err
	}

	// --- Phase 3: Promo Phase (販促テキスト生成) ---
	bundle, err := runPromoStep(ctx, appCtx)
	if err != nil {
		return err
	}

	// --- Phase 4: Publish Phase (公開/保存) ---
	if err := runPublishStep(ctx, appCtx, bundle, envelope); err != nil {
		return err
	}

	slog.Info("キャンペーン生成と公開処理が完了したのだ！")
	return nil
}

// ExecuteBannerOnly は、企画概要を読み込んでバナー生成と保存のみを実行するのだ。
func ExecuteBannerOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	brief, err := resolveBrief(ctx, appCtx)
	if err != nil {
		return err
	}

	envelope, err := runBannerStep(ctx, appCtx, *brief)
	if err != nil {
		return err
	}

	slog.Info("バナー生成が完了したのだ！", "files", len(envelope.Artifacts), "skipped", envelope.Skipped)
	return nil
}

// ExecutePromoOnly は、販促テキスト一式の生成（JSON出力）のみを実行するのだ。
func ExecutePromoOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	bundle, err := runPromoStep(ctx, appCtx)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("販促テキストのエンコードに失敗したのだ: %w", err)
	}

	outputPath, err := asset.ResolveOutputPath(cfg.Options.OutputDir, "promo_bundle.json")
	if err != nil {
		return err
	}
	if err := appCtx.Writer.Write(ctx, outputPath, bytes.NewReader(encoded), "application/json; charset=utf-8"); err != nil {
		return fmt.Errorf("販促テキストの保存に失敗したのだ: %w", err)
	}

	slog.Info("販促テキストの生成が完了したのだ！", "path", outputPath)
	return nil
}

// ExecutePlanOnly は、資料の分析と企画概要（Markdown）の生成のみを実行するのだ。
func ExecutePlanOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	planRunner, err := builder.BuildPlanRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("PlanRunnerの構築に失敗したのだ: %w", err)
	}

	brief, markdown, err := planRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("企画分析に失敗したのだ: %w", err)
	}

	outputPath, err := asset.ResolveOutputPath(cfg.Options.OutputDir, "brief.md")
	if err != nil {
		return err
	}
	if err := appCtx.Writer.Write(ctx, outputPath, strings.NewReader(markdown), "text/markdown; charset=utf-8"); err != nil {
		return fmt.Errorf("企画概要の保存に失敗したのだ: %w", err)
	}

	slog.Info("企画概要の生成が完了したのだ！", "festival", brief.FestivalName, "path", outputPath)
	return nil
}

// ExecutePosterScore は、保存済みポスター画像の品質採点のみを実行するのだ。
func ExecutePosterScore(ctx context.Context, cfg *config.Config, imagePath string) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	posterRunner, err := builder.BuildPosterRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("PosterRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := posterRunner.Run(ctx, imagePath)
	if err != nil {
		return fmt.Errorf("ポスター採点に失敗したのだ: %w", err)
	}

	slog.Info("ポスター採点が完了したのだ！",
		"composition", result.Composition,
		"legibility", result.Legibility,
		"mood", result.Mood,
		"total", result.Total,
		"comment", result.Comment,
	)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// ライフサイクル管理用の context と設定オブジェクトを受け取るのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(config.DefaultHTTPTimeout)
	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// resolveBrief は入力ソースに応じて企画概要を用意するのだ。
// 構造化済みの企画ファイルはそのままパースし、URL指定の場合はAI分析を挟むのだ。
func resolveBrief(ctx context.Context, appCtx *builder.AppContext) (*domain.PlanningBrief, error) {
	opts := appCtx.Options
	if opts.BriefFile != "" {
		briefParser := parser.NewBriefParser(appCtx.Reader)
		brief, err := briefParser.ParseFromPath(ctx, opts.BriefFile)
		if err != nil {
			return nil, fmt.Errorf("企画ファイル '%s' の読み込みに失敗したのだ: %w", opts.BriefFile, err)
		}
		return brief, nil
	}

	planRunner, err := builder.BuildPlanRunner(ctx, appCtx)
	if err != nil {
		return nil, fmt.Errorf("PlanRunnerの構築に失敗したのだ: %w", err)
	}
	brief, _, err := planRunner.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("企画分析に失敗したのだ: %w", err)
	}
	return brief, nil
}

// runBannerStep は FestivalBannerRunner を使ってバナーを並列生成し、結果を1つに束ねるのだ
func runBannerStep(ctx context.Context, appCtx *builder.AppContext, brief domain.PlanningBrief) (*artifact.ResultEnvelope, error) {
	slog.Info("Phase 2: バナー生成を開始するのだ...", "variants", appCtx.Options.Variants)
	bannerRunner, err := builder.BuildBannerRunner(ctx, appCtx)
	if err != nil {
		return nil, fmt.Errorf("BannerRunnerの構築に失敗したのだ: %w", err)
	}

	envelopes, err := bannerRunner.Run(ctx, brief)
	if err != nil {
		return nil, fmt.Errorf("バナー生成に失敗したのだ: %w", err)
	}
	return mergeEnvelopes(envelopes), nil
}

// runPromoStep は FestivalPromoRunner を使って販促テキスト一式を生成するのだ
func runPromoStep(ctx context.Context, appCtx *builder.AppContext) (domain.PromoBundle, error) {
	slog.Info("Phase 3: 販促テキスト生成を開始するのだ...")
	promoRunner, err := builder.BuildPromoRunner(ctx, appCtx)
	if err != nil {
		return domain.PromoBundle{}, fmt.Errorf("PromoRunnerの構築に失敗したのだ: %w", err)
	}

	bundle, err := promoRunner.Run(ctx)
	if err != nil {
		return domain.PromoBundle{}, fmt.Errorf("販促テキスト生成に失敗したのだ: %w", err)
	}
	return bundle, nil
}

// runPublishStep は PublisherRunner を使って最終成果物を保存するのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, bundle domain.PromoBundle, envelope *artifact.ResultEnvelope) error {
	slog.Info("Phase 4: 公開処理を開始するのだ...")
	publishRunner, err := builder.BuildPublisherRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := publishRunner.Run(ctx, bundle, envelope)
	if err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}

	slog.Info("公開処理が完了したのだ", "markdown", result.MarkdownPath, "html", result.HTMLPath, "manifest", result.ManifestPath)
	return nil
}

// mergeEnvelopes はバリアントごとの保存結果を公開処理用に1つへ束ねるのだ。
func mergeEnvelopes(envelopes []*artifact.ResultEnvelope) *artifact.ResultEnvelope {
	merged := &artifact.ResultEnvelope{Success: true}
	for _, env := range envelopes {
		if env == nil {
			continue
		}
		merged.Artifacts = append(merged.Artifacts, env.Artifacts...)
		merged.Locations = append(merged.Locations, env.Locations...)
		merged.Skipped += env.Skipped
		if merged.Request.Prompt == "" {
			merged.Request = env.Request
		}
	}
	return merged
}
