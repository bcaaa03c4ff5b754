package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/banner"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/prompt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BannerRunner は、企画概要を基にバナー画像を生成するためのインターフェース。
type BannerRunner interface {
	// Run は指定枚数のバナー生成を実行し、保存結果のリストを返す。
	Run(ctx context.Context, brief domain.PlanningBrief) ([]*artifact.ResultEnvelope, error)
}

// FestivalBannerRunner は、プロンプトの韓英同期を保ちながら並列でバナー生成を行う実体。
type FestivalBannerRunner struct {
	service       *banner.Service       // 生成と成果物保存をまとめたサービス
	promptBuilder *prompt.PromptBuilder // 企画概要からマスタープロンプトを組むビルダー
	syncer        *prompt.Syncer        // 韓国語マスターと英語プロンプトの同期役
	options       config.GenerateOptions
}

// NewFestivalBannerRunner は、FestivalBannerRunnerの新しいインスタンスを生成して返す。
func NewFestivalBannerRunner(
	service *banner.Service,
	pb *prompt.PromptBuilder,
	syncer *prompt.Syncer,
	options config.GenerateOptions,
) *FestivalBannerRunner {
	return &FestivalBannerRunner{
		service:       service,
		promptBuilder: pb,
		syncer:        syncer,
		options:       options,
	}
}

// Run は並列処理を用いて、指定枚数のバナーを生成するメインロジックなのだ。
func (br *FestivalBannerRunner) Run(ctx context.Context, brief domain.PlanningBrief) ([]*artifact.ResultEnvelope, error) {
	// 1. 企画概要から韓国語マスタープロンプトを組み立てるのだ
	master := br.promptBuilder.BuildKoreanMaster(brief)

	// 2. 英語プロンプトをマスターと同期させるのだ（画像モデルは英語の方が安定する）
	pair, err := br.syncer.Ensure(ctx, domain.PromptPair{Korean: master})
	if err != nil {
		return nil, fmt.Errorf("プロンプト同期に失敗したのだ: %w", err)
	}

	variants := br.options.Variants
	if variants <= 0 {
		variants = config.DefaultVariants
	}

	req := domain.GenerationRequest{
		Prompt:     pair.English,
		Width:      br.options.Width,
		Height:     br.options.Height,
		AspectMode: br.options.AspectMode,
	}
	if br.options.Seed != 0 {
		seed := br.options.Seed
		req.Seed = &seed
	}

	envelopes := make([]*artifact.ResultEnvelope, variants)
	eg, egCtx := errgroup.WithContext(ctx)

	// 設定された間隔でレートリミット（流量制限）をかけるのだ
	// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateLimit), 2)
	slog.Info("並列バナー生成を開始するのだ", "variants", variants, "interval", config.DefaultRateLimit)

	for i := 0; i < variants; i++ {
		i := i // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			// 2. バリアントごとに接頭辞を分けて、保存名の衝突を防ぐのだ
			prefix := fmt.Sprintf("%s_v%d", br.options.Prefix, i+1)
			slog.Info("バナーを生成中...", "variant", i+1, "prefix", prefix)

			envelope, err := br.service.GenerateAndSave(egCtx, req, br.options.OutputDir, prefix)
			if err != nil {
				slog.Error("バナー生成に失敗したのだ", "variant", i+1, "error", err)
				return err
			}

			envelopes[i] = envelope
			slog.Info("バナー生成に成功したのだ", "variant", i+1, "files", len(envelope.Artifacts), "skipped", envelope.Skipped)
			return nil
		})
	}

	// すべての並列処理が完了するのを待つのだ
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("すべてのバナーが正常に生成されたのだ", "total", len(envelopes))
	return envelopes, nil
}
