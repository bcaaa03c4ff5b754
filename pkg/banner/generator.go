package banner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/domain"
)

// Generator は1件のバナー生成リクエストを外部APIに投げ、生の応答アイテム列を返します。
// 応答の形状はプロバイダ依存なので、解釈はすべて pkg/artifact 側に委ねるのだ。
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (any, error)
}

// Service はバリデーション・生成・正規化保存を一括で行う呼び出し窓口です。
// 短命スクリプトや単発ハンドラから1呼び出し＝1バナー生成で使う前提で、
// 内部に並行制御は持ちません。
type Service struct {
	generator Generator
	processor *artifact.Processor
}

// NewService は依存関係を注入して Service を初期化します。
func NewService(generator Generator, processor *artifact.Processor) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if processor == nil {
		return nil, fmt.Errorf("processor is required")
	}
	return &Service{generator: generator, processor: processor}, nil
}

// GenerateAndSave はリクエスト検証、外部生成呼び出し、応答の正規化と保存までを
// 実行して結果封筒を返します。検証エラーは外部呼び出しの前に返します。
func (s *Service) GenerateAndSave(ctx context.Context, req domain.GenerationRequest, destinationDir, prefix string) (*artifact.ResultEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()

	slog.Info("バナー生成を開始します",
		"width", req.Width, "height", req.Height,
		"aspect_mode", req.AspectMode, "prefix", prefix)

	raw, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("バナー生成呼び出しに失敗しました: %w", err)
	}

	env, err := s.processor.Process(ctx, raw, destinationDir, prefix, req)
	if err != nil {
		return nil, err
	}

	slog.Info("バナー生成が完了したのだ",
		"artifacts", len(env.Artifacts), "skipped", env.Skipped, "first", env.FileName)
	return env, nil
}
