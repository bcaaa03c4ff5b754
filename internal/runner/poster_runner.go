package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/score"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// PosterRunner は保存済みポスター画像の採点処理のインターフェースです。
type PosterRunner interface {
	Run(ctx context.Context, imagePath string) (domain.PosterScore, error)
}

// DefaultPosterRunner は pkg/score を利用した標準実装です。
type DefaultPosterRunner struct {
	scorer *score.Scorer
	reader remoteio.InputReader
}

func NewDefaultPosterRunner(scorer *score.Scorer, reader remoteio.InputReader) *DefaultPosterRunner {
	return &DefaultPosterRunner{
		scorer: scorer,
		reader: reader,
	}
}

// Run は画像を読み込んで LLM 採点にかけるのだ。ローカルと gs:// の両方に対応するのだ。
func (pr *DefaultPosterRunner) Run(ctx context.Context, imagePath string) (domain.PosterScore, error) {
	rc, err := pr.reader.Open(ctx, imagePath)
	if err != nil {
		return domain.PosterScore{}, fmt.Errorf("ポスター画像 '%s' の読み込みに失敗しました: %w", imagePath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.PosterScore{}, err
	}

	return pr.scorer.Score(ctx, data)
}
