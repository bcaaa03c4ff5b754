package runner

import (
	"context"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/publisher"
)

// PublisherRunner はパブリッシュ処理のインターフェースです。
type PublisherRunner interface {
	Run(ctx context.Context, bundle domain.PromoBundle, envelope *artifact.ResultEnvelope) (publisher.PublishResult, error)
}

// DefaultPublisherRunner は pkg/publisher を利用した標準実装です。
type DefaultPublisherRunner struct {
	options   config.GenerateOptions
	publisher *publisher.CampaignPublisher
}

func NewDefaultPublisherRunner(options config.GenerateOptions, pub *publisher.CampaignPublisher) *DefaultPublisherRunner {
	return &DefaultPublisherRunner{
		options:   options,
		publisher: pub,
	}
}

func (pr *DefaultPublisherRunner) Run(ctx context.Context, bundle domain.PromoBundle, envelope *artifact.ResultEnvelope) (publisher.PublishResult, error) {
	// internal/config の値を pkg/publisher 用の構造体に詰め替えます。
	opts := publisher.Options{
		OutputDir: pr.options.OutputDir,
	}

	return pr.publisher.Publish(ctx, bundle, envelope, opts)
}
