package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/prompt"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/parser"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// PlanRunner は、素材ドキュメントから企画概要を起こすためのインターフェースなのだ。
type PlanRunner interface {
	// Run は企画分析を実行し、構造化された企画概要と元のMarkdownを返すのだ。
	Run(ctx context.Context) (*domain.PlanningBrief, string, error)
}

// FestivalPlanRunner は、雑多な資料をAIに整理させて企画概要Markdownを作る構造体なのだ。
type FestivalPlanRunner struct {
	cfg       config.Config
	extractor *extract.Extractor
	aiClient  gemini.GenerativeModel
	reader    remoteio.InputReader
}

// NewFestivalPlanRunner は、FestivalPlanRunnerの新しいインスタンスを生成して返すのだ。
func NewFestivalPlanRunner(
	cfg config.Config,
	ext *extract.Extractor,
	ai gemini.GenerativeModel,
	r remoteio.InputReader,
) *FestivalPlanRunner {
	return &FestivalPlanRunner{
		cfg:       cfg,
		extractor: ext,
		aiClient:  ai,
		reader:    r,
	}
}

// Run は資料の読み込みと企画概要の生成、生成結果の構造チェックまでを行うのだ。
func (plr *FestivalPlanRunner) Run(ctx context.Context) (*domain.PlanningBrief, string, error) {
	input, err := plr.readInputContent(ctx)
	if err != nil {
		return nil, "", err
	}

	promptContent, err := prompt.BuildPrompt(prompt.ModePlan, prompt.TemplateData{InputText: string(input)})
	if err != nil {
		return nil, "", err
	}

	resp, err := plr.aiClient.GenerateContent(ctx, plr.cfg.GeminiModel, promptContent)
	if err != nil {
		return nil, "", fmt.Errorf("企画概要の生成に失敗したのだ: %w", err)
	}

	// AIが付けがちなコードフェンスを外してからパースするのだ
	markdown := strings.TrimSpace(resp.Text)
	markdown = strings.TrimPrefix(markdown, "```markdown")
	markdown = strings.TrimPrefix(markdown, "```")
	markdown = strings.TrimSuffix(markdown, "```")
	markdown = strings.TrimSpace(markdown)

	// 生成されたMarkdownが企画概要として読める構造かを検証するのだ
	brief, err := parser.ParseMarkdown(markdown)
	if err != nil {
		return nil, "", fmt.Errorf("生成された企画概要のパースに失敗したのだ: %w", err)
	}

	return brief, markdown, nil
}

func (plr *FestivalPlanRunner) readInputContent(ctx context.Context) ([]byte, error) {
	if plr.cfg.Options.BriefURL != "" {
		text, _, err := plr.extractor.FetchAndExtractText(ctx, plr.cfg.Options.BriefURL)
		return []byte(text), err
	}
	rc, err := plr.reader.Open(ctx, plr.cfg.Options.BriefFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
