package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/prompt"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/promo"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// PromoRunner は、企画資料から販促テキスト一式を生成するためのインターフェースなのだ。
type PromoRunner interface {
	// Run は販促テキスト生成パイプラインを実行し、構造化されたバンドルを返すのだ。
	Run(ctx context.Context) (domain.PromoBundle, error)
}

// FestivalPromoRunner は、ドキュメントから3チャネル分の販促テキストを生成する核となる構造体なのだ。
type FestivalPromoRunner struct {
	cfg       config.Config          // 実行時のコマンドライン引数や設定
	extractor *extract.Extractor     // Webサイトから本文を抽出するエクストラクター
	aiClient  gemini.GenerativeModel // Gemini APIと通信するクライアント
	reader    remoteio.InputReader   // ローカルやGCSのファイルを読み込むリーダー
}

// NewFestivalPromoRunner は、FestivalPromoRunnerの新しいインスタンスを生成して返すのだ。
func NewFestivalPromoRunner(
	cfg config.Config,
	ext *extract.Extractor,
	ai gemini.GenerativeModel,
	r remoteio.InputReader,
) *FestivalPromoRunner {
	return &FestivalPromoRunner{
		cfg:       cfg,
		extractor: ext,
		aiClient:  ai,
		reader:    r,
	}
}

// Run は、入力ソースの読み込み、プロンプト構築、AIによる生成、結果のパースを一気に行うのだ。
func (pr *FestivalPromoRunner) Run(ctx context.Context) (domain.PromoBundle, error) {
	// 1. 入力ソース（URL または ファイル）からテキストを読み込むのだ
	input, err := pr.readInputContent(ctx)
	if err != nil {
		return domain.PromoBundle{}, err
	}

	// 2. 読み取ったテキストをテンプレートに埋め込んでプロンプトを作るのだ
	promptContent, err := prompt.BuildPrompt(prompt.ModePromo, prompt.TemplateData{InputText: string(input)})
	if err != nil {
		return domain.PromoBundle{}, err
	}

	// 3. Geminiを使って、販促テキスト一式（JSON形式を期待）を生成させるのだ
	resp, err := pr.aiClient.GenerateContent(ctx, pr.cfg.GeminiModel, promptContent)
	if err != nil {
		return domain.PromoBundle{}, fmt.Errorf("販促テキストの生成に失敗したのだ: %w", err)
	}

	// 4. AIが返したテキストからJSON部分を抽出し、構造体に変換するのだ
	bundle, err := promo.ParseBundle(resp.Text)
	if err != nil {
		return domain.PromoBundle{}, err
	}

	return bundle, nil
}

// readInputContent は、URLまたはパスの設定に基づいて適切な方法でソースデータを取得するのだ。
func (pr *FestivalPromoRunner) readInputContent(ctx context.Context) ([]byte, error) {
	// URLが指定されている場合は、Webスクレイピングを実行するのだ
	if pr.cfg.Options.BriefURL != "" {
		text, _, err := pr.extractor.FetchAndExtractText(ctx, pr.cfg.Options.BriefURL)
		return []byte(text), err
	}
	// ファイルパスが指定されている場合は、リーダーを使って開くのだ（GCS等も対応！）
	rc, err := pr.reader.Open(ctx, pr.cfg.Options.BriefFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
