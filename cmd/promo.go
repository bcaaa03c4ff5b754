package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// promoCmd は、販促テキスト一式の生成（JSON出力）のみを実行するのだ。
var promoCmd = &cobra.Command{
	Use:   "promo",
	Short: "販促テキスト一式（JSON）のみを生成して保存するのだ。",
	Long: `企画資料を解析し、報道資料・SNS投稿・来場者案内の3チャネル分の販促テキストを
JSON形式で出力するのだ。画像生成は行わないのだよ。`,
	RunE: promoCommand,
}

func init() {
}

func promoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	// 1. 入力ソースの必須チェック (opts は addAppFlags で紐付け済みと想定)
	if opts.BriefURL == "" && opts.BriefFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--brief-url または --brief-file）を指定してほしいのだ")
	}

	// 2. 設定のロード
	cfg := config.LoadConfig()
	cfg.Options = opts
	cfg.GeminiModel = opts.AIModel

	slog.Info("販促テキスト生成モードを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"output", cfg.Options.OutputDir)

	// 3. 実行
	err := pipeline.ExecutePromoOnly(ctx, cfg)
	if err != nil {
		return fmt.Errorf("販促テキスト生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("販促テキスト（JSON）の生成が完了したのだ！", "output_dir", opts.OutputDir)
	return nil
}
