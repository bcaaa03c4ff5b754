package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// planCmd は、雑多な資料から企画概要（Markdown）を起こすのだ。
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "資料から企画概要（Markdown）を生成して保存するのだ。",
	Long: `WebページやテキストをAIに分析させて、バナー生成や販促テキスト生成の入力になる
構造化された企画概要（フェスティバル名、期間、会場、キーワードなど）を作るのだ。`,
	RunE: planCommand,
}

func init() {
}

func planCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.BriefURL == "" && opts.BriefFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--brief-url または --brief-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts
	cfg.GeminiModel = opts.AIModel

	slog.Info("企画分析モードを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"output", cfg.Options.OutputDir)

	err := pipeline.ExecutePlanOnly(ctx, cfg)
	if err != nil {
		return fmt.Errorf("企画分析中にエラーが発生したのだ: %w", err)
	}

	slog.Info("企画概要の生成が完了したのだ！", "output_dir", opts.OutputDir)
	return nil
}
