package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによるバナー画像と販促テキストの一括生成を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "AIにキャンペーン一式（バナーと販促テキスト）を生成させますなのだ。",
	Long: `企画資料を解析し、バナー画像、販促テキスト、キャンペーンサマリーを一括生成するのだ。
出力は画像ファイル（バナー）、Markdown/HTML（サマリー）、JSON（マニフェスト）になるのだよ。`,
	RunE: generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.BriefURL == "" && opts.BriefFile == "" && !isStdin() {
		return fmt.Errorf("ソース（--brief-url または --brief-file）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("キャンペーン生成パイプラインを起動するのだ！",
		"provider", opts.Provider,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.ExecuteCampaign(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
