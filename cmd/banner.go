package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// bannerCmd は、バナー画像の生成と保存のみを実行するのだ。
var bannerCmd = &cobra.Command{
	Use:   "banner",
	Short: "バナー画像のみを生成して保存するのだ。",
	Long: `企画ファイルを読み込み、フェスティバルバナーの画像生成と保存を実行するのだ。
販促テキストの生成は行わないので、ビジュアルの試行錯誤に便利なのだ。`,
	RunE: bannerCommand,
}

func init() {
}

func bannerCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.BriefURL == "" && opts.BriefFile == "" {
		return fmt.Errorf("ソース（--brief-url または --brief-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("バナー生成モードを起動するのだ！",
		"provider", opts.Provider,
		"image_model", cfg.GeminiImageModel,
		"variants", opts.Variants,
		"output", opts.OutputDir)

	err := pipeline.ExecuteBannerOnly(ctx, cfg)
	if err != nil {
		return fmt.Errorf("バナー生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("バナー生成が完了したのだ！", "output_dir", opts.OutputDir)
	return nil
}
