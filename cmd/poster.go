package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-festival-kit/internal/config"
	"github.com/shouni/go-festival-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// posterImagePath は poster コマンド専用のフラグなのだ。
var posterImagePath string

// posterCmd は、保存済みポスター画像の品質をAIに採点させるのだ。
var posterCmd = &cobra.Command{
	Use:   "poster",
	Short: "保存済みポスター画像の品質をAIに採点させるのだ。",
	Long: `生成済みのバナーやポスター画像を読み込み、構図・可読性・雰囲気の3項目で
LLMに採点させるのだ。バリアントの採否判断に便利なのだよ。`,
	RunE: posterCommand,
}

func init() {
	posterCmd.Flags().StringVarP(&posterImagePath, "image", "i", "", "採点する画像のパス（ローカル or gs://...）なのだ。")
}

func posterCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if posterImagePath == "" {
		return fmt.Errorf("採点する画像（--image）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts
	cfg.GeminiModel = opts.AIModel

	slog.Info("ポスター採点モードを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"image", posterImagePath)

	err := pipeline.ExecutePosterScore(ctx, cfg, posterImagePath)
	if err != nil {
		return fmt.Errorf("ポスター採点中にエラーが発生したのだ: %w", err)
	}

	return nil
}
