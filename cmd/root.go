package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-festival-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全コマンド共通の実行時パラメータなのだ。addAppFlags で各フラグに紐付けるのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.BriefURL, "brief-url", "u", "", "Webページから企画資料を取得するためのURLなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.BriefFile, "brief-file", "f", "", "企画ファイルのパス（Markdown または JSON）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultLocalOutputDir, "保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Prefix, "prefix", config.DefaultArtifactPrefix, "保存ファイル名の接頭辞なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- バナー生成固有設定 ---
	rootCmd.PersistentFlags().IntVar(&opts.Width, "width", 1024, "バナーの横幅（512〜3024に丸め込まれる）なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.Height, "height", 1024, "バナーの縦幅（512〜3024に丸め込まれる）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectMode, "aspect", "", "アスペクト比モード（square/wide/portrait/custom）なのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.Variants, "variants", "n", config.DefaultVariants, "生成するバナーの枚数なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Provider, "provider", "gemini", "画像生成バックエンド（gemini or openai-compat）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ReferenceURL, "reference-url", "", "画風参照用の画像URLなのだ。")
	rootCmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "画像生成のシード値（0は未指定）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-festival-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		planCmd,
		bannerCmd,
		promoCmd,
		posterCmd,
	)
}
