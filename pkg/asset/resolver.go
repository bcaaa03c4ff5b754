package asset

import (
	"fmt"
	"regexp"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultBannerDir は生成されたバナー画像を格納するデフォルトのディレクトリ名です。
	DefaultBannerDir = "banners"
	// DefaultCampaignName は生成されたキャンペーン文書のデフォルト Markdown ファイル名です。
	DefaultCampaignName = "campaign.md"
	// DefaultManifestName は成果物マニフェストのデフォルト JSON ファイル名です。
	DefaultManifestName = "manifest.json"
	// DefaultBannerFileName はバナー画像の共通のベースファイル名です。
	DefaultBannerFileName = "banner.png"
	// DefaultPosterFileName はポスター画像の共通のベースファイル名です。
	DefaultPosterFileName = "poster.png"
)

var (
	// BannerFileRegex は保存済みバナー画像 (banner_20260101_120000_1.png 等) に一致します
	BannerFileRegex = createArtifactRegex("banner")
	// PosterFileRegex は保存済みポスター画像 (poster_20260101_120000_1.png 等) に一致します
	PosterFileRegex = createArtifactRegex("poster")
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/banner.png", 1 -> "path/to/banner_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// createArtifactRegex は、保存済み成果物のファイル名
// ({prefix}_{日付}_{時刻}_{連番}.{拡張子}) 用の正規表現を生成します。
func createArtifactRegex(prefix string) *regexp.Regexp {
	pattern := fmt.Sprintf(`^%s_\d{8}_\d{6}_\d+\.(?:png|jpg)$`, regexp.QuoteMeta(prefix))
	return regexp.MustCompile(pattern)
}
