package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/asset"
	"github.com/shouni/go-festival-kit/pkg/domain"
	"github.com/shouni/go-festival-kit/pkg/promo"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string   // 生成された campaign.md のパス
	HTMLPath     string   // 生成された HTML のパス
	ManifestPath string   // 生成された manifest.json のパス
	BannerPaths  []string // 公開先に書き出された全バナーのパスリスト
}

// CampaignPublisher はキャンペーン成果物の永続化とフォーマット変換を担います。
type CampaignPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewCampaignPublisher creates and returns a new instance of CampaignPublisher with the specified writer and HTML runner.
func NewCampaignPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *CampaignPublisher {
	return &CampaignPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish はバナーの転送、Markdownの構築、HTML変換、マニフェスト出力を一括して実行し、
// 生成されたファイル情報を返却するのだ！
func (p *CampaignPublisher) Publish(ctx context.Context, bundle domain.PromoBundle, envelope *artifact.ResultEnvelope, opts Options) (PublishResult, error) {
	result := PublishResult{}

	// 1. 出力パスの解決
	markdown, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultCampaignName)
	if err != nil {
		return result, err
	}
	result.MarkdownPath = markdown

	// バナーディレクトリのベースパスを作成
	bannerDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultBannerDir)
	if err != nil {
		return result, err
	}

	// 2. バナー画像の転送
	publishedPaths, err := p.publishBanners(ctx, envelope, bannerDir)
	if err != nil {
		return result, fmt.Errorf("バナーの書き込みに失敗しました: %w", err)
	}
	result.BannerPaths = publishedPaths

	// 3. Markdown用相対パスの作成
	relativePaths := make([]string, 0, len(publishedPaths))
	for _, pathStr := range publishedPaths {
		relPath := path.Join(asset.DefaultBannerDir, filepath.Base(pathStr))
		relativePaths = append(relativePaths, relPath)
	}

	// 4. Markdownテキストの構築
	content := promo.BuildCampaignMarkdown(bundle, relativePaths)

	// 5. Markdownファイルの書き出し
	if err := p.writer.Write(ctx, markdown, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	// 6. HTML変換と保存
	if p.htmlRunner != nil {
		slog.Info("キャンペーンHTMLへ変換します", "title", bundle.FestivalName)
		htmlBuffer, err := p.htmlRunner.Run(ctx, bundle.FestivalName, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		// Markdownの拡張子を置換してHTMLパスを生成するのだ
		htmlPath := strings.TrimSuffix(markdown, filepath.Ext(markdown)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	// 7. マニフェストの書き出し
	manifestPath, err := p.writeManifest(ctx, envelope, result, opts.OutputDir)
	if err != nil {
		return result, err
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// publishBanners はローカルに保存済みのバナーを読み出し、公開先ストレージへ転送します。
// リモートURL由来の成果物はローカルファイルを持たないため、そのままのパスを記録します。
func (p *CampaignPublisher) publishBanners(ctx context.Context, envelope *artifact.ResultEnvelope, baseDir string) ([]string, error) {
	if envelope == nil {
		return nil, nil
	}

	var paths []string
	for _, art := range envelope.Artifacts {
		if art.Path == "" {
			if art.SourceURL != "" {
				paths = append(paths, art.SourceURL)
			}
			continue
		}

		data, err := os.ReadFile(art.Path)
		if err != nil {
			return nil, fmt.Errorf("バナーの読み込みに失敗しました %s: %w", art.Path, err)
		}

		fullPath, err := asset.ResolveOutputPath(baseDir, art.Name)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}

		contentType := "image/png"
		if strings.HasSuffix(art.Name, ".jpg") {
			contentType = "image/jpeg"
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), contentType); err != nil {
			return nil, fmt.Errorf("バナーの書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}

// manifestEntry は manifest.json における成果物1件の記録です。
type manifestEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SourceURL string `json:"source_url,omitempty"`
}

// campaignManifest は公開済みキャンペーンの構成を示すマニフェストです。
type campaignManifest struct {
	MarkdownPath string          `json:"markdown_path"`
	HTMLPath     string          `json:"html_path,omitempty"`
	Banners      []manifestEntry `json:"banners"`
	Skipped      int             `json:"skipped"`
}

// writeManifest は成果物の一覧を manifest.json として書き出します。
func (p *CampaignPublisher) writeManifest(ctx context.Context, envelope *artifact.ResultEnvelope, result PublishResult, outputDir string) (string, error) {
	manifest := campaignManifest{
		MarkdownPath: result.MarkdownPath,
		HTMLPath:     result.HTMLPath,
	}
	if envelope != nil {
		manifest.Skipped = envelope.Skipped
		for _, art := range envelope.Artifacts {
			manifest.Banners = append(manifest.Banners, manifestEntry{
				Name:      art.Name,
				Path:      art.Path,
				SourceURL: art.SourceURL,
			})
		}
	}

	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("マニフェストのエンコードに失敗しました: %w", err)
	}

	manifestPath, err := asset.ResolveOutputPath(outputDir, asset.DefaultManifestName)
	if err != nil {
		return "", err
	}
	if err := p.writer.Write(ctx, manifestPath, bytes.NewReader(encoded), "application/json; charset=utf-8"); err != nil {
		return "", fmt.Errorf("マニフェストの書き込みに失敗しました: %w", err)
	}
	return manifestPath, nil
}
