package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-festival-kit/pkg/artifact"
	"github.com/shouni/go-festival-kit/pkg/domain"
)

// mockWriter は書き込み内容をメモリに記録するモックなのだ。
type mockWriter struct {
	writes map[string][]byte
	types  map[string]string
}

func newMockWriter() *mockWriter {
	return &mockWriter{writes: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.writes[path] = data
	m.types[path] = contentType
	return nil
}

// mockHTMLRunner は受け取ったMarkdownをそのままHTMLとして返すモックなのだ。
type mockHTMLRunner struct{}

func (m *mockHTMLRunner) Run(ctx context.Context, title string, md []byte) (io.Reader, error) {
	return bytes.NewReader(append([]byte("<html>"), md...)), nil
}

func testBundle() domain.PromoBundle {
	return domain.PromoBundle{
		FestivalName: "桜まつり",
		Pieces: []domain.PromoPiece{
			{Channel: domain.ChannelPressRelease, Title: "開催のお知らせ", Body: "本文"},
		},
	}
}

func TestCampaignPublisher_Publish(t *testing.T) {
	t.Run("Markdownとマニフェストが書き出される", func(t *testing.T) {
		dir := t.TempDir()
		bannerFile := filepath.Join(dir, "banner_20260101_120000_1.png")
		require.NoError(t, os.WriteFile(bannerFile, []byte("\x89PNGdata"), 0o644))

		envelope := &artifact.ResultEnvelope{
			Success: true,
			Artifacts: []artifact.SavedArtifact{
				{Path: bannerFile, Name: "banner_20260101_120000_1.png"},
			},
			Skipped: 2,
		}

		writer := newMockWriter()
		pub := NewCampaignPublisher(writer, &mockHTMLRunner{})

		outDir := filepath.Join(dir, "publish")
		result, err := pub.Publish(context.Background(), testBundle(), envelope, Options{OutputDir: outDir})
		require.NoError(t, err)

		md, ok := writer.writes[result.MarkdownPath]
		require.True(t, ok, "Markdownが書き込まれていること")
		assert.Contains(t, string(md), "banners/banner_20260101_120000_1.png", "相対パスで画像参照されること")
		assert.Contains(t, string(md), "桜まつり")

		html, ok := writer.writes[result.HTMLPath]
		require.True(t, ok, "HTMLが書き込まれていること")
		assert.True(t, strings.HasPrefix(string(html), "<html>"))

		manifestData, ok := writer.writes[result.ManifestPath]
		require.True(t, ok, "マニフェストが書き込まれていること")

		var manifest campaignManifest
		require.NoError(t, json.Unmarshal(manifestData, &manifest))
		assert.Equal(t, 2, manifest.Skipped)
		require.Len(t, manifest.Banners, 1)
		assert.Equal(t, "banner_20260101_120000_1.png", manifest.Banners[0].Name)
	})

	t.Run("リモートURL由来の成果物はそのまま参照される", func(t *testing.T) {
		envelope := &artifact.ResultEnvelope{
			Success: true,
			Artifacts: []artifact.SavedArtifact{
				{SourceURL: "https://cdn.example.com/banner.png"},
			},
		}

		writer := newMockWriter()
		pub := NewCampaignPublisher(writer, nil)

		result, err := pub.Publish(context.Background(), testBundle(), envelope, Options{OutputDir: t.TempDir()})
		require.NoError(t, err)

		require.Len(t, result.BannerPaths, 1)
		assert.Equal(t, "https://cdn.example.com/banner.png", result.BannerPaths[0])
		assert.Empty(t, result.HTMLPath, "htmlRunnerなしではHTMLは生成されない")
	})

	t.Run("ローカルバナーの読み込み失敗はエラーになる", func(t *testing.T) {
		envelope := &artifact.ResultEnvelope{
			Artifacts: []artifact.SavedArtifact{
				{Path: filepath.Join(t.TempDir(), "missing.png"), Name: "missing.png"},
			},
		}

		pub := NewCampaignPublisher(newMockWriter(), nil)
		_, err := pub.Publish(context.Background(), testBundle(), envelope, Options{OutputDir: t.TempDir()})
		assert.Error(t, err)
	})
}
