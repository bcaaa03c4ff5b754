package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFetchTimeout は URL 分類されたアイテム1件あたりの取得タイムアウトです。
const DefaultFetchTimeout = 120 * time.Second

// タイムスタンプは人間が読める秒精度です。呼び出し内の一意性は
// タイムスタンプではなく単調増加する連番が保証します。
const timestampLayout = "20060102_150405"

// SavedArtifact は応答アイテム1件をローカルに永続化した結果です。
// 生成後に変更されることはなく、ファイルの寿命はこのコンポーネントでは管理しません。
type SavedArtifact struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	SourceURL string `json:"source_url,omitempty"`
}

// Fetcher は URL からバイト列と Content-Type を取得するためのインターフェースです。
// 拡張子の推定に応答ヘッダーが必要なため、go-http-kit の FetchBytes ではなく
// ヘッダーを返せる専用インターフェースを切っています。
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// HTTPFetcher は net/http による Fetcher の標準実装です。
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher は取得タイムアウトを指定して HTTPFetcher を生成します。
// timeout が 0 以下の場合は DefaultFetchTimeout を使います。
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch は URL を GET し、本文と Content-Type ヘッダーを返します。
// 非2xxステータスは ErrTransport として失敗させます。
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: リクエスト構築エラー: %v", ErrTransport, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%w: ステータス %d (%s)", ErrTransport, resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: 本文の読み取りに失敗: %v", ErrTransport, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Saver は分類済みアイテムをローカルファイルへ永続化します。
type Saver struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewSaver は Fetcher を注入して Saver を生成します。
func NewSaver(fetcher Fetcher) (*Saver, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	return &Saver{fetcher: fetcher, now: time.Now}, nil
}

// Save は分類済みアイテム1件を destinationDir 配下へ書き込み、その記録を返します。
// ファイル名は {prefix}_{タイムスタンプ}_{連番}{拡張子} で構成します。
func (s *Saver) Save(ctx context.Context, item Classified, destinationDir, prefix string, seq int) (SavedArtifact, error) {
	switch item.Kind {
	case KindURL:
		return s.saveURL(ctx, item.URL, destinationDir, prefix, seq)
	case KindBytes:
		return s.saveBytes(item.Data, destinationDir, prefix, seq, "")
	}
	return SavedArtifact{}, fmt.Errorf("未分類のアイテムは保存できません")
}

func (s *Saver) saveURL(ctx context.Context, url, destinationDir, prefix string, seq int) (SavedArtifact, error) {
	data, contentType, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return SavedArtifact{}, err
	}

	art, err := s.saveBytes(data, destinationDir, prefix, seq, extFromContentType(contentType))
	if err != nil {
		return SavedArtifact{}, err
	}
	art.SourceURL = url
	return art, nil
}

func (s *Saver) saveBytes(data []byte, destinationDir, prefix string, seq int, ext string) (SavedArtifact, error) {
	if ext == "" {
		ext = extFromMagic(data)
	}
	name := fmt.Sprintf("%s_%s_%d%s", prefix, s.now().Format(timestampLayout), seq, ext)

	if err := os.MkdirAll(destinationDir, 0o755); err != nil {
		return SavedArtifact{}, fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}

	path := filepath.Join(destinationDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return SavedArtifact{}, fmt.Errorf("アーティファクトの書き込みに失敗しました (%s): %w", path, err)
	}

	return SavedArtifact{Path: path, Name: name}, nil
}

// extFromContentType は応答ヘッダーから拡張子を推定します。png を含めば .png、それ以外は .jpg です。
func extFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(contentType), "png") {
		return ".png"
	}
	return ".jpg"
}

var (
	pngMagic  = []byte("\x89PNG")
	jpegMagic = []byte{0xff, 0xd8}
)

// extFromMagic は先頭のマジックバイトから拡張子を推定します。不明な場合は .jpg に倒します。
func extFromMagic(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ".png"
	case bytes.HasPrefix(data, jpegMagic):
		return ".jpg"
	}
	return ".jpg"
}
