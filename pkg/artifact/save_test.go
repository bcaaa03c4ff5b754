package artifact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSaver(t *testing.T, fetcher Fetcher) *Saver {
	t.Helper()
	saver, err := NewSaver(fetcher)
	require.NoError(t, err)
	// テストの安定化のため時刻を固定するのだ
	saver.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}
	return saver
}

func TestSaver_SaveBytes(t *testing.T) {
	ctx := context.Background()
	saver := newTestSaver(t, NewHTTPFetcher(0))

	cases := []struct {
		name    string
		data    []byte
		wantExt string
	}{
		{"PNGマジックは.pngになるのだ", []byte("\x89PNG\r\n\x1a\nbody"), ".png"},
		{"JPEGマジックは.jpgになるのだ", []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2}, ".jpg"},
		{"不明なバイト列は.jpgに倒すのだ", []byte("gif89a-or-whatever"), ".jpg"},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			art, err := saver.Save(ctx, Classified{Kind: KindBytes, Data: tc.data}, dir, "banner", i+1)

			require.NoError(t, err)
			assert.Equal(t, tc.wantExt, filepath.Ext(art.Name))
			assert.Equal(t, filepath.Join(dir, art.Name), art.Path)
			assert.Empty(t, art.SourceURL)
		})
	}
}

func TestSaver_FileName(t *testing.T) {
	ctx := context.Background()
	saver := newTestSaver(t, NewHTTPFetcher(0))
	dir := t.TempDir()

	art, err := saver.Save(ctx, Classified{Kind: KindBytes, Data: []byte("\x89PNGxx")}, dir, "poster", 3)

	require.NoError(t, err)
	// {prefix}_{YYYYMMDD_HHMMSS}_{seq}{ext} の命名契約なのだ
	assert.Equal(t, "poster_20260826_143005_3.png", art.Name)
}

func TestSaver_SaveURL(t *testing.T) {
	ctx := context.Background()

	t.Run("Content-Typeにpngを含めば.pngで保存するのだ", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("\x89PNG-remote-body"))
		}))
		defer srv.Close()

		saver := newTestSaver(t, NewHTTPFetcher(0))
		art, err := saver.Save(ctx, Classified{Kind: KindURL, URL: srv.URL + "/img"}, t.TempDir(), "banner", 1)

		require.NoError(t, err)
		assert.Equal(t, ".png", filepath.Ext(art.Name))
		assert.Equal(t, srv.URL+"/img", art.SourceURL)
	})

	t.Run("pngを含まないContent-Typeは.jpgになるのだ", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/webp")
			w.Write([]byte("remote-body"))
		}))
		defer srv.Close()

		saver := newTestSaver(t, NewHTTPFetcher(0))
		art, err := saver.Save(ctx, Classified{Kind: KindURL, URL: srv.URL}, t.TempDir(), "banner", 1)

		require.NoError(t, err)
		assert.Equal(t, ".jpg", filepath.Ext(art.Name))
	})

	t.Run("非2xxステータスはErrTransportで失敗するのだ", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		saver := newTestSaver(t, NewHTTPFetcher(0))
		_, err := saver.Save(ctx, Classified{Kind: KindURL, URL: srv.URL}, t.TempDir(), "banner", 1)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTransport), "transport系の番兵エラーであるべきなのだ: %v", err)
	})

	t.Run("接続失敗もErrTransportなのだ", func(t *testing.T) {
		saver := newTestSaver(t, NewHTTPFetcher(time.Second))
		_, err := saver.Save(ctx, Classified{Kind: KindURL, URL: "http://127.0.0.1:1/unreachable"}, t.TempDir(), "banner", 1)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTransport))
	})
}

func TestSaver_CreatesDestinationDir(t *testing.T) {
	ctx := context.Background()
	saver := newTestSaver(t, NewHTTPFetcher(0))
	dir := filepath.Join(t.TempDir(), "nested", "banners")

	art, err := saver.Save(ctx, Classified{Kind: KindBytes, Data: []byte("\xff\xd8xx")}, dir, "banner", 1)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(art.Path, dir), "保存先がネストしたディレクトリ配下にない")
}
