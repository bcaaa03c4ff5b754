package banner

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// InitializeGeminiGenerator は gemini-image-kit の画像コアを組み立てて
// Gemini バックエンドのバナー生成器を返します。
// 参照画像は go-cache で一定時間キャッシュし、再アップロードを避けます。
func InitializeGeminiGenerator(
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	model string,
	referenceURL string,
) (*GeminiGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	core, err := imagegen.NewGeminiImageCore(aiClient, reader, httpClient, imgCache, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagegen.NewGeminiGenerator(model, core)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return NewGeminiGenerator(imgGen, referenceURL)
}
