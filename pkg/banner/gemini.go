package banner

import (
	"context"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagegen "github.com/shouni/gemini-image-kit/pkg/generator"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// バナーに文字化けしたテキストや透かしが混入するのを抑止する共通ネガティブ指示です。
const defaultNegativePrompt = "garbled text, misspelled words, watermark, signature, low quality, distorted, extra limbs"

// GeminiGenerator は gemini-image-kit を土台にした Gemini バックエンドのバナー生成器です。
// kit 側のパネル生成APIは「1プロンプト→1枚のスタイル付き画像」なので、
// バナー生成にもそのまま流用しています。
type GeminiGenerator struct {
	imgGen       imagegen.ImageGenerator
	referenceURL string
}

// NewGeminiGenerator は画像生成コアを注入して GeminiGenerator を生成します。
// referenceURL は画風あわせ用の参照画像で、空でも構いません。
func NewGeminiGenerator(imgGen imagegen.ImageGenerator, referenceURL string) (*GeminiGenerator, error) {
	if imgGen == nil {
		return nil, fmt.Errorf("imgGen is required")
	}
	return &GeminiGenerator{imgGen: imgGen, referenceURL: referenceURL}, nil
}

// Generate はバナー1件を生成し、得られた画像バイト列を生アイテムとして返します。
// Gemini はバイト列を直接返すため、封筒の Locations はローカルパスで埋まります。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (any, error) {
	resp, err := g.imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: defaultNegativePrompt,
		AspectRatio:    req.AspectRatio(),
		ReferenceURL:   g.referenceURL,
		Seed:           req.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiバナー生成エラー: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("Geminiから画像データが返りませんでした")
	}
	return resp.Data, nil
}
