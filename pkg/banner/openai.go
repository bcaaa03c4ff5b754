package banner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// openAIRequest は OpenAI 互換の画像生成エンドポイントに送るリクエストボディです。
type openAIRequest struct {
	Model            string `json:"model"`
	Prompt           string `json:"prompt"`
	N                int    `json:"n"`
	Size             string `json:"size"`
	ResponseFormat   string `json:"response_format,omitempty"`
	PromptUpsampling bool   `json:"prompt_upsampling,omitempty"`
	Seed             *int64 `json:"seed,omitempty"`
}

// OpenAICompatGenerator は OpenAI 互換 API（DALL-E 系、FLUX 系プロキシなど）向けの生成器です。
// 応答の data 配列を解釈せずにそのまま返し、URL / b64_json / data-URI の揺れは
// pkg/artifact の分類に任せます。
type OpenAICompatGenerator struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewOpenAICompatGenerator は接続情報を指定して OpenAICompatGenerator を生成します。
func NewOpenAICompatGenerator(endpoint, apiKey, model string, timeout time.Duration) (*OpenAICompatGenerator, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAICompatGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Generate は画像生成エンドポイントを呼び出し、応答の data 配列を生のまま返します。
func (g *OpenAICompatGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (any, error) {
	body := openAIRequest{
		Model:            g.model,
		Prompt:           req.Prompt,
		N:                1,
		Size:             fmt.Sprintf("%dx%d", req.Width, req.Height),
		PromptUpsampling: req.PromptExpand,
		Seed:             req.Seed,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("リクエスト構築に失敗しました: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("画像生成APIへの接続に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("画像生成APIがエラーを返しました: ステータス %d", resp.StatusCode)
	}

	// 形状はプロバイダごとに揺れるため、構造体ではなく any でデコードするのだ
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("応答のデコードに失敗しました: %w", err)
	}

	if data, ok := decoded["data"]; ok {
		return data, nil
	}
	// data キーが無いプロバイダは応答全体を1アイテムとして流すのだ
	return decoded, nil
}
