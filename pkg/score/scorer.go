package score

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// 採点ルーブリックはJSONのみを返すよう強制します。尺度は各項目0〜10です。
const rubricInstruction = `You are a festival-poster quality reviewer.
Score the attached poster image on a 0-10 scale for each criterion and
return ONLY a JSON object of the form:
{"composition": n, "legibility": n, "mood": n, "comment": "short remark"}
- composition: visual balance and focal hierarchy
- legibility: readability of title, dates and venue text
- mood: how well the atmosphere matches a festival promotion`

// Scorer は保存済みポスター画像の品質を LLM で採点します。
type Scorer struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewScorer は依存関係を注入して Scorer を生成します。
func NewScorer(aiClient gemini.GenerativeModel, model string) (*Scorer, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &Scorer{aiClient: aiClient, model: model}, nil
}

// Score はポスター画像のバイト列を採点し、ルーブリック結果を返します。
func (s *Scorer) Score(ctx context.Context, imageData []byte) (domain.PosterScore, error) {
	part := toImagePart(imageData)
	if part == nil {
		return domain.PosterScore{}, fmt.Errorf("画像として認識できないデータです")
	}

	parts := []*genai.Part{
		{Text: rubricInstruction},
		part,
	}

	resp, err := s.aiClient.GenerateWithParts(ctx, s.model, parts, gemini.GenerateOptions{})
	if err != nil {
		return domain.PosterScore{}, fmt.Errorf("採点リクエストに失敗しました: %w", err)
	}

	return parseScore(resp.Text)
}

// toImagePart はバイト列を genai.Part (InlineData) に変換します。
// MIMEタイプが画像でない場合は nil を返します。
func toImagePart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseScore は AI 応答からコードフェンスを除去して PosterScore をパースします。
// Total が応答に無い場合は各項目の合計で補完するのだ。
func parseScore(raw string) (domain.PosterScore, error) {
	rawJSON := strings.TrimSpace(raw)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimSuffix(rawJSON, "```")
	rawJSON = strings.TrimSpace(rawJSON)

	var result domain.PosterScore
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		return domain.PosterScore{}, fmt.Errorf("採点結果のパースに失敗しました: %w", err)
	}

	if result.Total == 0 {
		result.Total = result.Composition + result.Legibility + result.Mood
	}
	return result, nil
}
