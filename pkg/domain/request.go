package domain

import (
	"fmt"
	"strings"
)

// 生成リクエストが受け付ける画素数の範囲です。
// 範囲外の値は拒否せず、この範囲に丸め込みます。
const (
	MinDimension = 512
	MaxDimension = 3024
)

// アスペクト比モードの定義なのだ。
const (
	AspectModeCustom   = "custom"
	AspectModeSquare   = "square"
	AspectModeWide     = "wide"
	AspectModePortrait = "portrait"
)

// GenerationRequest は1回のバナー生成呼び出しのパラメータを保持します。
// 生成ステップへ渡した後は変更しない前提です。
type GenerationRequest struct {
	Prompt       string `json:"prompt"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AspectMode   string `json:"aspect_mode"`
	Resolution   string `json:"resolution"`
	PromptExpand bool   `json:"prompt_expand"` // リモートサービス側のプロンプト前処理を有効にするか
	Seed         *int64 `json:"seed,omitempty"`
}

// Validate は外部呼び出しの前に行う同期チェックです。
// プロンプトが空の場合のみエラーになります。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("プロンプトが空です: 生成リクエストには必須なのだ")
	}
	return nil
}

// Normalized はアスペクトモードのデフォルト適用と画素数のクランプを行った
// コピーを返します。元のリクエストは変更しません。
func (r GenerationRequest) Normalized() GenerationRequest {
	out := r
	if out.AspectMode == "" {
		out.AspectMode = AspectModeCustom
	}
	out.Width = clampDimension(out.Width)
	out.Height = clampDimension(out.Height)
	return out
}

func clampDimension(v int) int {
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

// AspectRatio は幅と高さから Gemini SDK に渡すアスペクト比文字列を決めます。
func (r GenerationRequest) AspectRatio() string {
	switch r.AspectMode {
	case AspectModeSquare:
		return "1:1"
	case AspectModeWide:
		return "16:9"
	case AspectModePortrait:
		return "9:16"
	}
	if r.Width > 0 && r.Height > 0 {
		if r.Width == r.Height {
			return "1:1"
		}
		if r.Width > r.Height {
			return "16:9"
		}
		return "9:16"
	}
	return "1:1"
}
