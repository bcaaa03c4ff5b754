package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// PromptBuilder は企画書の情報からバナー用の韓国語マスタープロンプトを構築します。
type PromptBuilder struct {
	defaultSuffix string // "poster style, high quality" 等の共通サフィックス
}

// NewPromptBuilder は新しい PromptBuilder を生成します。
func NewPromptBuilder(suffix string) *PromptBuilder {
	return &PromptBuilder{defaultSuffix: suffix}
}

// BuildKoreanMaster は企画書から韓国語のマスタープロンプトを構築します。
// 祭り名・会期・キーワード・トーンをこの順で合成し、空要素は除去します。
func (pb *PromptBuilder) BuildKoreanMaster(brief domain.PlanningBrief) string {
	var parts []string

	if brief.FestivalName != "" {
		parts = append(parts, fmt.Sprintf("%s 공식 홍보 배너", brief.FestivalName))
	}
	if brief.Period != "" {
		parts = append(parts, fmt.Sprintf("행사 기간: %s", brief.Period))
	}
	if brief.Venue != "" {
		parts = append(parts, fmt.Sprintf("장소: %s", brief.Venue))
	}
	if kw := brief.KeywordLine(); kw != "" {
		parts = append(parts, kw)
	}
	if brief.Tone != "" {
		parts = append(parts, fmt.Sprintf("%s 분위기", brief.Tone))
	}
	if pb.defaultSuffix != "" {
		parts = append(parts, pb.defaultSuffix)
	}

	var cleanParts []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			cleanParts = append(cleanParts, s)
		}
	}
	return strings.Join(cleanParts, ", ")
}

// BuildScenePrompt は追加のシーン指示をマスタープロンプトへ合成します。
func (pb *PromptBuilder) BuildScenePrompt(master, scene string) string {
	scene = strings.TrimSpace(scene)
	if scene == "" {
		return master
	}
	return master + ", " + scene
}
