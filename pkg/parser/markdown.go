package parser

import (
	"fmt"
	"strings"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

const (
	fieldKeyPeriod   = "period"
	fieldKeyVenue    = "venue"
	fieldKeyAudience = "audience"
	fieldKeyKeywords = "keywords"
	fieldKeyTone     = "tone"
)

// ParseMarkdown は Markdown 形式の企画書を解析して PlanningBrief に変換します。
// 期待する形式:
//
//	# 祭り名
//	- period: 2026-10-01 ~ 2026-10-05
//	- venue: 여의도 한강공원
//	- keywords: fireworks, lantern
//	## 概要
//	自由記述のサマリー...
//
// 未知のフィールド行は読み飛ばし、セクション以降の本文はサマリーに集約します。
func ParseMarkdown(input string) (*domain.PlanningBrief, error) {
	brief := &domain.PlanningBrief{}
	var summary []string
	inSummary := false

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := TitleRegex.FindStringSubmatch(trimmed); m != nil && !SectionRegex.MatchString(trimmed) {
			brief.FestivalName = strings.TrimSpace(m[1])
			continue
		}

		if SectionRegex.MatchString(trimmed) {
			inSummary = true
			continue
		}

		if inSummary {
			summary = append(summary, trimmed)
			continue
		}

		m := FieldRegex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		key, value := strings.ToLower(m[1]), strings.TrimSpace(m[2])
		switch key {
		case fieldKeyPeriod:
			brief.Period = value
		case fieldKeyVenue:
			brief.Venue = value
		case fieldKeyAudience:
			brief.Audience = value
		case fieldKeyTone:
			brief.Tone = value
		case fieldKeyKeywords:
			for _, kw := range strings.Split(value, ",") {
				if s := strings.TrimSpace(kw); s != "" {
					brief.Keywords = append(brief.Keywords, s)
				}
			}
		}
	}

	if brief.FestivalName == "" {
		return nil, fmt.Errorf("企画書にタイトル行（# 祭り名）が見つかりません")
	}

	brief.Summary = strings.Join(summary, "\n")
	return brief, nil
}
