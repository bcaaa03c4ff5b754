package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"
)

const (
	ModePromo = "promo"
	ModePlan  = "plan"
)

//go:embed promo.md
var PromoPrompt string

//go:embed plan.md
var PlanPrompt string

// modeTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var modeTemplates = map[string]string{
	ModePromo: PromoPrompt,
	ModePlan:  PlanPrompt,
}

// TemplateData はテンプレートへ埋め込む値なのだ。
type TemplateData struct {
	InputText string
}

// GetPromptByMode は、指定されたモードに対応するプロンプト文字列を返すのだ。
func GetPromptByMode(mode string) (string, error) {
	content, ok := modeTemplates[mode]
	if !ok {
		supported := slices.Collect(maps.Keys(modeTemplates))
		slices.Sort(supported)

		return "", fmt.Errorf("サポートされていないモード: '%s'。サポートされているモードは [%s] です",
			mode, strings.Join(supported, ", "))
	}

	if content == "" {
		return "", fmt.Errorf("モード '%s' に対応するプロンプトテンプレートが空なのだ。embed設定を確認してほしいのだ", mode)
	}

	return content, nil
}

// BuildPrompt は、指定モードのテンプレートに入力テキストを埋め込んで最終プロンプトを組み立てるのだ。
func BuildPrompt(mode string, data TemplateData) (string, error) {
	content, err := GetPromptByMode(mode)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(mode).Parse(content)
	if err != nil {
		return "", fmt.Errorf("テンプレートのパースに失敗したのだ: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("テンプレートの展開に失敗したのだ: %w", err)
	}
	return buf.String(), nil
}
