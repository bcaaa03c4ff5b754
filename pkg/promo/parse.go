package promo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// ParseBundle は、AIが返したテキストからMarkdownのコードブロック等を除去して
// JSONとしてパースし、PromoBundle を返すのだ。
func ParseBundle(raw string) (domain.PromoBundle, error) {
	rawJSON := strings.TrimSpace(raw)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimSuffix(rawJSON, "```")
	rawJSON = strings.TrimSpace(rawJSON)

	var bundle domain.PromoBundle
	if err := json.Unmarshal([]byte(rawJSON), &bundle); err != nil {
		return domain.PromoBundle{}, fmt.Errorf("販促テキストJSONのパースに失敗したのだ: %w", err)
	}

	if len(bundle.Pieces) == 0 {
		return domain.PromoBundle{}, fmt.Errorf("販促テキストが1件も含まれていないのだ")
	}
	return bundle, nil
}
