package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// Parser は企画書を解析するためのインターフェースを定義します。
type Parser interface {
	ParseFromPath(ctx context.Context, fullPath string) (*domain.PlanningBrief, error)
}

// BriefParser は JSON または Markdown 形式の企画書を解析する構造体です。
type BriefParser struct {
	reader remoteio.InputReader
}

// NewBriefParser は新しい BriefParser インスタンスを生成します。
func NewBriefParser(r remoteio.InputReader) *BriefParser {
	return &BriefParser{reader: r}
}

// ParseFromPath は指定された GCS URIやローカルファイルパスなどから企画書を読み込み、
// 拡張子に応じて JSON / Markdown として解析して domain.PlanningBrief を返します。
func (p *BriefParser) ParseFromPath(ctx context.Context, briefFile string) (*domain.PlanningBrief, error) {
	slog.InfoContext(ctx, "企画書を読み込んでいます", "path", briefFile)
	rc, err := p.reader.Open(ctx, briefFile)
	if err != nil {
		return nil, fmt.Errorf("企画書のオープンに失敗しました (%s): %w", briefFile, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("企画書の読み取りに失敗しました: %w", err)
	}

	if strings.EqualFold(filepath.Ext(briefFile), ".json") {
		brief := &domain.PlanningBrief{}
		if err := json.Unmarshal(data, brief); err != nil {
			return nil, fmt.Errorf("企画書JSONのパースに失敗しました: %w", err)
		}
		return brief, nil
	}

	return ParseMarkdown(string(data))
}
