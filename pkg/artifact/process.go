package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/shouni/go-festival-kit/pkg/domain"
)

// ネスト列の展開は事故防止のため一定の深さで打ち切ります。
const maxFlattenDepth = 4

// ResultEnvelope は1回の生成呼び出しで作られた全アーティファクトの要約です。
// 構築後に変更されることはありません。
type ResultEnvelope struct {
	Success bool `json:"success"`

	// Request はトレーサビリティのために入力リクエストをそのまま返します。
	Request domain.GenerationRequest `json:"request"`

	// Locations は分類中に見つかったリモート URL のリストです。
	// リモート URL が1件も無かった場合（バイト列のみの応答など）は、
	// 代替としてローカル保存パスをスラッシュ区切りで格納します。
	Locations []string `json:"locations"`

	// FilePath / FileName は単一結果を期待する呼び出し側向けの
	// 最初のアーティファクトへのショートカットです。
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`

	Artifacts []SavedArtifact `json:"artifacts"`

	// Skipped は分類できずに読み飛ばしたアイテム数です。診断用に公開します。
	Skipped int `json:"skipped"`
}

// Processor は応答の正規化・保存・封筒詰めを一括で行います。
type Processor struct {
	saver *Saver
}

// NewProcessor は Saver を注入して Processor を生成します。
func NewProcessor(saver *Saver) (*Processor, error) {
	if saver == nil {
		return nil, fmt.Errorf("saver is required")
	}
	return &Processor{saver: saver}, nil
}

// Process は生成APIの生応答を正規化し、分類・保存して ResultEnvelope を返します。
//
// 単一アイテムは1要素の列として扱います。アイテムは元の順序で処理し、
// 1始まりの連番を（スキップしたものも含め）割り当てます。分類に失敗した
// アイテムは黙って読み飛ばし（件数だけ記録）、保存に失敗した場合は呼び出し
// 全体を即座に失敗させます。保存済みのファイルはロールバックせず残します。
func (p *Processor) Process(ctx context.Context, raw any, destinationDir, prefix string, req domain.GenerationRequest) (*ResultEnvelope, error) {
	items := flatten(raw, 0)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: 応答が空でした", ErrEmptyResult)
	}

	env := &ResultEnvelope{Request: req}
	var remoteURLs []string

	for i, item := range items {
		seq := i + 1
		classified := Classify(item)
		if classified.Kind == KindUnrecognized {
			slog.Warn("分類できないアイテムを読み飛ばします", "seq", seq, "type", fmt.Sprintf("%T", item))
			env.Skipped++
			continue
		}

		art, err := p.saver.Save(ctx, classified, destinationDir, prefix, seq)
		if err != nil {
			// 保存失敗は呼び出し全体のエラー。スキップ対象とは区別するのだ。
			return nil, fmt.Errorf("アイテム %d の保存に失敗しました: %w", seq, err)
		}

		env.Artifacts = append(env.Artifacts, art)
		if classified.Kind == KindURL {
			remoteURLs = append(remoteURLs, classified.URL)
		}
	}

	if len(env.Artifacts) == 0 {
		return nil, fmt.Errorf("%w: 応答に使用可能なアイテムがありませんでした (skipped=%d)", ErrEmptyResult, env.Skipped)
	}

	if len(remoteURLs) > 0 {
		env.Locations = remoteURLs
	} else {
		// 下流の「画像の場所リスト」を期待する消費者向けにローカルパスで代替するのだ
		for _, art := range env.Artifacts {
			env.Locations = append(env.Locations, filepath.ToSlash(art.Path))
		}
	}

	env.Success = true
	env.FilePath = env.Artifacts[0].Path
	env.FileName = env.Artifacts[0].Name
	return env, nil
}

// flatten は生応答を処理対象アイテムの平坦な列に正規化します。
// 裸の単一アイテムは1要素の列に包み、ネストした列は元の順序を保って展開します。
func flatten(raw any, depth int) []any {
	if raw == nil {
		return nil
	}
	if depth >= maxFlattenDepth {
		return []any{raw}
	}

	switch v := raw.(type) {
	case []any:
		var out []any
		for _, item := range v {
			out = append(out, flatten(item, depth+1)...)
		}
		return out
	case []string:
		out := make([]any, 0, len(v))
		for _, s := range v {
			out = append(out, s)
		}
		return out
	case [][]byte:
		out := make([]any, 0, len(v))
		for _, b := range v {
			out = append(out, b)
		}
		return out
	}
	return []any{raw}
}
