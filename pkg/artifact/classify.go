package artifact

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind は分類結果の種別です。
type Kind int

const (
	// KindUnrecognized は既知のどの形状にも一致しなかったアイテムです。エラーではなくスキップ対象です。
	KindUnrecognized Kind = iota
	// KindURL はリモート取得可能な HTTP(S) URL です。
	KindURL
	// KindBytes は生のバイト列（または埋め込みデータから復元したバイト列）です。
	KindBytes
)

// Classified は生成APIの応答アイテム1件をタグ付きの正準形に落とした結果です。
// 判定の優先順位は Classify のドキュメントを参照してください。
type Classified struct {
	Kind Kind
	URL  string
	Data []byte
}

const dataURIPrefix = "data:image/"

// Classify は形状不明の応答アイテムを URL / バイト列 / 不明 のいずれかに分類します。
// 生成APIの応答形状はプロバイダごとに（同じプロバイダでも呼び出しごとに）揺れるため、
// 以下の固定優先順位でチェックし、最初に一致したものを採用します。
//
//  1. 生バイト列はそのまま採用
//  2. リーダー（ストリーム）は読み切り、data-URI テキストなら base64 復号、それ以外はバイト列
//  3. マップは url/image/href キーの HTTP(S) 文字列、次いで bytes/data キーのペイロード
//  4. 文字列は HTTP(S) URL、data-URI、バイトリテラル表記の順で解釈
//  5. それ以外は文字列化して HTTP(S) 接頭辞のみ確認
//
// どのチェックにも一致しない場合は KindUnrecognized を返します。呼び出し側は
// スキップ扱いにします（応答には有効なアイテムと無効なアイテムが混在し得ます）。
func Classify(item any) Classified {
	switch v := item.(type) {
	case nil:
		return Classified{Kind: KindUnrecognized}
	case []byte:
		return Classified{Kind: KindBytes, Data: v}
	case io.Reader:
		return classifyReader(v)
	case map[string]any:
		return classifyMap(v)
	case map[string]string:
		generic := make(map[string]any, len(v))
		for k, s := range v {
			generic[k] = s
		}
		return classifyMap(generic)
	case string:
		return classifyString(v)
	}

	// 最後の手段: 文字列表現に URL が埋まっているケースだけ拾うのだ
	if s := fmt.Sprint(item); isHTTPURL(s) {
		return Classified{Kind: KindURL, URL: s}
	}
	return Classified{Kind: KindUnrecognized}
}

func classifyReader(r io.Reader) Classified {
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return Classified{Kind: KindUnrecognized}
	}
	if text := string(data); strings.HasPrefix(text, dataURIPrefix) {
		if decoded, ok := decodeDataURI(text); ok {
			return Classified{Kind: KindBytes, Data: decoded}
		}
		return Classified{Kind: KindUnrecognized}
	}
	return Classified{Kind: KindBytes, Data: data}
}

func classifyMap(m map[string]any) Classified {
	for _, key := range []string{"url", "image", "href"} {
		if s, ok := m[key].(string); ok && isHTTPURL(s) {
			return Classified{Kind: KindURL, URL: s}
		}
	}
	for _, key := range []string{"bytes", "data", "b64_json"} {
		switch payload := m[key].(type) {
		case []byte:
			return Classified{Kind: KindBytes, Data: payload}
		case string:
			if decoded, ok := decodeDataURI(payload); ok {
				return Classified{Kind: KindBytes, Data: decoded}
			}
			// b64_json 形式（OpenAI互換API）は接頭辞なしの base64 文字列なのだ
			if decoded, err := base64.StdEncoding.DecodeString(payload); err == nil && len(decoded) > 0 {
				return Classified{Kind: KindBytes, Data: decoded}
			}
		}
	}
	return Classified{Kind: KindUnrecognized}
}

func classifyString(s string) Classified {
	if isHTTPURL(s) {
		return Classified{Kind: KindURL, URL: s}
	}
	if strings.HasPrefix(s, dataURIPrefix) {
		if decoded, ok := decodeDataURI(s); ok {
			return Classified{Kind: KindBytes, Data: decoded}
		}
		return Classified{Kind: KindUnrecognized}
	}
	if decoded, ok := decodeByteLiteral(s); ok {
		return Classified{Kind: KindBytes, Data: decoded}
	}
	return Classified{Kind: KindUnrecognized}
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// decodeDataURI は data:image/<type>;base64,<payload> 形式の文字列を復号します。
func decodeDataURI(s string) ([]byte, bool) {
	if !strings.HasPrefix(s, dataURIPrefix) {
		return nil, false
	}
	_, payload, found := strings.Cut(s, ";base64,")
	if !found {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil || len(decoded) == 0 {
		return nil, false
	}
	return decoded, true
}

// decodeByteLiteral は b'\x89PNG...' のような印字済みバイトリテラル表記を
// ベストエフォートでバイト列へ戻します。スクリプト連携時に画像バイト列が
// 文字列化されて渡ってくる事故への救済措置です。
func decodeByteLiteral(s string) ([]byte, bool) {
	if len(s) < 3 || (s[0] != 'b' && s[0] != 'B') {
		return nil, false
	}
	quote := s[1]
	if (quote != '\'' && quote != '"') || s[len(s)-1] != quote {
		return nil, false
	}
	body := s[2 : len(s)-1]

	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, false
		}
		switch body[i+1] {
		case 'x':
			if i+4 > len(body) {
				return nil, false
			}
			n, err := strconv.ParseUint(body[i+2:i+4], 16, 8)
			if err != nil {
				return nil, false
			}
			out = append(out, byte(n))
			i += 4
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case '0':
			out = append(out, 0)
			i += 2
		case '\\', '\'', '"':
			out = append(out, body[i+1])
			i += 2
		default:
			return nil, false
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
