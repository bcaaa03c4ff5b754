package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// PlanningBrief は企画書から抽出した祭りキャンペーンの基本情報です。
// プロンプト構築と販促文の組み立ての両方がこの構造体を入力にします。
type PlanningBrief struct {
	FestivalName string   `json:"festival_name"`
	Period       string   `json:"period"`
	Venue        string   `json:"venue"`
	Audience     string   `json:"audience"`
	Keywords     []string `json:"keywords"`
	Tone         string   `json:"tone"`
	Summary      string   `json:"summary"`
}

// KeywordLine はプロンプトや販促文に埋め込むためのキーワード結合文字列を返します。
func (b PlanningBrief) KeywordLine() string {
	cleaned := make([]string, 0, len(b.Keywords))
	for _, k := range b.Keywords {
		if s := strings.TrimSpace(k); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return strings.Join(cleaned, ", ")
}

// Channel は販促テキストの配信チャネルを表します。
type Channel string

const (
	ChannelPressRelease Channel = "press_release"
	ChannelSNS          Channel = "sns"
	ChannelNotice       Channel = "notice"
)

// Channels は全チャネルを配信順に列挙します。
var Channels = []Channel{ChannelPressRelease, ChannelSNS, ChannelNotice}

// PromoPiece は1チャネル分の販促テキストです。
type PromoPiece struct {
	Channel  Channel  `json:"channel"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// PromoBundle は AI モデルから返される販促テキスト一式の構造です。
type PromoBundle struct {
	FestivalName string       `json:"festival_name"`
	Pieces       []PromoPiece `json:"pieces"`
}

// PieceFor は指定チャネルの販促テキストを返します。見つからない場合は false を返すのだ。
func (pb PromoBundle) PieceFor(ch Channel) (PromoPiece, bool) {
	for _, p := range pb.Pieces {
		if p.Channel == ch {
			return p, true
		}
	}
	return PromoPiece{}, false
}

// PosterScore は LLM によるポスター品質採点の結果です。
type PosterScore struct {
	Composition int    `json:"composition"`
	Legibility  int    `json:"legibility"`
	Mood        int    `json:"mood"`
	Total       int    `json:"total"`
	Comment     string `json:"comment"`
}

// PromptPair は韓国語マスタープロンプトとその英訳のペアです。
// SourceHash は KO 側のハッシュで、翻訳が古くなっていないかの判定に使います。
type PromptPair struct {
	Korean     string `json:"korean"`
	English    string `json:"english"`
	SourceHash string `json:"source_hash"`
}

// HashPrompt はプロンプト同期判定用のハッシュ値を生成します。
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(prompt)))
	return hex.EncodeToString(sum[:])[:16]
}

// InSync は英訳が現在の KO プロンプトに追従しているかを判定するのだ。
func (p PromptPair) InSync() bool {
	return p.English != "" && p.SourceHash == HashPrompt(p.Korean)
}
