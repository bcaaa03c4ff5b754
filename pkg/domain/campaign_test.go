package domain

import (
	"encoding/json"
	"testing"
)

func TestPlanningBrief_JSON(t *testing.T) {
	t.Run("企画書JSONを正しくパースできるのだ", func(t *testing.T) {
		inputJSON := `{
			"festival_name": "한강 불빛 축제",
			"period": "2026-10-01 ~ 2026-10-05",
			"venue": "여의도 한강공원",
			"audience": "families and young couples",
			"keywords": ["night market", "fireworks", " lantern "],
			"tone": "festive"
		}`

		var brief PlanningBrief
		if err := json.Unmarshal([]byte(inputJSON), &brief); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}

		if brief.FestivalName != "한강 불빛 축제" {
			t.Errorf("祭り名が違うのだ: %s", brief.FestivalName)
		}
		if got := brief.KeywordLine(); got != "night market, fireworks, lantern" {
			t.Errorf("キーワード結合が正しくないのだ: %s", got)
		}
	})
}

func TestPromoBundle_PieceFor(t *testing.T) {
	bundle := PromoBundle{
		FestivalName: "test",
		Pieces: []PromoPiece{
			{Channel: ChannelSNS, Title: "sns title"},
			{Channel: ChannelNotice, Title: "notice title"},
		},
	}

	t.Run("登録済みチャネルを引けるのだ", func(t *testing.T) {
		p, ok := bundle.PieceFor(ChannelSNS)
		if !ok || p.Title != "sns title" {
			t.Errorf("SNS記事が取得できないのだ: %+v", p)
		}
	})

	t.Run("未登録チャネルはfalseを返すのだ", func(t *testing.T) {
		if _, ok := bundle.PieceFor(ChannelPressRelease); ok {
			t.Error("存在しないチャネルでtrueが返ったのだ")
		}
	})
}

func TestPromptPair_InSync(t *testing.T) {
	t.Run("ハッシュが一致すれば同期済みなのだ", func(t *testing.T) {
		ko := "가을 축제 포스터"
		pair := PromptPair{Korean: ko, English: "autumn festival poster", SourceHash: HashPrompt(ko)}
		if !pair.InSync() {
			t.Error("同期済みのはずなのだ")
		}
	})

	t.Run("KO側が変わると同期切れを検知するのだ", func(t *testing.T) {
		pair := PromptPair{Korean: "수정된 프롬프트", English: "old translation", SourceHash: HashPrompt("원본 프롬프트")}
		if pair.InSync() {
			t.Error("同期切れを見逃しているのだ")
		}
	})

	t.Run("英訳が空なら常に同期切れなのだ", func(t *testing.T) {
		pair := PromptPair{Korean: "ko", SourceHash: HashPrompt("ko")}
		if pair.InSync() {
			t.Error("英訳が無いのに同期済み判定なのだ")
		}
	})
}
