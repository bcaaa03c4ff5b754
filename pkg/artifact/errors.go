package artifact

import "errors"

// 呼び出し側が「サービスに届かなかった」のか「届いたが使える結果が無かった」のかを
// 区別できるように、エラー種別を番兵エラーとして公開します。
var (
	// ErrTransport は URL 分類されたアイテムの取得に失敗した場合のエラーです。
	// 非2xxステータス、タイムアウト、接続失敗が該当し、リトライは行いません。
	ErrTransport = errors.New("取得に失敗しました")

	// ErrEmptyResult は応答から1件もアーティファクトを保存できなかった場合のエラーです。
	ErrEmptyResult = errors.New("保存可能なアーティファクトがありません")
)
