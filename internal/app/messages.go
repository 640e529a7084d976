package app

import (
	"errors"
	"fmt"

	"clubreport/internal/prompt"
	"clubreport/internal/templates"
)

// Describe 利用者向けのエラーメッセージ
func Describe(err error) string {
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		return "テンプレートファイルが見つかりませんでした。"
	case errors.Is(err, templates.ErrTemplateLocked):
		return fmt.Sprintf("エラー: テンプレートは現在開かれています。\nファイルを閉じてから再実行してください。\n(%v)", err)
	case errors.Is(err, templates.ErrTemplateRead):
		return fmt.Sprintf("ファイルを開く際にエラーが発生しました: %v", err)
	case errors.Is(err, prompt.ErrInputClosed):
		return "入力が終了したため中止しました。"
	default:
		return fmt.Sprintf("エラーが発生しました: %v", err)
	}
}
