package prompt

import "errors"

// ErrInputClosed 必須項目の入力中に標準入力が閉じられた
var ErrInputClosed = errors.New("input closed before required fields were entered")
