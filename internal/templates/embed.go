package templates

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.docx
var assets embed.FS

// Bundle バイナリに同梱したテンプレート
func Bundle() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
