// Package publisher 書き換えた文書を保存し、既定のアプリケーションで開く
package publisher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"clubreport/internal/model"
)

// Saver パスへ保存できる文書
type Saver interface {
	SaveAs(path string) error
}

// Filename 出力ファイル名（例: 2025年3月活動報告（八王子）.docx）
func Filename(p model.Period, loc model.Location) string {
	return fmt.Sprintf("%d年%d月活動報告%s.docx", p.Year, p.Month, loc.Label())
}

// Publisher 保存と表示
type Publisher struct {
	dir    string
	opener Opener
	out    io.Writer
	logger *zap.Logger
}

// New Publisher を作成する。opener が nil の場合は保存のみ行う。
func New(dir string, opener Opener, out io.Writer, logger *zap.Logger) *Publisher {
	if dir == "" {
		dir = "."
	}
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{dir: dir, opener: opener, out: out, logger: logger}
}

// Save 出力ディレクトリに保存し、絶対パスを返す
func (p *Publisher) Save(doc Saver, name string) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	abs, err := filepath.Abs(filepath.Join(p.dir, name))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := doc.SaveAs(abs); err != nil {
		return "", fmt.Errorf("save %s: %w", abs, err)
	}

	p.logger.Info("report saved", zap.String("path", abs))
	fmt.Fprintf(p.out, "\n活動報告書が更新されました: %s\n", abs)
	return abs, nil
}

// Open 保存済みのファイルを開く。失敗しても保存結果には影響しない。
func (p *Publisher) Open(path string) bool {
	if p.opener == nil {
		return false
	}

	fmt.Fprintf(p.out, "ファイルを開こうとしています: %s\n", path)
	if err := p.opener.Open(path); err != nil {
		p.logger.Warn("open failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintln(p.out, "自動的にファイルを開くことができませんでした。")
		fmt.Fprintf(p.out, "生成されたファイル '%s' を手動で開いてください。\n", path)
		return false
	}
	return true
}
