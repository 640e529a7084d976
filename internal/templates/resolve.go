// Package templates 活動報告テンプレートの場所を決めて読み込む
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"clubreport/internal/docx"
)

// Mode テンプレートの探し方
type Mode string

const (
	// ModeSource 作業ディレクトリから探す
	ModeSource Mode = "source"
	// ModeBundled 同梱テンプレートを優先し、なければ作業ディレクトリから探す
	ModeBundled Mode = "bundled"
)

// DefaultSuffix テンプレートのファイル名末尾
const DefaultSuffix = "活動報告.docx"

// ParseMode 設定値から Mode を得る
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSource:
		return ModeSource, nil
	case ModeBundled:
		return ModeBundled, nil
	default:
		return "", fmt.Errorf("unknown template mode %q", s)
	}
}

// Resolver テンプレート探索の設定
type Resolver struct {
	// Path 明示されたテンプレートのパス（最優先）
	Path   string
	Suffix string
	Dir    string
	Mode   Mode
	// Bundle 同梱テンプレート。nil なら Bundle() を使う
	Bundle fs.FS
	Logger *zap.Logger
}

// Source 見つかったテンプレート
type Source struct {
	Name    string
	Path    string
	Bundled bool
	bundle  fs.FS
}

// Resolve テンプレートを探す
func (r Resolver) Resolve() (Source, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if p := strings.TrimSpace(r.Path); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return Source{}, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, p, err)
		}
		if info.IsDir() {
			return Source{}, fmt.Errorf("%w: %s is a directory", ErrTemplateNotFound, p)
		}
		return Source{Name: filepath.Base(p), Path: p}, nil
	}

	if r.Mode == ModeBundled {
		bundle := r.Bundle
		if bundle == nil {
			bundle = Bundle()
		}
		if name, ok := firstBundled(bundle); ok {
			return Source{Name: name, Path: name, Bundled: true, bundle: bundle}, nil
		}
		logger.Warn("bundled template missing, scanning working directory")
	}

	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	suffix := r.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	name, err := scanDir(dir, suffix)
	if err != nil {
		return Source{}, err
	}
	logger.Debug("template found", zap.String("dir", dir), zap.String("name", name))
	return Source{Name: name, Path: filepath.Join(dir, name)}, nil
}

func firstBundled(bundle fs.FS) (string, bool) {
	matches, err := fs.Glob(bundle, "*.docx")
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// scanDir ファイル名の末尾が suffix に一致する最初のファイル（名前順）
func scanDir(dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: read dir %s: %v", ErrTemplateNotFound, dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isOwnerFile(name) {
			continue
		}
		if strings.HasSuffix(name, suffix) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no *%s in %s", ErrTemplateNotFound, suffix, dir)
}

// isOwnerFile Word / LibreOffice が編集中に作るロックファイル
func isOwnerFile(name string) bool {
	return strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".~lock.")
}

// Open テンプレートを読み込んで文書として開く
func (s Source) Open() (*docx.Document, error) {
	var (
		data []byte
		err  error
	)
	if s.Bundled {
		data, err = fs.ReadFile(s.bundle, s.Path)
	} else {
		data, err = os.ReadFile(s.Path)
	}
	if err != nil {
		switch {
		case isLocked(err):
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLocked, s.Name, err)
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, s.Name, err)
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateRead, s.Name, err)
		}
	}

	doc, err := docx.Read(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateRead, s.Name, err)
	}
	return doc, nil
}
