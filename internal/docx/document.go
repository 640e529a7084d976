// Package docx Word文書（OOXML）の本文を読み書きする最小限の実装
//
// word/document.xml だけを解析し、その他のパーツは元のバイト列のまま書き戻す。
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Document 開いた Word 文書
type Document struct {
	parts []part
	xml   *etree.Document
	body  *etree.Element
}

// Open パスから文書を開く
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read バイト列から文書を読み込む
func Read(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	d := &Document{}
	var main []byte
	for _, f := range zr.File {
		b, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidPackage, f.Name, err)
		}
		d.parts = append(d.parts, part{
			name:     f.Name,
			method:   f.Method,
			modified: f.Modified,
			data:     b,
		})
		if f.Name == documentPart {
			main = b
		}
	}
	if main == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, documentPart)
	}

	x := etree.NewDocument()
	if err := x.ReadFromBytes(main); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidPackage, documentPart, err)
	}
	root := x.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("%w: %s has no w:document root", ErrInvalidPackage, documentPart)
	}
	body := root.SelectElement("w:body")
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no w:body", ErrInvalidPackage, documentPart)
	}

	d.xml = x
	d.body = body
	return d, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Paragraphs 本文直下の段落
func (d *Document) Paragraphs() []Paragraph {
	els := d.body.SelectElements("w:p")
	out := make([]Paragraph, len(els))
	for i, el := range els {
		out[i] = Paragraph{el: el}
	}
	return out
}

// Tables 本文直下の表
func (d *Document) Tables() []Table {
	els := d.body.SelectElements("w:tbl")
	out := make([]Table, len(els))
	for i, el := range els {
		out[i] = Table{el: el}
	}
	return out
}

// Save パッケージを書き出す（パーツの順序は元のまま）
func (d *Document) Save(w io.Writer) error {
	main, err := d.xml.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", documentPart, err)
	}

	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		data := p.data
		if p.name == documentPart {
			data = main
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   p.method,
			Modified: p.modified,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// SaveAs ファイルに保存する。書き出しに失敗した場合はファイルを作らない。
func (d *Document) SaveAs(path string) error {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
