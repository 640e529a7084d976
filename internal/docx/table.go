package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Table 表（w:tbl）
type Table struct {
	el *etree.Element
}

// Rows 行の一覧
func (t Table) Rows() []Row {
	els := t.el.SelectElements("w:tr")
	out := make([]Row, len(els))
	for i, el := range els {
		out[i] = Row{el: el}
	}
	return out
}

// Row 表の行（w:tr）
type Row struct {
	el *etree.Element
}

// Cells 行のセル
func (r Row) Cells() []Cell {
	els := r.el.SelectElements("w:tc")
	out := make([]Cell, len(els))
	for i, el := range els {
		out[i] = Cell{el: el}
	}
	return out
}

// Cell 表のセル（w:tc）
type Cell struct {
	el *etree.Element
}

// Paragraphs セル内の段落
func (c Cell) Paragraphs() []Paragraph {
	els := c.el.SelectElements("w:p")
	out := make([]Paragraph, len(els))
	for i, el := range els {
		out[i] = Paragraph{el: el}
	}
	return out
}

// Text セルの文字列（段落は改行で連結）
func (c Cell) Text() string {
	paras := c.Paragraphs()
	lines := make([]string, len(paras))
	for i, p := range paras {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// SetText セルの内容を1段落1ランの文字列に置き換える
//
// w:tcPr と、先頭段落の w:pPr・先頭ランの w:rPr は引き継ぐ。
func (c Cell) SetText(s string) {
	var pPr, rPr *etree.Element
	if p := c.el.SelectElement("w:p"); p != nil {
		if e := p.SelectElement("w:pPr"); e != nil {
			pPr = e.Copy()
		}
		if r := p.SelectElement("w:r"); r != nil {
			if e := r.SelectElement("w:rPr"); e != nil {
				rPr = e.Copy()
			}
		}
	}

	for _, ch := range c.el.ChildElements() {
		if ch.Tag != "tcPr" {
			c.el.RemoveChild(ch)
		}
	}

	p := c.el.CreateElement("w:p")
	if pPr != nil {
		p.AddChild(pPr)
	}
	r := p.CreateElement("w:r")
	if rPr != nil {
		r.AddChild(rPr)
	}
	appendText(r, s)
}
