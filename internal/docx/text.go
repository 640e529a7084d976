package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph 段落（w:p）
type Paragraph struct {
	el *etree.Element
}

// Runs 段落直下のラン
func (p Paragraph) Runs() []Run {
	els := p.el.SelectElements("w:r")
	out := make([]Run, len(els))
	for i, el := range els {
		out[i] = Run{el: el}
	}
	return out
}

// Text 段落の文字列（ハイパーリンク内のランを含む）
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.el.ChildElements() {
		switch c.Tag {
		case "r":
			sb.WriteString(runText(c))
		case "hyperlink":
			for _, r := range c.SelectElements("w:r") {
				sb.WriteString(runText(r))
			}
		}
	}
	return sb.String()
}

// Run 書式を共有する文字列の単位（w:r）
type Run struct {
	el *etree.Element
}

// Text ランの文字列。w:tab はタブ、w:br と w:cr は改行になる。
func (r Run) Text() string {
	return runText(r.el)
}

// SetText 書式（w:rPr）を残して文字列を置き換える
func (r Run) SetText(s string) {
	for _, c := range r.el.ChildElements() {
		if c.Tag != "rPr" {
			r.el.RemoveChild(c)
		}
	}
	appendText(r.el, s)
}

func runText(el *etree.Element) string {
	var sb strings.Builder
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func appendText(run *etree.Element, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			run.CreateElement("w:br")
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				run.CreateElement("w:tab")
			}
			if chunk == "" {
				continue
			}
			t := run.CreateElement("w:t")
			t.CreateAttr("xml:space", "preserve")
			t.SetText(chunk)
		}
	}
}
