// Package markdown converts markdown input to plain text so the translation
// engine sees prose instead of markup.
package markdown

import (
	"bytes"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders markdown to HTML.
func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags,
	}
	renderer := html.NewRenderer(opts)
	ext := parser.CommonExtensions
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// ToPlainText renders markdown and strips the resulting tags, leaving only
// translatable prose. Paragraph breaks survive as the blank lines the HTML
// renderer emits between block elements.
func ToPlainText(md []byte) string {
	return StripHTMLTags(ToHTML(md))
}

// StripHTMLTags removes everything between < and > from htmlContent.
func StripHTMLTags(htmlContent string) string {
	var result bytes.Buffer
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
