package item

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// ToMarkdown converts an HTML body from the API (comments, story texts,
// user "about") into markdown for the terminal renderer. Conversion failures
// fall back to the plain text.
func ToMarkdown(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return PlainText(body)
	}
	return strings.TrimSpace(md)
}

// PlainText keeps the text of an HTML body with entities decoded. Paragraphs
// become blank lines and <br> a line break.
func PlainText(body string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p":
				b.WriteString("\n\n")
			case "br":
				b.WriteString("\n")
			}
		}
	}
}
