package models

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLText is rich text authored in the admin editor. It is stored as-is and
// trusted when rendered.
type HTMLText string

func (h HTMLText) IsEmpty() bool {
	return strings.TrimSpace(string(h)) == ""
}

// Plain returns the text content with markup removed and whitespace
// collapsed, for mail bodies and chat notifications.
func (h HTMLText) Plain() string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(string(h)))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.TrimSpace(string(h))
			}
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
