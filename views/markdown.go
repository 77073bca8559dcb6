package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown renders manifest prose (descriptions, credits) as sanitized HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			return err
		}
		_, err := w.Write(policy.SanitizeBytes(buf.Bytes()))
		return err
	})
}
