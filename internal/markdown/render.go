// Package markdown renders user-authored bodies (posts, comments, messages)
// to sanitized HTML. Bodies are stored raw; rendering happens on read.
package markdown

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	mu     sync.Mutex
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{md: md, policy: policy}
}

// Render converts markdown to HTML and strips anything the UGC policy does
// not allow. Raw HTML in the source never survives the policy pass.
func (r *Renderer) Render(body string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
