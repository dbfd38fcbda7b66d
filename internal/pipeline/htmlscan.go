package pipeline

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ScanExternalSources returns the data-src values of <img> elements that
// are plain paths, in document order and without duplicates. Values with a
// URL scheme or a protocol-relative prefix are skipped.
//
// reveal.js lazy-loads images through data-src, which pandoc neither embeds
// nor rewrites, so these files must travel with the HTML.
func ScanExternalSources(r io.Reader) ([]string, error) {
	z := html.NewTokenizer(r)
	seen := make(map[string]bool)
	var sources []string

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("scanning HTML: %w", err)
			}
			return sources, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Img {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Key != "data-src" || !isPlainPath(attr.Val) || seen[attr.Val] {
					continue
				}
				seen[attr.Val] = true
				sources = append(sources, attr.Val)
			}
		}
	}
}

// isPlainPath reports whether ref names a file rather than a URL.
func isPlainPath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "#") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		// Windows drive letters fail URL parsing; still a path.
		return !strings.Contains(ref, "://")
	}
	// A single letter scheme is a drive letter, not a URL.
	return u.Scheme == "" || len(u.Scheme) == 1
}

// PlainText returns the text content of an HTML fragment with all tags removed.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// RewriteLinks turns every <a> element of an HTML fragment into a <c-link>
// element with the same attributes and children.
func RewriteLinks(fragment string) (string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	rewriteAnchors(doc)
	return renderFragment(doc)
}

func rewriteAnchors(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		n.DataAtom = 0
		n.Data = "c-link"
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteAnchors(c)
	}
}

// parseFragment parses with body context to avoid <html><body> wrapping.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders only the children of the container node.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
