package pipeline

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseRelativePaths rewrites relative img[src] and a[href] references so
// they resolve from toDir instead of fromDir. Converted files written to
// another directory keep working links and images.
//
// URLs, anchors, data URIs and absolute paths are left alone. A query or
// fragment suffix is preserved. If either directory is empty or both are the
// same, htmlContent is returned unchanged.
func RebaseRelativePaths(htmlContent, fromDir, toDir string) (string, error) {
	if fromDir == "" || toDir == "" {
		return htmlContent, nil
	}

	absFrom, err := filepath.Abs(fromDir)
	if err != nil {
		return "", err
	}
	absTo, err := filepath.Abs(toDir)
	if err != nil {
		return "", err
	}
	if absFrom == absTo {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rebaseNode(doc, absFrom, absTo)

	return renderHTML(doc, isFragment)
}

// parseHTML parses a full document or a body fragment.
// Returns the parsed node and whether it was a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders doc back to a string. Fragments render their children
// only, so no <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rebaseNode(n *html.Node, fromDir, toDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rebaseAttr(n, "src", fromDir, toDir)
		case atom.A:
			rebaseAttr(n, "href", fromDir, toDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, fromDir, toDir)
	}
}

func rebaseAttr(n *html.Node, key, fromDir, toDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		ref, suffix := splitSuffix(attr.Val)
		if ref == "" {
			continue
		}
		rel, err := filepath.Rel(toDir, filepath.Join(fromDir, filepath.FromSlash(ref)))
		if err != nil {
			continue
		}
		n.Attr[i].Val = path.Clean(filepath.ToSlash(rel)) + suffix
	}
}

// splitSuffix separates a reference from its "?query" or "#fragment".
func splitSuffix(ref string) (string, string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// isRelativePath reports whether ref is a relative file reference.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}

	// A scheme (http:, mailto:, data:, file:) or drive letter is not relative
	if i := strings.IndexByte(ref, ':'); i > 0 && !strings.ContainsAny(ref[:i], "/?#") {
		return false
	}

	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}
