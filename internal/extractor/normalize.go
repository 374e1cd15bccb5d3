package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedElements hold text that is never rendered as page content.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"template": {},
}

// NormalizeText collects every descendant text node of sel, trims each run,
// drops empty runs and joins the rest with newlines.
func NormalizeText(sel *goquery.Selection) string {
	var runs []string
	for _, node := range sel.Nodes {
		collectText(node, &runs)
	}
	return strings.Join(runs, "\n")
}

func collectText(node *html.Node, runs *[]string) {
	switch node.Type {
	case html.TextNode:
		if text := strings.TrimSpace(node.Data); text != "" {
			*runs = append(*runs, text)
		}
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if _, skip := skippedElements[node.Data]; skip {
			return
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, runs)
	}
}

// NormalizeFragment parses markup as HTML and returns its normalized text.
func NormalizeFragment(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	return NormalizeText(doc.Selection), nil
}
