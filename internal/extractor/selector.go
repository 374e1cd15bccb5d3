package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/newswatch/internal/models"
)

// FindElement returns the first element in document order that satisfies
// every set field of sel. Empty Class and ID act as wildcards.
func FindElement(doc *goquery.Document, sel models.Selector) (*goquery.Selection, bool) {
	tag := strings.ToLower(strings.TrimSpace(sel.Tag))
	if tag == "" {
		return nil, false
	}

	// Matching on node data avoids compiling user input as a CSS selector.
	match := doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == tag && matchesClass(s, sel.Class) && matchesID(s, sel.ID)
	}).First()

	if match.Length() == 0 {
		return nil, false
	}
	return match, true
}

func matchesClass(s *goquery.Selection, class string) bool {
	class = strings.TrimSpace(class)
	if class == "" {
		return true
	}
	// A multi-word value must equal the whole attribute.
	if strings.ContainsAny(class, " \t\n") {
		attr, _ := s.Attr("class")
		return strings.Join(strings.Fields(attr), " ") == strings.Join(strings.Fields(class), " ")
	}
	return s.HasClass(class)
}

func matchesID(s *goquery.Selection, id string) bool {
	if id == "" {
		return true
	}
	attr, exists := s.Attr("id")
	return exists && attr == id
}
