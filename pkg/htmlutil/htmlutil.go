package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates the text nodes under node in document order.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

// FirstText returns the text of the first node matched by the selection and
// whether there was a node at all.
func FirstText(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	return GetText(sel.Nodes[0]), true
}

// FirstTrimmedText is FirstText with surrounding whitespace removed.
func FirstTrimmedText(sel *goquery.Selection) (string, bool) {
	text, ok := FirstText(sel)
	return strings.TrimSpace(text), ok
}
