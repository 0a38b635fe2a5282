// Package extract pulls the heading, table rows and paragraphs out of a result page
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoHeading is returned when the page has no h1 to use as title
var ErrNoHeading = errors.New("page has no h1 heading")

// Result is the structured content of one destination page
type Result struct {
	Title      string     `json:"title"`
	Tables     [][]string `json:"tables"`
	Paragraphs []string   `json:"paragraphs"`
}

// FromHTML parses a page and extracts its content
func FromHTML(page string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument extracts content from an already parsed page.
// Script, style and noscript nodes are dropped first so only rendered text remains.
func FromDocument(doc *goquery.Document) (*Result, error) {
	doc.Find("script, style, noscript, template").Remove()

	heading := doc.Find("h1").First()
	if heading.Length() == 0 {
		return nil, ErrNoHeading
	}

	result := &Result{
		Title:      InnerText(heading),
		Tables:     [][]string{},
		Paragraphs: []string{},
	}

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		rows := []string{}
		table.Find("tr").Each(func(j int, tr *goquery.Selection) {
			rows = append(rows, rowText(tr))
		})
		result.Tables = append(result.Tables, rows)
	})

	doc.Find("p").Each(func(i int, p *goquery.Selection) {
		result.Paragraphs = append(result.Paragraphs, InnerText(p))
	})

	return result, nil
}

// rowText renders a table row the way a browser's innerText does: cells separated by tabs
func rowText(tr *goquery.Selection) string {
	cells := tr.ChildrenFiltered("td, th")
	if cells.Length() == 0 {
		return InnerText(tr)
	}

	parts := make([]string, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		parts = append(parts, InnerText(cell))
	})
	return strings.Join(parts, "\t")
}

// InnerText approximates a browser's innerText for inline content:
// whitespace runs collapse to one space and each <br> starts a new line.
func InnerText(sel *goquery.Selection) string {
	var lines []string
	var line strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			line.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			lines = append(lines, CleanText(line.String()))
			line.Reset()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	lines = append(lines, CleanText(line.String()))

	// a trailing <br> does not render an empty line
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// CleanText collapses runs of whitespace into single spaces and trims the ends
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
