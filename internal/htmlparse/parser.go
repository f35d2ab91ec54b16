package htmlparse

import (
	"strings"

	"kestrel/internal/domtree"
)

// CSSFetcher resolves an external stylesheet URI (from <link rel="stylesheet">)
// to its text content. A nil CSSFetcher means external stylesheets are
// skipped — the Fetcher collaborator is out of the parser's scope.
type CSSFetcher func(uri string) (string, error)

var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true,
	"meta": true, "link": true, "area": true, "base": true,
	"col": true, "embed": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// Parser builds a domtree.Document from a token stream.
type Parser struct {
	tokenizer  *Tokenizer
	doc        *domtree.Document
	stack      []*domtree.Node
	cssFetcher CSSFetcher
}

// NewParser creates a parser over the given HTML source.
func NewParser(html string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(html),
		doc:       domtree.NewDocument(),
	}
}

// NewParserWithFetcher creates a parser that resolves <link rel="stylesheet">
// hrefs through fetcher as it encounters them.
func NewParserWithFetcher(html string, fetcher CSSFetcher) *Parser {
	p := NewParser(html)
	p.cssFetcher = fetcher
	return p
}

// Parse runs the tokenizer to completion and returns the built document.
// Malformed markup never fails the parse — per the ParseFailure error
// taxonomy (spec §7), the parser always returns a best-effort tree.
func (p *Parser) Parse() (*domtree.Document, error) {
	p.stack = []*domtree.Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			// Tokenizer errors degrade to "stop parsing here" rather than
			// propagate — the document built so far is still usable.
			break
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenComment, TokenDoctype:
			// Not part of the rendered tree.

		case TokenStartTag:
			p.handleStartTag(token)

		case TokenText:
			if token.Text != "" {
				p.currentParent().AppendText(unescapeHTML(token.Text))
			}

		case TokenEndTag:
			p.closeTo(token.TagName)
		}
	}

	return p.doc, nil
}

func (p *Parser) handleStartTag(token Token) {
	switch token.TagName {
	case "style":
		if strings.TrimSpace(token.Text) != "" {
			p.doc.Stylesheets = append(p.doc.Stylesheets, token.Text)
		}
		return
	case "script":
		if src, ok := token.Attributes["src"]; ok && p.cssFetcher != nil {
			// Scripts are fetched the same way stylesheets are: through
			// whatever Fetcher-backed hook the caller wired in. A nil
			// fetcher means external scripts are silently skipped.
			if body, err := p.cssFetcher(src); err == nil {
				p.doc.Scripts = append(p.doc.Scripts, body)
			}
			return
		}
		if strings.TrimSpace(token.Text) != "" {
			p.doc.Scripts = append(p.doc.Scripts, token.Text)
		}
		return
	case "link":
		if rel := strings.ToLower(token.Attributes["rel"]); rel == "stylesheet" {
			if href, ok := token.Attributes["href"]; ok && p.cssFetcher != nil {
				if css, err := p.cssFetcher(href); err == nil {
					p.doc.Stylesheets = append(p.doc.Stylesheets, css)
				}
			}
		}
	}

	node := domtree.NewElement(token.TagName)
	node.Attributes = token.Attributes
	p.currentParent().AddChild(node)

	if !voidElements[token.TagName] && !token.SelfClose {
		p.push(node)
	}
}

// closeTo pops the stack up to and including the nearest open element with
// the given tag name. Mismatched/unknown end tags are ignored (best-effort
// tree per ParseFailure semantics) rather than treated as an error.
func (p *Parser) closeTo(tagName string) {
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

func (p *Parser) currentParent() *domtree.Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(node *domtree.Node) {
	p.stack = append(p.stack, node)
}

func unescapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&apos;", "'",
		"&nbsp;", " ",
	)
	return replacer.Replace(s)
}

// Parse parses html with no external-resource fetching and returns the
// resulting document.
func Parse(html string) (*domtree.Document, error) {
	return NewParser(html).Parse()
}

// ParseWithFetcher parses html, resolving <link rel="stylesheet"> and
// <script src> references through fetcher.
func ParseWithFetcher(html string, fetcher CSSFetcher) (*domtree.Document, error) {
	return NewParserWithFetcher(html, fetcher).Parse()
}
