package main

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"meridianmall.com/meridian-web/internal/settings"
)

// Rewrite applies the settings bundle to a static HTML document:
// title, description, keywords, robots, Open Graph tags, verification
// tags, canonical link and favicon. Existing tags are updated in
// place; missing ones are appended to <head>. Empty settings leave
// the shell's own values alone.
func Rewrite(src []byte, b settings.Bundle) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	head := findElement(doc, atom.Head)
	if head == nil {
		return nil, errors.New("prerender: document has no <head>")
	}

	if t := strings.TrimSpace(b.SEO.MetaTitle); t != "" {
		setTitle(head, t)
	}
	setMeta(head, "name", "description", b.SEO.MetaDescription)
	setMeta(head, "name", "keywords", b.SEO.MetaKeywords)
	setMeta(head, "name", "robots", b.SEO.Robots)
	setMeta(head, "name", "google-site-verification", b.SEO.GoogleVerification)
	setMeta(head, "name", "msvalidate.01", b.SEO.BingVerification)
	setMeta(head, "property", "og:title", firstNonEmpty(b.SEO.OGTitle, b.SEO.MetaTitle))
	setMeta(head, "property", "og:description", firstNonEmpty(b.SEO.OGDescription, b.SEO.MetaDescription))
	setMeta(head, "property", "og:image", b.SEO.OGImage)
	setMeta(head, "property", "og:site_name", b.General.SiteName)
	setLink(head, "canonical", b.SEO.CanonicalURL)
	setLink(head, "icon", b.General.FaviconURL)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// setTitle replaces the text of an existing <title>, creating the
// element when the shell has none.
func setTitle(head *html.Node, title string) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Title {
			for t := c.FirstChild; t != nil; {
				next := t.NextSibling
				c.RemoveChild(t)
				t = next
			}
			c.AppendChild(&html.Node{Type: html.TextNode, Data: title})
			return
		}
	}
	el := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(el)
}

// setMeta updates the content of the <meta> whose keyAttr equals
// keyValue, appending the tag when absent. Empty content is a no-op.
func setMeta(head *html.Node, keyAttr, keyValue, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Meta && getAttr(c, keyAttr) == keyValue {
			setAttr(c, "content", content)
			return
		}
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Meta,
		Data:     "meta",
		Attr: []html.Attribute{
			{Key: keyAttr, Val: keyValue},
			{Key: "content", Val: content},
		},
	})
}

// setLink updates the href of the <link> with the given rel.
func setLink(head *html.Node, rel, href string) {
	if strings.TrimSpace(href) == "" {
		return
	}
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Link && getAttr(c, "rel") == rel {
			setAttr(c, "href", href)
			return
		}
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Link,
		Data:     "link",
		Attr: []html.Attribute{
			{Key: "rel", Val: rel},
			{Key: "href", Val: href},
		},
	})
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
