package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// allowedTags is the structural tag allow-list. Anything outside this set
// is stripped; its visible text survives.
var allowedTags = map[string]bool{
	"a":  true,
	"hr": true,
	"br": true,
	"b":  true,
	"li": true,
	"p":  true,
}

// voidTags are allowed tags that never carry content or a closing tag.
var voidTags = map[string]bool{
	"hr": true,
	"br": true,
}

// dropContentTags are elements whose entire content is discarded, not just
// the tags themselves. Their text is code or metadata, never prose.
var dropContentTags = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"noscript": true,
	"textarea": true,
	"title":    true,
}

// allowedSchemes are URL schemes an anchor's href may use after
// sanitization. Everything else (javascript:, data:, ...) is dropped.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Sanitize strips untrusted markup from one line of input.
//
// It is deterministic, pure, and total: unsafe constructs are dropped or
// neutralized, never reported as errors. Sanitizing already-safe text
// returns it unchanged, so the function is idempotent.
//
// Whitespace policy: runs of ordinary spaces and tabs collapse to a single
// space and the result is trimmed, while typographic whitespace (NBSP and
// other non-ASCII spaces) passes through untouched. The result is
// NFC-normalized so equal-looking text compares equal.
func Sanitize(line string) string {
	z := html.NewTokenizer(strings.NewReader(line))

	var sb strings.Builder
	// dropDepth counts how deep we are inside elements whose content is
	// discarded wholesale.
	dropDepth := 0
	// pendingSpace carries a collapsed whitespace run across tokens, so a
	// stripped tag between two text runs still yields a single space.
	pendingSpace := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			// The tokenizer only errors at end of input for fragments.
			return finish(sb.String())

		case html.TextToken:
			if dropDepth > 0 {
				continue
			}
			writeText(&sb, z.Token().Data, &pendingSpace)

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if dropContentTags[tok.Data] {
				if tok.Type == html.StartTagToken {
					dropDepth++
				}
				continue
			}
			if dropDepth > 0 || !allowedTags[tok.Data] {
				continue
			}
			flushSpace(&sb, &pendingSpace)
			writeTag(&sb, tok)

		case html.EndTagToken:
			tok := z.Token()
			if dropContentTags[tok.Data] {
				if dropDepth > 0 {
					dropDepth--
				}
				continue
			}
			if dropDepth > 0 || !allowedTags[tok.Data] || voidTags[tok.Data] {
				continue
			}
			flushSpace(&sb, &pendingSpace)
			sb.WriteString("</" + tok.Data + ">")

		case html.CommentToken, html.DoctypeToken:
			// Comments and doctypes never survive sanitization.
			continue
		}
	}
}

// writeTag serializes an allowed start tag, keeping only the attributes
// the allow-list permits (href on anchors, nothing anywhere else).
func writeTag(sb *strings.Builder, tok html.Token) {
	sb.WriteString("<" + tok.Data)
	if tok.Data == "a" {
		if href, ok := safeHref(tok.Attr); ok {
			sb.WriteString(` href="` + html.EscapeString(href) + `"`)
		}
	}
	sb.WriteString(">")
}

// safeHref extracts an anchor's href attribute if its scheme is allowed.
// Relative URLs (no scheme) are allowed; opaque or executable schemes are not.
func safeHref(attrs []html.Attribute) (string, bool) {
	for _, attr := range attrs {
		if attr.Key != "href" {
			continue
		}
		u, err := url.Parse(strings.TrimSpace(attr.Val))
		if err != nil {
			return "", false
		}
		if u.Scheme == "" || allowedSchemes[u.Scheme] {
			return attr.Val, true
		}
		return "", false
	}
	return "", false
}

// writeText appends one text run, collapsing ASCII whitespace to a single
// space. The run state lives in pendingSpace rather than the token, so
// whitespace separated by stripped markup still collapses to one space.
// Non-ASCII whitespace (NBSP, thin space, ...) is typographic content and
// passes through unchanged.
func writeText(sb *strings.Builder, s string, pendingSpace *bool) {
	start := -1
	for i, r := range s {
		if isASCIISpace(r) {
			if start >= 0 {
				flushSpace(sb, pendingSpace)
				sb.WriteString(html.EscapeString(s[start:i]))
				start = -1
			}
			*pendingSpace = true
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		flushSpace(sb, pendingSpace)
		sb.WriteString(html.EscapeString(s[start:]))
	}
}

// flushSpace emits the single space a collapsed whitespace run stands for,
// just before the next visible output. A run with nothing after it emits
// nothing; finish trims the boundary anyway.
func flushSpace(sb *strings.Builder, pendingSpace *bool) {
	if *pendingSpace {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		*pendingSpace = false
	}
}

// isASCIISpace reports whether r is ordinary ASCII whitespace.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// finish trims boundary whitespace and applies NFC normalization.
func finish(s string) string {
	return norm.NFC.String(strings.Trim(s, " "))
}
