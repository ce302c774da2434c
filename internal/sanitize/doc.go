// Package sanitize neutralizes untrusted markup in submitted lines.
//
// Sanitize is the only gate between raw user input and (a) any rendering
// surface and (b) any outbound call to a remote scoring service. Every
// downstream consumer of a line's text receives the sanitized form,
// including the text echoed back in result rows.
//
// The allow-list keeps a small set of structural tags (a, hr, br, b, li, p)
// and drops everything else. Dropped elements keep their text content,
// except for containers whose content is never user-visible prose
// (script, style, iframe, and friends), which are removed entirely.
//
// Design decision: We use golang.org/x/net/html for tokenizing rather than
// regex because:
//  1. It correctly handles malformed HTML, which untrusted input will contain
//  2. Tokenizing (rather than DOM building) suits single-line fragments
//  3. Standard library extension, well-maintained
package sanitize
