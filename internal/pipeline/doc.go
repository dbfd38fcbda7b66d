// Package pipeline holds the in-process HTML work around the external tools.
//
// The slide decks themselves are produced by pandoc and chromium; this
// package only inspects and generates small pieces of HTML:
//   - scanning a built deck for image files it references but pandoc did not
//     embed or copy (reveal.js lazy-loading via data-src)
//   - rendering the Markdown "info" snippet of a pages index with Goldmark
//   - rewriting links of that snippet into csc-ui <c-link> elements
//   - reducing HTML-formatted slide titles to plain text for link labels
package pipeline
