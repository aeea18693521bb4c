// Package html turns HTML pages stored on a drive into plain text for
// ranking. Scripts and styles are dropped and entities decoded.
package html
