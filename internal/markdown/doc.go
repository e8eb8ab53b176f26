// Package markdown reads presentation sources and derives what the generator
// sends to Gamma: a title and the prepared input text.
//
// Title extraction tries, in order, a leading metadata block with a title
// field, the first level-one heading, and a short first line. When none match
// the caller falls back to a title derived from the file name.
package markdown
