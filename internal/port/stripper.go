package port

import "srcpack/internal/domain"

// Stripper removes comments from raw source text according to a grammar.
// Implementations never fail; unparseable input passes through unmodified.
type Stripper interface {
	Strip(content string, grammar domain.Grammar) string

	// StripDocComments removes only doc comments (///-prefixed lines and
	// triple-quoted blocks), leaving ordinary comments intact.
	StripDocComments(content string, grammar domain.Grammar) string
}
