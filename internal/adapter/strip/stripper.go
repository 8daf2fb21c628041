// Package strip removes comments from source text per comment grammar.
// Line-comment removal is string-literal safe; block-comment removal peels
// one syntactic layer per pass until the text stops changing. Stripping
// never fails: anything unparseable passes through unmodified.
package strip

import (
	"regexp"
	"strings"

	"srcpack/internal/domain"
)

var (
	reCBlock       = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reHTMLBlock    = regexp.MustCompile(`(?s)<!--.*?-->`)
	reTripleDouble = regexp.MustCompile(`(?s)""".*?"""`)
	reTripleSingle = regexp.MustCompile(`(?s)'''.*?'''`)
)

// blockPatterns lists the removable block spans per grammar.
var blockPatterns = map[domain.Grammar][]*regexp.Regexp{
	domain.GrammarCStyle:      {reCBlock},
	domain.GrammarPythonStyle: {reTripleDouble, reTripleSingle},
	domain.GrammarHTMLStyle:   {reHTMLBlock},
	domain.GrammarMixedWeb:    {reCBlock, reHTMLBlock},
}

// lineTokens maps each grammar to its line-comment start token, if any.
var lineTokens = map[domain.Grammar]string{
	domain.GrammarCStyle:      "//",
	domain.GrammarPythonStyle: "#",
	domain.GrammarHashStyle:   "#",
	domain.GrammarMixedWeb:    "//",
}

type Stripper struct{}

func NewStripper() *Stripper {
	return &Stripper{}
}

// Strip removes comments from content according to grammar and normalizes
// blank lines. Applying Strip to its own output is a no-op.
func (s *Stripper) Strip(content string, grammar domain.Grammar) string {
	out := stripBlocks(content, blockPatterns[grammar])
	if token, ok := lineTokens[grammar]; ok {
		out = stripLineComments(out, token)
	}
	return normalizeBlankLines(out)
}

// StripDocComments removes only doc comments: ///-prefixed lines for
// slash-commented grammars and triple-quoted blocks for python-style.
// Ordinary comments stay intact.
func (s *Stripper) StripDocComments(content string, grammar domain.Grammar) string {
	switch grammar {
	case domain.GrammarCStyle, domain.GrammarMixedWeb:
		lines := strings.Split(content, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimLeft(line, " \t"), "///") {
				continue
			}
			kept = append(kept, line)
		}
		return normalizeBlankLines(strings.Join(kept, "\n"))
	case domain.GrammarPythonStyle:
		out := stripBlocks(content, []*regexp.Regexp{reTripleDouble, reTripleSingle})
		return normalizeBlankLines(out)
	default:
		return content
	}
}

// stripBlocks removes block-comment spans until the text length reaches a
// fixed point, which unwraps one nesting layer per pass. Only the outermost
// well-formed pairs are guaranteed correct.
func stripBlocks(content string, patterns []*regexp.Regexp) string {
	if len(patterns) == 0 {
		return content
	}
	for {
		before := len(content)
		for _, re := range patterns {
			content = re.ReplaceAllString(content, "")
		}
		if len(content) == before {
			return content
		}
	}
}

// stripLineComments removes token-to-end-of-line comments, honoring string
// literals. Lines that are entirely a comment are dropped rather than left
// blank.
func stripLineComments(content, token string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), token) {
			continue
		}
		if idx := commentStart(line, token); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// commentStart returns the byte offset of the first occurrence of token
// outside a string literal, or -1. Quote characters are ", ' and backtick;
// a backslash escapes the following character. An unterminated string
// swallows the rest of the line, so the line survives unmodified.
func commentStart(line, token string) int {
	inString := false
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' {
			i++
			continue
		}
		if inString {
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			inString = true
			quote = c
		default:
			if c == token[0] && strings.HasPrefix(line[i:], token) {
				return i
			}
		}
	}
	return -1
}

// normalizeBlankLines drops every blank line that immediately follows
// another blank line, then removes leading and trailing blank lines.
func normalizeBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		kept = append(kept, line)
		prevBlank = blank
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n")
}
