package redis

import "strings"

// Tokenize splits a Redis command line into whitespace-separated tokens.
// A token may be wrapped in matching single or double quotes to include
// embedded whitespace; the wrapping quote is stripped from the emitted
// token. Quotes are not escapable inside this simplified grammar.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	var quote rune

	for _, ch := range line {
		switch {
		case (ch == '"' || ch == '\'') && quote == 0:
			quote = ch
		case ch == quote && quote != 0:
			quote = 0
		case ch == ' ' && quote == 0:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
