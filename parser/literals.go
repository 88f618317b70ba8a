package parser

import "strconv"

// parseIntLiteral converts a lexer-validated integer lexeme into its
// numeric value. The lexer already rejected anything malformed, so a
// conversion failure here would indicate an internal inconsistency
// between the two packages rather than a user-facing syntax error.
func parseIntLiteral(lit string) (int64, error) {
	return strconv.ParseInt(lit, 10, 64)
}

// parseFloatLiteral converts a lexer-validated float lexeme into its
// numeric value.
func parseFloatLiteral(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
