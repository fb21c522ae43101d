// Package textsearch builds substring match fragments for GORM Where clauses.
package textsearch

import "strings"

// Pattern wraps term for a LIKE substring match.
func Pattern(term string) string {
	return "%" + term + "%"
}

// SQLFilter returns "<column> LIKE ?" and its argument. Matching follows
// the column's collation, no case folding is applied.
func SQLFilter(column, term string) (string, []interface{}) {
	return column + " LIKE ?", []interface{}{Pattern(term)}
}

// AnyOf ORs a substring match of term across columns. The fragment is not
// parenthesized.
func AnyOf(term string, columns ...string) (string, []interface{}) {
	fragments := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		fragment, fragmentArgs := SQLFilter(column, term)
		fragments = append(fragments, fragment)
		args = append(args, fragmentArgs...)
	}
	return strings.Join(fragments, " OR "), args
}
