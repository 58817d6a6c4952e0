package redis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
)

// matchAll is the query for an empty criteria tree.
const matchAll = "*"

// buildQuery translates a criteria tree into a DIALECT 2 query string.
func buildQuery(root criteria.Node) (string, error) {
	q, err := buildNode(root, true)
	if err != nil {
		return "", err
	}
	if q == "" {
		return matchAll, nil
	}
	return q, nil
}

func buildNode(n criteria.Node, top bool) (string, error) {
	switch n.Kind() {
	case 0:
		return "", nil
	case criteria.KindText:
		return buildTextMatch(n), nil
	case criteria.KindExact:
		return buildTagFilter(n.Field(), n.Value()), nil
	case criteria.KindRange:
		return buildNumericFilter(n.Field(), n.Min(), n.Max()), nil
	case criteria.KindGroup:
		return buildGroup(n, top)
	default:
		return "", fmt.Errorf("node kind %d: %w", n.Kind(), db.ErrUnsupportedQuery)
	}
}

// buildGroup drops children that compile to nothing; an empty group compiles to "".
func buildGroup(n criteria.Node, top bool) (string, error) {
	children := n.Children()
	parts := make([]string, 0, len(children))
	for _, c := range children {
		p, err := buildNode(c, false)
		if err != nil {
			return "", err
		}
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}

	switch n.Mode() {
	case criteria.ModeAll:
		return intersect(parts, top), nil

	case criteria.ModeAny:
		minMatch := n.MinimumMatch()
		switch {
		case len(parts) == 1:
			return parts[0], nil
		case minMatch <= 1:
			return "(" + strings.Join(parts, " | ") + ")", nil
		case minMatch >= len(parts):
			return intersect(parts, top), nil
		default:
			return "", fmt.Errorf("ANY with minimum match %d of %d: %w",
				minMatch, len(parts), db.ErrUnsupportedQuery)
		}

	case criteria.ModeNone:
		for i, p := range parts {
			parts[i] = "-" + p
		}
		return intersect(parts, top), nil

	default:
		return "", fmt.Errorf("group mode %s: %w", n.Mode(), db.ErrUnsupportedQuery)
	}
}

func intersect(parts []string, top bool) string {
	joined := strings.Join(parts, " ")
	if top || len(parts) == 1 {
		return joined
	}
	return "(" + joined + ")"
}

// buildTextMatch OR-joins the whitespace tokens of the value on one field.
func buildTextMatch(n criteria.Node) string {
	tokens := strings.Fields(n.Value())
	if len(tokens) == 0 {
		return ""
	}
	for i, t := range tokens {
		t = escapeQuery(t)
		switch n.Match() {
		case criteria.MatchFuzzy:
			t = "%" + t + "%"
		case criteria.MatchPrefix:
			t += "*"
		}
		tokens[i] = t
	}

	q := fmt.Sprintf("@%s:(%s)", n.Field(), strings.Join(tokens, "|"))
	if n.Boost() > 0 && n.Boost() != 1 {
		q = fmt.Sprintf("(%s)=>{$weight:%s;}", q, strconv.FormatFloat(n.Boost(), 'g', -1, 64))
	}
	return q
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

func buildNumericFilter(key string, lo, hi criteria.Bound) string {
	minBound := "-inf"
	maxBound := "+inf"

	if lo.IsSet() {
		minBound = formatBound(lo)
	}
	if hi.IsSet() {
		maxBound = formatBound(hi)
	}

	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

func formatBound(b criteria.Bound) string {
	v := strconv.FormatFloat(b.Value(), 'g', -1, 64)
	if b.IsExclusive() {
		return "(" + v
	}
	return v
}

// buildSortArgs emits SORTBY for the first field key. Relevance keys emit
// nothing: FT.SEARCH orders by score by default.
func buildSortArgs(keys []criteria.SortKey) []string {
	for _, k := range keys {
		if k.IsScore() {
			continue
		}
		dir := "DESC"
		if k.Direction() == criteria.Asc {
			dir = "ASC"
		}
		return []string{"SORTBY", k.Field(), dir}
	}
	return nil
}

// --- escaping ---

var tagEscaper = strings.NewReplacer(
	"\\", "\\\\",
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"[", "\\[",
	"]", "\\]",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
