package expression

import (
	"regexp"
	"strings"

	"github.com/mabel-dev/opteryx/sql"
)

// Like implements LIKE/ILIKE and the regex family (~, ~*, !~, !~*,
// SIMILAR TO), compiling the pattern once per Eval call and matching
// per row (§4.3 "LIKE/ILIKE compiles the pattern once per evaluation
// and matches per row"). The pattern is required to be a constant
// expression for this compile-once strategy to apply; a non-constant
// pattern falls back to per-row compilation.
type Like struct {
	target, pattern sql.Expression
	caseInsensitive  bool
	negate           bool
	regex            bool
}

// NewLike builds a LIKE/ILIKE expression.
func NewLike(target, pattern sql.Expression, caseInsensitive, negate bool) *Like {
	return &Like{target: target, pattern: pattern, caseInsensitive: caseInsensitive, negate: negate}
}

// NewRegexMatch builds the ~ / ~* / !~ / !~* family.
func NewRegexMatch(target, pattern sql.Expression, caseInsensitive, negate bool) *Like {
	return &Like{target: target, pattern: pattern, caseInsensitive: caseInsensitive, negate: negate, regex: true}
}

func (l *Like) Type() sql.Type             { return sql.Bool }
func (l *Like) Nullable() bool             { return true }
func (l *Like) Children() []sql.Expression { return []sql.Expression{l.target, l.pattern} }

func (l *Like) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrChildCount.New("Like", 2, len(children))
	}
	return &Like{target: children[0], pattern: children[1], caseInsensitive: l.caseInsensitive, negate: l.negate, regex: l.regex}, nil
}

func (l *Like) String() string {
	op := "LIKE"
	if l.regex {
		op = "~"
	}
	if l.negate {
		op = "NOT " + op
	}
	return l.target.String() + " " + op + " " + l.pattern.String()
}

func (l *Like) Eval(ctx *sql.Context, m *sql.Morsel) (*sql.Vector, error) {
	tv, err := l.target.Eval(ctx, m)
	if err != nil {
		return nil, err
	}
	pv, err := l.pattern.Eval(ctx, m)
	if err != nil {
		return nil, err
	}

	out := sql.NewVector(sql.Bool, m.RowCount)
	var cached *regexp.Regexp
	var cachedPattern string
	haveCached := false

	for row := 0; row < m.RowCount; row++ {
		if !tv.IsValid(row) || !pv.IsValid(row) {
			out.SetNull(row)
			continue
		}
		text := string(tv.StringAt(row))
		pat := string(pv.StringAt(row))

		var re *regexp.Regexp
		if haveCached && cachedPattern == pat {
			re = cached
		} else {
			expr := pat
			if !l.regex {
				expr = likeToRegex(pat)
			}
			if l.caseInsensitive {
				expr = "(?i)" + expr
			}
			re, err = regexp.Compile(expr)
			if err != nil {
				return nil, ErrInvalidPattern.New(err.Error())
			}
			cached = re
			cachedPattern = pat
			haveCached = true
		}
		matched := re.MatchString(text)
		if l.negate {
			matched = !matched
		}
		out.BoolData[row] = matched
	}
	return out, nil
}

// likeToRegex translates a SQL LIKE pattern (% and _ wildcards, with
// backslash escaping) into an anchored Go regexp.
func likeToRegex(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	escaped := false
	for _, r := range pattern {
		if escaped {
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
