package criteria

import (
	"strconv"
	"strings"
)

// Kind identifies the predicate type of a Node.
type Kind int

const (
	// KindText is an analysed full-text match that contributes to relevance.
	KindText Kind = iota + 1
	// KindExact is an exact term filter on a keyword field.
	KindExact
	// KindRange is a numeric or timestamp bound filter.
	KindRange
	// KindGroup combines child nodes under a boolean mode.
	KindGroup
)

// Mode is the boolean combinator of a group node.
type Mode int

const (
	// ModeAll requires every child to match (AND / must).
	ModeAll Mode = iota + 1
	// ModeAny requires at least minimumMatch children to match (OR / should).
	ModeAny
	// ModeNone requires no child to match (must-not).
	ModeNone
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "ALL"
	case ModeAny:
		return "ANY"
	case ModeNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// MatchType selects how a text node's value is matched by the backend.
type MatchType int

const (
	// MatchAnalyzed is the default tokenised match.
	MatchAnalyzed MatchType = iota
	// MatchFuzzy tolerates small edit distances per term.
	MatchFuzzy
	// MatchPrefix matches terms starting with the value.
	MatchPrefix
)

// Bound is one side of a range. The zero value is unbounded.
type Bound struct {
	value     float64
	set       bool
	exclusive bool
}

// Inclusive returns a bound that includes v.
func Inclusive(v float64) Bound { return Bound{value: v, set: true} }

// Exclusive returns a bound that excludes v.
func Exclusive(v float64) Bound { return Bound{value: v, set: true, exclusive: true} }

// Unbounded returns an open bound.
func Unbounded() Bound { return Bound{} }

// IsSet reports whether the bound constrains the range.
func (b Bound) IsSet() bool { return b.set }

// Value returns the bound value; meaningless when unset.
func (b Bound) Value() float64 { return b.value }

// IsExclusive reports whether the bound value itself is excluded.
func (b Bound) IsExclusive() bool { return b.exclusive }

// Node is an immutable predicate in a criteria tree.
type Node struct {
	kind         Kind
	field        string
	value        string
	boost        float64
	match        MatchType
	min          Bound
	max          Bound
	mode         Mode
	minimumMatch int
	children     []Node
}

// TextOption customises a text node.
type TextOption func(*Node)

// Boost scales the relevance contribution of a text node.
func Boost(f float64) TextOption {
	return func(n *Node) { n.boost = f }
}

// Fuzzy switches a text node to fuzzy matching.
func Fuzzy() TextOption {
	return func(n *Node) { n.match = MatchFuzzy }
}

// Prefix switches a text node to prefix matching.
func Prefix() TextOption {
	return func(n *Node) { n.match = MatchPrefix }
}

// Text creates an analysed match on a text field.
func Text(field, value string, opts ...TextOption) Node {
	n := Node{kind: KindText, field: field, value: value}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Exact creates an exact-term filter on a keyword field.
func Exact(field, value string) Node {
	return Node{kind: KindExact, field: field, value: value}
}

// ExactBool creates an exact-term filter on a boolean flag.
func ExactBool(field string, v bool) Node {
	return Exact(field, strconv.FormatBool(v))
}

// Range creates a bound filter on a numeric field; either side may be unbounded.
func Range(field string, lo, hi Bound) Node {
	return Node{kind: KindRange, field: field, min: lo, max: hi}
}

// Group combines children under mode. minimumMatch only applies to ModeAny.
func Group(mode Mode, minimumMatch int, children ...Node) Node {
	c := make([]Node, len(children))
	copy(c, children)
	if mode != ModeAny {
		minimumMatch = 0
	}
	return Node{kind: KindGroup, mode: mode, minimumMatch: minimumMatch, children: c}
}

// All requires every child to match.
func All(children ...Node) Node { return Group(ModeAll, 0, children...) }

// Any requires at least minimumMatch children to match.
func Any(minimumMatch int, children ...Node) Node { return Group(ModeAny, minimumMatch, children...) }

// None excludes documents matching any child.
func None(children ...Node) Node { return Group(ModeNone, 0, children...) }

// Kind returns the node kind.
func (n Node) Kind() Kind { return n.kind }

// Field returns the target field of a leaf node.
func (n Node) Field() string { return n.field }

// Value returns the match value of a text or exact node.
func (n Node) Value() string { return n.value }

// Boost returns the relevance multiplier; 0 means no boost.
func (n Node) Boost() float64 { return n.boost }

// Match returns the text match type.
func (n Node) Match() MatchType { return n.match }

// Min returns the lower bound of a range node.
func (n Node) Min() Bound { return n.min }

// Max returns the upper bound of a range node.
func (n Node) Max() Bound { return n.max }

// Mode returns the combinator of a group node.
func (n Node) Mode() Mode { return n.mode }

// MinimumMatch returns the ANY-group threshold.
func (n Node) MinimumMatch() int { return n.minimumMatch }

// Children returns a copy of the group's children.
func (n Node) Children() []Node {
	if len(n.children) == 0 {
		return nil
	}
	c := make([]Node, len(n.children))
	copy(c, n.children)
	return c
}

// IsEmpty reports whether the node constrains nothing: the zero Node or a
// group with no children.
func (n Node) IsEmpty() bool {
	return n.kind == 0 || (n.kind == KindGroup && len(n.children) == 0)
}

// Walk visits n and all descendants depth-first.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Fields returns the distinct fields referenced anywhere in the tree.
func (n Node) Fields() []string {
	var out []string
	seen := make(map[string]bool)
	n.Walk(func(c Node) {
		if c.field != "" && !seen[c.field] {
			seen[c.field] = true
			out = append(out, c.field)
		}
	})
	return out
}

// String renders the tree in a compact debug notation.
func (n Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	switch n.kind {
	case KindText:
		sb.WriteString("TEXT(")
		sb.WriteString(n.field)
		switch n.match {
		case MatchFuzzy:
			sb.WriteString("~~")
		case MatchPrefix:
			sb.WriteString("^=")
		default:
			sb.WriteString("~")
		}
		sb.WriteString(n.value)
		if n.boost != 0 {
			sb.WriteString("^")
			sb.WriteString(strconv.FormatFloat(n.boost, 'g', -1, 64))
		}
		sb.WriteString(")")
	case KindExact:
		sb.WriteString("EXACT(")
		sb.WriteString(n.field)
		sb.WriteString("=")
		sb.WriteString(n.value)
		sb.WriteString(")")
	case KindRange:
		sb.WriteString("RANGE(")
		sb.WriteString(n.field)
		sb.WriteString(",")
		writeBound(sb, n.min, true)
		sb.WriteString(",")
		writeBound(sb, n.max, false)
		sb.WriteString(")")
	case KindGroup:
		sb.WriteString(n.mode.String())
		if n.mode == ModeAny {
			sb.WriteString("/")
			sb.WriteString(strconv.Itoa(n.minimumMatch))
		}
		sb.WriteString("(")
		for i, c := range n.children {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.write(sb)
		}
		sb.WriteString(")")
	}
}

func writeBound(sb *strings.Builder, b Bound, lower bool) {
	if !b.set {
		sb.WriteString("*")
		return
	}
	v := strconv.FormatFloat(b.value, 'g', -1, 64)
	switch {
	case lower && b.exclusive:
		sb.WriteString("(" + v)
	case lower:
		sb.WriteString("[" + v)
	case b.exclusive:
		sb.WriteString(v + ")")
	default:
		sb.WriteString(v + "]")
	}
}
