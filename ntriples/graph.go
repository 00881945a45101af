// Package ntriples serialises documents as ELI statements in the
// N-Triples line format.
package ntriples

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type termKind int

const (
	kindIRI termKind = iota
	kindLiteral
)

// Term is the subject, predicate or object of a statement.
type Term struct {
	kind     termKind
	Value    string
	Lang     string
	Datatype string
}

// IRI returns a resource term.
func IRI(iri string) Term {
	return Term{kind: kindIRI, Value: iri}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{kind: kindLiteral, Value: value}
}

// LangLiteral returns a literal tagged with a language.
func LangLiteral(value, lang string) Term {
	return Term{kind: kindLiteral, Value: value, Lang: lang}
}

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{kind: kindLiteral, Value: value, Datatype: datatype}
}

// String returns the term in N-Triples syntax.
func (t Term) String() string {
	if t.kind == kindIRI {
		return "<" + escapeIRI(t.Value) + ">"
	}
	s := `"` + escapeLiteral(t.Value) + `"`
	switch {
	case t.Lang != "":
		s += "@" + t.Lang
	case t.Datatype != "":
		s += "^^<" + escapeIRI(t.Datatype) + ">"
	}
	return s
}

// Triple is one subject-predicate-object statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String returns the statement as one N-Triples line without the newline.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Graph is a set of statements that remembers insertion order.
// Adding a statement twice keeps the first occurrence.
type Graph struct {
	seen    map[Triple]struct{}
	triples []Triple
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{seen: make(map[Triple]struct{})}
}

// Add inserts a statement and reports whether it was new.
func (g *Graph) Add(subject, predicate, object Term) bool {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	if _, ok := g.seen[t]; ok {
		return false
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Len returns the number of distinct statements.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the statements in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// WriteTo writes one statement per line.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, t := range g.triples {
		m, err := bw.WriteString(t.String() + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func escapeLiteral(value string) string {
	var b strings.Builder
	b.Grow(len(value) + len(value)/8)

	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeIRI(iri string) string {
	var b strings.Builder
	b.Grow(len(iri))

	for _, r := range iri {
		switch {
		case r <= 0x20, strings.ContainsRune("<>\"{}|^`\\", r):
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
