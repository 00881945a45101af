package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Fragment tags a piece of a description cell.
type Fragment int

// Fragments of a description cell.
const (
	FragmentTitle Fragment = iota
	FragmentEnactmentDate
	FragmentPublicationDate
	FragmentSource
)

func (f Fragment) String() string {
	switch f {
	case FragmentTitle:
		return "title"
	case FragmentEnactmentDate:
		return "enactment date"
	case FragmentPublicationDate:
		return "publication date"
	case FragmentSource:
		return "source"
	default:
		return "unknown"
	}
}

// Traversal is a named path of element names leading from a starting
// element to the run holding one fragment. Each step matches a descendant
// of the element matched by the previous step.
type Traversal struct {
	Name     string
	Fragment Fragment
	Steps    []string
}

// Traversals used on description cells. The title run is located from the
// cell; the others start at the title run.
var (
	TitleTraversal = Traversal{
		Name:     "title",
		Fragment: FragmentTitle,
		Steps:    []string{"font"},
	}
	PublicationTraversal = Traversal{
		Name:     "publication",
		Fragment: FragmentPublicationDate,
		Steps:    []string{"b", "font"},
	}
	SourceTraversal = Traversal{
		Name:     "source",
		Fragment: FragmentSource,
		Steps:    []string{"font", "font", "b", "font"},
	}
	// Some pages misspell one font tag as "fot".
	SourceFotTraversal = Traversal{
		Name:     "source-fot",
		Fragment: FragmentSource,
		Steps:    []string{"fot", "font", "b", "font"},
	}
)

// Walk returns the first element, in document order, reached by following
// the steps from start, or nil when the path does not exist.
func (t Traversal) Walk(start *html.Node) *html.Node {
	if start == nil || len(t.Steps) == 0 {
		return nil
	}
	return walk(start, t.Steps)
}

// walk matches steps[0] against the descendants of n in document order and
// backtracks to the next candidate when the remaining steps do not match.
func walk(n *html.Node, steps []string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == steps[0] {
			if len(steps) == 1 {
				return c
			}
			if found := walk(c, steps[1:]); found != nil {
				return found
			}
		}
		if found := walk(c, steps); found != nil {
			return found
		}
	}
	return nil
}

// Locate tries each traversal in turn from start and returns the own text
// of the first run found. ok is false when none of the traversals reaches
// an element.
func Locate(start *html.Node, traversals ...Traversal) (text string, used Traversal, ok bool) {
	for _, t := range traversals {
		if n := t.Walk(start); n != nil {
			return ownText(n), t, true
		}
	}
	return "", Traversal{}, false
}

// ownText returns the whitespace-normalised text of the direct text
// children of n.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
