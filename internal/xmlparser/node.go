package xmlparser

import "strings"

// Attr is a namespace-resolved attribute: Local is the bare attribute
// name, Space is the resolved namespace URI (empty for unprefixed
// attributes, which per the XML spec never inherit the default
// namespace).
type Attr struct {
	Space string
	Local string
	Value string
}

// Node is one element of the parsed tree. Namespace is the fully
// resolved URI of the element (empty if the element is unprefixed and
// no default namespace is in scope). Handlers only ever compare Local,
// per spec.md §9 ("local-name comparison must strip any
// {namespace} prefix").
type Node struct {
	Local     string
	Namespace string
	Attrs     []Attr
	Text      string
	Children  []*Node
	Parent    *Node
	StartLine int
	EndLine   int
}

// Attr returns the value of the named attribute (by local name, any
// namespace), and whether it was present.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute value or a default.
func (n *Node) AttrOr(local, def string) string {
	if v, ok := n.Attr(local); ok {
		return v
	}
	return def
}

// Child returns the first direct child with the given local name, or
// nil.
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if c.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Descendant returns the first descendant (depth-first, not including
// n itself) with the given local name, or nil. Equivalent to the
// source's XPath-style `.//elem` lookups (spec.md §9).
func (n *Node) Descendant(local string) *Node {
	for _, c := range n.Children {
		if c.Local == local {
			return c
		}
		if d := c.Descendant(local); d != nil {
			return d
		}
	}
	return nil
}

// Descendants returns every descendant (depth-first, not including n
// itself) with the given local name.
func (n *Node) Descendants(local string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Walk calls visit for n and every descendant, depth-first, pre-order.
// visit returning false prunes the subtree.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// TextTrimmed returns the node's direct text content with surrounding
// whitespace trimmed.
func (n *Node) TextTrimmed() string {
	return strings.TrimSpace(n.Text)
}

// Count returns the number of nodes in the subtree rooted at n
// (inclusive).
func (n *Node) Count() int {
	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}
	return count
}

// Depth returns the maximum depth of the subtree rooted at n (a leaf
// has depth 1).
func (n *Node) Depth() int {
	if len(n.Children) == 0 {
		return 1
	}
	maxChild := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > maxChild {
			maxChild = d
		}
	}
	return maxChild + 1
}

// UniqueLocalNames returns the set of distinct element local names in
// the subtree rooted at n (inclusive).
func (n *Node) UniqueLocalNames() map[string]int {
	out := map[string]int{}
	n.Walk(func(c *Node) bool {
		out[c.Local]++
		return true
	})
	return out
}

// OpeningTag reconstructs a best-effort opening tag for the node,
// used to populate Chunk.ParentContext snapshots.
func (n *Node) OpeningTag() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Local)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Local)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// AncestorChain returns the opening tags of every ancestor from the
// document root down to (but not including) n, joined as a single
// string. Used for Chunk.ParentContext under preserve_hierarchy.
func (n *Node) AncestorChain() string {
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append([]*Node{p}, chain...)
	}
	var b strings.Builder
	for _, a := range chain {
		b.WriteString(a.OpeningTag())
	}
	return b.String()
}

// ElementPath returns the slash-separated path of local names from the
// document root to n, inclusive.
func (n *Node) ElementPath() string {
	var chain []string
	cur := n
	for cur != nil {
		chain = append([]string{cur.Local}, chain...)
		cur = cur.Parent
	}
	return strings.Join(chain, "/")
}
