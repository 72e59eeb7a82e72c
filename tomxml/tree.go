package tomxml

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrBadPath is returned when a slash-separated path does not resolve to
// an existing node. Callers that fan a body out across many bindings treat
// it as "this binding does not contain the node" rather than propagating
// it.
var ErrBadPath = errors.New("tomxml: bad path")

// Tree is a parsed document, rooted at a single top-level element.
type Tree struct {
	root *Node
}

// Empty returns a tree shaped as the fixed <tom><root/></tom> envelope
// every document in this module uses.
func Empty() *Tree {
	root := newNode("tom")
	root.Children = []*Node{newNode("root")}
	return &Tree{root: root}
}

// Load parses a document from r.
func Load(r io.Reader) (*Tree, error) {
	var root Node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	return &Tree{root: &root}, nil
}

// LoadFile parses the document stored at path.
func LoadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Dump serializes the tree to w.
func (t *Tree) Dump(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(t.root)
}

// DumpFile serializes the tree to path, replacing its previous contents.
func (t *Tree) DumpFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Dump(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func splitPath(path string) []string {
	return strings.Split(path, "/")
}

func navigate(root *Node, path string) (*Node, error) {
	segments := splitPath(path)
	if len(segments) == 0 || segments[0] != root.XMLName.Local {
		return nil, ErrBadPath
	}
	cur := root
	for _, seg := range segments[1:] {
		child, ok := cur.Child(seg)
		if !ok {
			return nil, ErrBadPath
		}
		cur = child
	}
	return cur, nil
}

// GetChild returns the node addressed by path (e.g. "tom/root/a/b"),
// where the first segment must name the tree's root element.
func (t *Tree) GetChild(path string) (*Node, error) {
	return navigate(t.root, path)
}

// GetOrCreateChild is like GetChild but creates every missing node along
// path, including the final segment, rather than failing.
func (t *Tree) GetOrCreateChild(path string) *Node {
	segments := splitPath(path)
	cur := t.root
	for _, seg := range segments[1:] {
		child, ok := cur.Child(seg)
		if !ok {
			child = newNode(seg)
			cur.Children = append(cur.Children, child)
		}
		cur = child
	}
	return cur
}

// GetOptional returns the text of the node addressed by path, and whether
// it was found.
func (t *Tree) GetOptional(path string) (string, bool) {
	n, err := t.GetChild(path)
	if err != nil {
		return "", false
	}
	return n.Text, true
}

// Put sets the text of the node addressed by path, creating every node
// along the way as needed.
func (t *Tree) Put(path string, value string) {
	t.GetOrCreateChild(path).Text = value
}
