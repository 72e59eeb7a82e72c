package tomxml

import "encoding/xml"

// Node is one element of a parsed document. Its XMLName records the tag it
// was parsed from (or will be serialized as); Text holds its character
// data; Children holds every child element in document order, regardless
// of tag name.
type Node struct {
	XMLName  xml.Name
	Text     string  `xml:",chardata"`
	Children []*Node `xml:",any"`
}

// newNode constructs a detached node with the given tag name.
func newNode(name string) *Node {
	return &Node{XMLName: xml.Name{Local: name}}
}

// Child returns the first direct child named name, if any.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return nil, false
}

// SetChildText sets the text of the direct child named name, creating it
// if it does not already exist.
func (n *Node) SetChildText(name, text string) {
	if c, ok := n.Child(name); ok {
		c.Text = text
		return
	}
	c := newNode(name)
	c.Text = text
	n.Children = append(n.Children, c)
}

// EraseChild removes the first direct child named name and reports
// whether one was found.
func (n *Node) EraseChild(name string) bool {
	for i, c := range n.Children {
		if c.XMLName.Local == name {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}
