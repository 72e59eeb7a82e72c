package tomstore

import (
	"strconv"
	"time"

	"github.com/ValentinKolb/tomkv/tomxml"
)

// nowSeconds returns the current wall-clock time as seconds since the
// Unix epoch, the unit date_created and lifetime are stored in.
func nowSeconds() int64 {
	return time.Now().Unix()
}

// nodeValue is a decoded tom node: the required key/mapped pair plus its
// optional expiration metadata.
type nodeValue[K, M any] struct {
	Key         K
	Mapped      M
	DateCreated *int64
	Lifetime    *int64
}

// outdated reports whether both expiration fields are present and place
// the node's expiration instant in the past. Absence of either field
// disables expiration.
func (n nodeValue[K, M]) outdated() bool {
	if n.DateCreated == nil || n.Lifetime == nil {
		return false
	}
	return nowSeconds()-*n.Lifetime > *n.DateCreated
}

// isOutdatedNode is outdated's counterpart operating directly on a parsed
// tomxml.Node, used by the writer paths that haven't decoded a full
// nodeValue.
func isOutdatedNode(n *tomxml.Node) bool {
	dc, ok := optionalInt(n, "date_created")
	if !ok {
		return false
	}
	lt, ok := optionalInt(n, "lifetime")
	if !ok {
		return false
	}
	return nowSeconds()-lt > dc
}

func optionalInt(n *tomxml.Node, name string) (int64, bool) {
	c, ok := n.Child(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(c.Text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// touchDateCreated overwrites n's date_created child with the current
// time, preserving lifetime, used by the "_as_new" write variants.
func touchDateCreated(n *tomxml.Node) {
	n.SetChildText("date_created", strconv.FormatInt(nowSeconds(), 10))
}

// readNode decodes the node at path within tree, reporting ok=false for a
// missing node, a node without both key and mapped children, or either
// field failing to decode under its codec — every such case contributes
// nothing to the caller, never an error.
func readNode[K, M any](tree *tomxml.Tree, path string, keyCodec Codec[K], mappedCodec Codec[M]) (nodeValue[K, M], bool) {
	var zero nodeValue[K, M]

	n, err := tree.GetChild(path)
	if err != nil {
		return zero, false
	}

	keyNode, ok := n.Child("key")
	if !ok {
		return zero, false
	}
	mappedNode, ok := n.Child("mapped")
	if !ok {
		return zero, false
	}

	key, err := keyCodec.Decode(keyNode.Text)
	if err != nil {
		return zero, false
	}
	mapped, err := mappedCodec.Decode(mappedNode.Text)
	if err != nil {
		return zero, false
	}

	nv := nodeValue[K, M]{Key: key, Mapped: mapped}
	if v, ok := optionalInt(n, "date_created"); ok {
		nv.DateCreated = &v
	}
	if v, ok := optionalInt(n, "lifetime"); ok {
		nv.Lifetime = &v
	}
	return nv, true
}
