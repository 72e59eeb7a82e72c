// Package tomxml is the storage package's external tree collaborator: a
// small generic XML tree with the exact contract the rest of the module
// needs and nothing more — get-optional-by-path, put-by-path, and
// get-child-then-erase-a-named-child. No third-party XML tree library
// appears anywhere in the example corpus this module is grounded on, so
// this package is built directly on encoding/xml's "any element" idiom:
// a Node records its own tag name in an embedded xml.Name and captures
// every child element generically via an `xml:",any"` slice, which is
// enough to round-trip an arbitrarily-shaped document without a
// hand-written grammar.
package tomxml
