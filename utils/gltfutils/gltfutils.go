package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
)

// ExportBinary encodes the document as a .glb stream.
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
