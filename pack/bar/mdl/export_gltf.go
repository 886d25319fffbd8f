package mdl

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// GLTFSkeletonSink maps joints to gltf nodes, one per bone, and wires
// the parent hierarchy through node children. Joints with parents the
// archive never declared (out of range) become scene roots.
type GLTFSkeletonSink struct {
	Doc        *gltf.Document
	JointNodes []uint32
}

// NewGLTFSkeletonSink attaches to doc, adding a scene for the root
// joints when the document has none yet.
func NewGLTFSkeletonSink(doc *gltf.Document) *GLTFSkeletonSink {
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	}
	return &GLTFSkeletonSink{Doc: doc}
}

func (s *GLTFSkeletonSink) CreateJoint(id uint16, parent int32, scale, rotation, translation mgl32.Vec4) error {
	node := &gltf.Node{
		Name:        fmt.Sprintf("bone_%d", id),
		Translation: translation.Vec3(),
		Rotation:    [4]float32{rotation.X(), rotation.Y(), rotation.Z(), rotation.W()},
		Scale:       scale.Vec3(),
	}

	nodeId := uint32(len(s.Doc.Nodes))
	s.Doc.Nodes = append(s.Doc.Nodes, node)
	s.JointNodes = append(s.JointNodes, nodeId)

	if parent >= 0 && int(parent) < len(s.JointNodes)-1 {
		parentNode := s.Doc.Nodes[s.JointNodes[parent]]
		parentNode.Children = append(parentNode.Children, nodeId)
	} else {
		s.Doc.Scenes[0].Nodes = append(s.Doc.Scenes[0].Nodes, nodeId)
	}
	return nil
}

func (mdl *Model) ExportGLTF(doc *gltf.Document) (*GLTFSkeletonSink, error) {
	sink := NewGLTFSkeletonSink(doc)
	if err := mdl.FeedSkeleton(sink); err != nil {
		return nil, err
	}
	return sink, nil
}

func (mdl *Model) ExportGLTFDefault() (*gltf.Document, error) {
	doc := gltf.NewDocument()
	if _, err := mdl.ExportGLTF(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
