package mdl

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/openkh-tools/mdlx_browser/utils"
	"github.com/openkh-tools/mdlx_browser/utils/fbxbuilder"
)

// FbxSkeletonSink maps joints to Null fbx models connected into the
// parent hierarchy. FBX wants euler angles in degrees, so the stored
// quaternion rotation is converted per joint.
type FbxSkeletonSink struct {
	builder  *fbxbuilder.FBXBuilder
	JointIds []int64
}

func NewFbxSkeletonSink(builder *fbxbuilder.FBXBuilder) *FbxSkeletonSink {
	return &FbxSkeletonSink{builder: builder}
}

func (s *FbxSkeletonSink) CreateJoint(id uint16, parent int32, scale, rotation, translation mgl32.Vec4) error {
	f := s.builder
	modelId := f.GenerateId()
	name := fmt.Sprintf("bone_%d", id)

	q := mgl32.Quat{W: rotation.W(), V: rotation.Vec3()}
	euler := utils.QuatToEuler(q).Mul(180.0 / math.Pi)

	model := bfbx73.Model(modelId, name+"\x00\x01Model", "Null").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+",
				float64(translation.X()), float64(translation.Y()), float64(translation.Z())),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+",
				float64(euler[0]), float64(euler[1]), float64(euler[2])),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+",
				float64(scale.X()), float64(scale.Y()), float64(scale.Z())),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), name+"\x00\x01NodeAttribute", "Null").AddNodes(
		bfbx73.TypeFlags("Null"),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(bfbx73.C("OO", nodeAttribute.Properties[0].(int64), modelId))

	parentId := int64(0) // scene root
	if parent >= 0 && int(parent) < len(s.JointIds) {
		parentId = s.JointIds[parent]
	}
	f.AddConnections(bfbx73.C("OO", modelId, parentId))

	s.JointIds = append(s.JointIds, modelId)
	return nil
}

func (mdl *Model) ExportFbx(f *fbxbuilder.FBXBuilder) (*FbxSkeletonSink, error) {
	sink := NewFbxSkeletonSink(f)
	if err := mdl.FeedSkeleton(sink); err != nil {
		return nil, err
	}
	return sink, nil
}

func (mdl *Model) ExportFbxDefault(name string) (*fbxbuilder.FBXBuilder, error) {
	f := fbxbuilder.NewFBXBuilder(name)
	if _, err := mdl.ExportFbx(f); err != nil {
		return nil, err
	}
	return f, nil
}
