package mdl

import "github.com/go-gl/mathgl/mgl32"

// SkeletonSink is implemented by host adapters that turn a decoded
// skeleton into their own joint objects (glTF nodes, FBX models, an
// armature in a modeling tool). Joints arrive in table order; parent is
// passed as stored, including negative root sentinels and indexes the
// adapter may consider invalid.
type SkeletonSink interface {
	CreateJoint(id uint16, parent int32, scale, rotation, translation mgl32.Vec4) error
}

func (mdl *Model) FeedSkeleton(sink SkeletonSink) error {
	for i := range mdl.Bones {
		bone := &mdl.Bones[i]
		if err := sink.CreateJoint(bone.Id, bone.Parent, bone.Scale, bone.Rotation, bone.Translation); err != nil {
			return err
		}
	}
	return nil
}
