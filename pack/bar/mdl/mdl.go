package mdl

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/openkh-tools/mdlx_browser/pack/bar"
	"github.com/openkh-tools/mdlx_browser/utils"
)

// The model blob starts with 0x90 bytes of preamble that the skeleton
// loader never touches, the header proper sits behind it.
const (
	HEADER_OFFSET = 0x90
	HEADER_SIZE   = 0x20
	BONE_SIZE     = 0x40
)

type Bone struct {
	// Id is the position in the bone table, which the engine treats as
	// ground truth. RawId is the index field stored in the record, kept
	// as read, see Validate.
	Id     uint16
	RawId  uint16
	Parent int32

	// 4th scale/translation component is a homogeneous pad, not used by
	// the skeleton geometry.
	Scale       mgl32.Vec4
	Rotation    mgl32.Vec4
	Translation mgl32.Vec4
}

func (b *Bone) IsRoot() bool {
	return b.Parent < 0
}

// Quat interprets the rotation field as an x,y,z,w quaternion.
func (b *Bone) Quat() mgl32.Quat {
	return mgl32.Quat{W: b.Rotation.W(), V: b.Rotation.Vec3()}
}

type Model struct {
	Version            uint32
	NextHeaderOffset   uint32
	BoneTableOffset    uint32
	UnknownTableOffset uint32
	SubpartCount       uint16

	Bones []Bone
}

// NewFromData decodes the model header and bone table. Decoding is
// permissive: parent references and the stored bone indexes are passed
// through as read, run Validate to audit them. Any region that falls
// outside the blob aborts with bar.ErrTruncated, there are no partial
// skeletons.
func NewFromData(blob []byte) (*Model, error) {
	if len(blob) < HEADER_OFFSET+HEADER_SIZE {
		return nil, errors.Wrapf(bar.ErrTruncated, "mdl: %d byte blob, header needs %d",
			len(blob), HEADER_OFFSET+HEADER_SIZE)
	}

	c := utils.NewCursor(blob).Seek(HEADER_OFFSET)

	mdl := new(Model)
	mdl.Version = c.U32()
	c.Skip(8)
	mdl.NextHeaderOffset = c.U32()
	boneCount := c.U16()
	c.Skip(2)
	mdl.BoneTableOffset = c.U32()
	mdl.UnknownTableOffset = c.U32()
	mdl.SubpartCount = c.U16()
	c.Skip(2)
	if err := c.Err(); err != nil {
		return nil, errors.Wrapf(bar.ErrTruncated, "mdl: header: %v", err)
	}

	tableEnd := int64(mdl.BoneTableOffset) + int64(boneCount)*BONE_SIZE
	if tableEnd > int64(len(blob)) {
		return nil, errors.Wrapf(bar.ErrTruncated, "mdl: bone table [0x%x:0x%x] outside %d byte blob",
			mdl.BoneTableOffset, tableEnd, len(blob))
	}

	mdl.Bones = make([]Bone, boneCount)
	for i := range mdl.Bones {
		bc := utils.NewCursor(blob[int(mdl.BoneTableOffset)+i*BONE_SIZE:][:BONE_SIZE])

		bone := &mdl.Bones[i]
		bone.Id = uint16(i)
		bone.RawId = bc.U16()
		bc.Skip(2)
		bone.Parent = bc.I32()
		bc.Skip(8)
		bone.Scale = bc.Vec4()
		bone.Rotation = bc.Vec4()
		bone.Translation = bc.Vec4()
	}

	return mdl, nil
}

func init() {
	bar.SetHandler(bar.KIND_MODEL, func(e *bar.Entry, data []byte) (bar.File, error) {
		return NewFromData(data)
	})
}
