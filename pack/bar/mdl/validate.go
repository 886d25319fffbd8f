package mdl

import "fmt"

type ValidationIssue struct {
	BoneId  uint16
	Message string
}

func (vi ValidationIssue) String() string {
	return fmt.Sprintf("bone %d: %s", vi.BoneId, vi.Message)
}

// Validate audits the invariants the decoder itself does not enforce:
// parent references must point at an earlier bone or be a negative root
// sentinel, and the stored index field should match the table position.
// The format is reverse engineered, so violations are reported instead
// of rejected.
func (mdl *Model) Validate() []ValidationIssue {
	var issues []ValidationIssue

	report := func(id uint16, format string, a ...interface{}) {
		issues = append(issues, ValidationIssue{BoneId: id, Message: fmt.Sprintf(format, a...)})
	}

	for i := range mdl.Bones {
		bone := &mdl.Bones[i]

		if bone.RawId != bone.Id {
			report(bone.Id, "stored index %d does not match table position", bone.RawId)
		}

		if bone.Parent < 0 {
			continue
		}
		switch {
		case bone.Parent >= int32(len(mdl.Bones)):
			report(bone.Id, "parent %d out of range, %d bones total", bone.Parent, len(mdl.Bones))
		case bone.Parent == int32(bone.Id):
			report(bone.Id, "bone is its own parent")
		case bone.Parent > int32(bone.Id):
			report(bone.Id, "forward parent reference %d, hierarchy must be parent-first", bone.Parent)
		}
	}

	return issues
}
