package integrity

import (
	"slices"

	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
)

// UpdateRelation replaces the relationship named previous with next, keeping
// its position. Other elements are shared with the input.
func UpdateRelation(relationships []*schema.Relationship, next *schema.Relationship, previous string) ([]*schema.Relationship, error) {
	i := slices.IndexFunc(relationships, func(r *schema.Relationship) bool {
		return r.Name == previous
	})
	if i < 0 {
		return nil, newNotFound("relationship", previous)
	}
	out := slices.Clone(relationships)
	out[i] = next
	return out, nil
}

// RenameRelationshipRefs rewrites the source and target of rel that address
// the table previous so they address next instead. rel itself is returned
// when neither end matches.
func RenameRelationshipRefs(rel *schema.Relationship, previous, next string) *schema.Relationship {
	source, srcChanged := reference.Rename(rel.Source, previous, next)
	target, dstChanged := reference.Rename(rel.Target, previous, next)
	if !srcChanged && !dstChanged {
		return rel
	}
	out := rel.Clone()
	out.Source = source
	out.Target = target
	return out
}
