package schema

import "slices"

// Cardinality is the multiplicity of one side of a relationship.
type Cardinality string

const (
	CardinalityOne     Cardinality = "1"
	CardinalityZeroOne Cardinality = "0..1"
	CardinalityOneN    Cardinality = "1..n"
	CardinalityZeroN   Cardinality = "0..n"
)

// IsMany reports whether the upper bound is n.
func (c Cardinality) IsMany() bool {
	return c == CardinalityOneN || c == CardinalityZeroN
}

// IsOptional reports whether the lower bound is 0.
func (c Cardinality) IsOptional() bool {
	return c == CardinalityZeroOne || c == CardinalityZeroN
}

// ReferenceOperation is a referential action. The zero value means no action.
type ReferenceOperation string

const (
	OpNoAction   ReferenceOperation = ""
	OpRestrict   ReferenceOperation = "RESTRICT"
	OpCascade    ReferenceOperation = "CASCADE"
	OpSetNull    ReferenceOperation = "SET NULL"
	OpSetDefault ReferenceOperation = "SET DEFAULT"
)

// Display renders the operation for presentation, "NO ACTION" when unset.
func (op ReferenceOperation) Display() string {
	if op == OpNoAction {
		return "NO ACTION"
	}
	return string(op)
}

// Relationship is a foreign-key relationship between a parent (Source) and a
// child (Target) table. Name is its identity within the diagram.
type Relationship struct {
	Name   string
	Source string // reference of the parent table
	Target string // reference of the child table

	// FKColumnNames are child-side columns, matched positionally against the
	// parent key named by ReferredColumn.
	FKColumnNames []string

	ParentCardinality Cardinality
	ChildCardinality  Cardinality

	// ReferredColumn is the PK column name, a unique column name or a
	// compound unique key name on the parent table.
	ReferredColumn        string
	ReferredColumnOptions []string

	OnDeleteAction ReferenceOperation
	OnUpdateAction ReferenceOperation

	// Bendpoints is routing geometry, passed through untouched.
	Bendpoints any
}

// ReferredColumnValid reports whether ReferredColumn is one of ReferredColumnOptions.
// Nothing repairs a relationship for which this is false.
func (r *Relationship) ReferredColumnValid() bool {
	return slices.Contains(r.ReferredColumnOptions, r.ReferredColumn)
}

// Clone returns a shallow copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	c := *r
	return &c
}

// FindRelationship returns the relationship with the given name, or nil.
func FindRelationship(relationships []*Relationship, name string) *Relationship {
	for _, r := range relationships {
		if r.Name == name {
			return r
		}
	}
	return nil
}
