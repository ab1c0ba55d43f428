package tags

import "sort"

// Standard tag keys.
const (
	// KeyName is the tag the EC2 console shows as the resource name.
	KeyName = "Name"

	// KeyStack identifies which stack a resource belongs to
	KeyStack = "ec2stack:stack"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "ec2stack:managed-by"

	// ManagedByEC2Stack is the only KeyManagedBy value we write.
	ManagedByEC2Stack = "ec2stack"
)

// Tag is a single CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Builder provides a fluent interface for building resource tags.
type Builder struct {
	tags map[string]string
}

// NewBuilder creates a builder with the stack and managed-by tags pre-set.
func NewBuilder(stackName string) *Builder {
	return &Builder{
		tags: map[string]string{
			KeyStack:     stackName,
			KeyManagedBy: ManagedByEC2Stack,
		},
	}
}

// WithName sets the Name tag.
func (b *Builder) WithName(name string) *Builder {
	b.tags[KeyName] = name
	return b
}

// Merge adds user supplied tags. Reserved ec2stack: keys are not overridden.
func (b *Builder) Merge(extra map[string]string) *Builder {
	for k, v := range extra {
		if k == KeyStack || k == KeyManagedBy {
			continue
		}
		b.tags[k] = v
	}
	return b
}

// Build returns a copy of the tags map.
func (b *Builder) Build() map[string]string {
	result := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		result[k] = v
	}
	return result
}

// List returns the tags sorted by key, the shape CloudFormation expects.
// Sorting keeps synthesized templates byte-stable.
func (b *Builder) List() []Tag {
	keys := make([]string, 0, len(b.tags))
	for k := range b.tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]Tag, 0, len(keys))
	for _, k := range keys {
		list = append(list, Tag{Key: k, Value: b.tags[k]})
	}
	return list
}
