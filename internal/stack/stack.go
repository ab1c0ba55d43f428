package stack

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateLogicalID is returned when two declarations share an ID.
	ErrDuplicateLogicalID = errors.New("duplicate logical ID")
	// ErrUnknownReference is returned when a declaration refers to an ID
	// that is not declared.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrDependencyCycle is returned when resources depend on each other.
	ErrDependencyCycle = errors.New("dependency cycle")
)

// Parameter is a template parameter resolved by CloudFormation at deploy
// time.
type Parameter struct {
	LogicalID   string
	Type        string
	Default     string
	Description string
}

// Resource is one declared resource.
type Resource struct {
	LogicalID  string
	Type       string
	Properties map[string]any
	Metadata   map[string]any
	DependsOn  []string
}

// Output is an exported stack value.
type Output struct {
	LogicalID   string
	Value       any
	Description string
	ExportName  string
}

// Stack collects declarations in registration order.
type Stack struct {
	Name        string
	Account     string
	Region      string
	Description string

	parameters []*Parameter
	resources  []*Resource
	outputs    []*Output
	ids        map[string]string
}

// New creates an empty stack. Account and Region may be empty when the
// target is left to the provider.
func New(name, account, region string) *Stack {
	return &Stack{
		Name:    name,
		Account: account,
		Region:  region,
		ids:     make(map[string]string),
	}
}

func (s *Stack) claim(id, kind string) error {
	if id == "" {
		return fmt.Errorf("%s logical ID must not be empty", kind)
	}
	if prev, ok := s.ids[id]; ok {
		return fmt.Errorf("%w: %q already declared as %s", ErrDuplicateLogicalID, id, prev)
	}
	s.ids[id] = kind
	return nil
}

// AddParameter declares a parameter.
func (s *Stack) AddParameter(p *Parameter) error {
	if err := s.claim(p.LogicalID, "parameter"); err != nil {
		return err
	}
	s.parameters = append(s.parameters, p)
	return nil
}

// AddResource declares a resource.
func (s *Stack) AddResource(r *Resource) error {
	if err := s.claim(r.LogicalID, "resource"); err != nil {
		return err
	}
	s.resources = append(s.resources, r)
	return nil
}

// AddOutput declares an output.
func (s *Stack) AddOutput(o *Output) error {
	if err := s.claim(o.LogicalID, "output"); err != nil {
		return err
	}
	s.outputs = append(s.outputs, o)
	return nil
}

// Parameters returns the declared parameters in registration order.
func (s *Stack) Parameters() []*Parameter { return s.parameters }

// Resources returns the declared resources in registration order.
func (s *Stack) Resources() []*Resource { return s.resources }

// Outputs returns the declared outputs in registration order.
func (s *Stack) Outputs() []*Output { return s.outputs }

// Resource returns the resource with the given logical ID, or nil.
func (s *Stack) Resource(id string) *Resource {
	for _, r := range s.resources {
		if r.LogicalID == id {
			return r
		}
	}
	return nil
}

// ResourcesOfType returns every resource of the given CloudFormation type.
func (s *Stack) ResourcesOfType(typ string) []*Resource {
	var out []*Resource
	for _, r := range s.resources {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// Dependencies returns the resource IDs r depends on, explicit ones first.
// Parameter references are not dependencies.
func (s *Stack) Dependencies(r *Resource) []string {
	seen := map[string]bool{}
	var deps []string
	add := func(id string) {
		if seen[id] || id == r.LogicalID || s.ids[id] == "parameter" {
			return
		}
		seen[id] = true
		deps = append(deps, id)
	}
	for _, id := range r.DependsOn {
		add(id)
	}
	for _, id := range references(r.Properties) {
		add(id)
	}
	return deps
}

// Validate checks that every reference resolves to a declaration.
func (s *Stack) Validate() error {
	check := func(owner string, ids []string) error {
		for _, id := range ids {
			if kind, ok := s.ids[id]; !ok || kind == "output" {
				return fmt.Errorf("%w: %s refers to %q", ErrUnknownReference, owner, id)
			}
		}
		return nil
	}

	for _, r := range s.resources {
		if err := check(r.LogicalID, append(append([]string{}, r.DependsOn...), references(r.Properties)...)); err != nil {
			return err
		}
	}
	for _, o := range s.outputs {
		if err := check(o.LogicalID, references(o.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Order returns the resources in an order where every resource comes
// after the resources it depends on. Ties keep registration order.
func (s *Stack) Order() ([]*Resource, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	position := make(map[string]int, len(s.resources))
	for i, r := range s.resources {
		position[r.LogicalID] = i
	}

	indegree := make(map[string]int, len(s.resources))
	dependents := make(map[string][]string)
	for _, r := range s.resources {
		deps := s.Dependencies(r)
		indegree[r.LogicalID] = len(deps)
		for _, d := range deps {
			dependents[d] = append(dependents[d], r.LogicalID)
		}
	}

	var ready []string
	for _, r := range s.resources {
		if indegree[r.LogicalID] == 0 {
			ready = append(ready, r.LogicalID)
		}
	}

	ordered := make([]*Resource, 0, len(s.resources))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return position[ready[i]] < position[ready[j]] })
		id := ready[0]
		ready = ready[1:]
		ordered = append(ordered, s.resources[position[id]])

		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(ordered) != len(s.resources) {
		var stuck []string
		for _, r := range s.resources {
			if indegree[r.LogicalID] > 0 {
				stuck = append(stuck, r.LogicalID)
			}
		}
		return nil, fmt.Errorf("%w between %v", ErrDependencyCycle, stuck)
	}
	return ordered, nil
}
