package stack

// Intrinsic functions. Each is a single-key map so it serializes to the
// exact JSON shape CloudFormation expects.

// Ref references a parameter or resource by logical ID.
func Ref(logicalID string) map[string]any {
	return map[string]any{"Ref": logicalID}
}

// GetAtt reads an attribute of a resource.
func GetAtt(logicalID, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{logicalID, attribute}}
}

// Join concatenates parts with delimiter.
func Join(delimiter string, parts ...any) map[string]any {
	return map[string]any{"Fn::Join": []any{delimiter, parts}}
}

// Sub substitutes ${Var} references in s.
func Sub(s string) map[string]any {
	return map[string]any{"Fn::Sub": s}
}

// Base64 encodes value.
func Base64(value any) map[string]any {
	return map[string]any{"Fn::Base64": value}
}

// Pseudo parameters.
const (
	PseudoRegion    = "AWS::Region"
	PseudoStackName = "AWS::StackName"
	PseudoAccountID = "AWS::AccountId"
	PseudoPartition = "AWS::Partition"
	PseudoStackID   = "AWS::StackId"
)

func isPseudo(id string) bool {
	switch id {
	case PseudoRegion, PseudoStackName, PseudoAccountID, PseudoPartition, PseudoStackID, "AWS::URLSuffix", "AWS::NoValue":
		return true
	}
	return false
}

// references walks v and returns every logical ID it refers to through
// Ref or Fn::GetAtt, in first-seen order.
func references(v any) []string {
	var out []string
	seen := map[string]bool{}
	add := func(id string) {
		if id == "" || isPseudo(id) || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}

	var walk func(any)
	walk = func(v any) {
		switch t := v.(type) {
		case map[string]any:
			if id, ok := t["Ref"].(string); ok && len(t) == 1 {
				add(id)
				return
			}
			if args, ok := t["Fn::GetAtt"].([]any); ok && len(t) == 1 && len(args) > 0 {
				if id, ok := args[0].(string); ok {
					add(id)
				}
				return
			}
			for _, child := range t {
				walk(child)
			}
		case []any:
			for _, child := range t {
				walk(child)
			}
		case []map[string]any:
			for _, child := range t {
				walk(child)
			}
		}
	}
	walk(v)
	return out
}
