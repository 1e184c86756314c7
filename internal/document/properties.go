package document

import (
	"fmt"
	"sort"
	"strings"
)

// Property names as they appear in a custom resource's properties.
const (
	PropertyName                 = "Name"
	PropertyContent              = "Content"
	PropertyDocumentType         = "DocumentType"
	PropertyTargetType           = "TargetType"
	PropertyTags                 = "Tags"
	PropertyUpdateDefaultVersion = "UpdateDefaultVersion"
)

// ParseProperties normalizes a raw property map into a DesiredState.
//
// Properties delivered by CloudFormation are loosely typed: scalars usually
// arrive as strings, and tags may be given either as a mapping or as a list of
// {Key, Value} objects. Unknown properties (such as ServiceToken) are ignored.
// Presence checks are left to Validate so that delete events with sparse
// properties can still be parsed.
func ParseProperties(props map[string]interface{}) (DesiredState, error) {
	var state DesiredState

	name, err := optionalString(props, PropertyName)
	if err != nil {
		return DesiredState{}, err
	}
	state.Name = name

	state.Content = props[PropertyContent]

	if state.DocumentType, err = optionalString(props, PropertyDocumentType); err != nil {
		return DesiredState{}, err
	}
	if state.TargetType, err = optionalString(props, PropertyTargetType); err != nil {
		return DesiredState{}, err
	}

	if state.Tags, err = parseTags(props[PropertyTags]); err != nil {
		return DesiredState{}, err
	}

	state.UpdateDefaultVersion = parseFlag(props[PropertyUpdateDefaultVersion])

	return state, nil
}

// Validate checks the fields required for the given lifecycle kind.
func (s DesiredState) Validate(kind LifecycleKind) error {
	if s.Name == "" {
		return NewValidationError(PropertyName, "is required")
	}
	if kind != KindDelete && s.Content == nil {
		return NewValidationError(PropertyContent, "is required")
	}
	return nil
}

func optionalString(props map[string]interface{}, key string) (string, error) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, err := scalarString(raw)
	if err != nil {
		return "", NewValidationError(key, "%v", err)
	}
	return s, nil
}

// scalarString renders strings, booleans and numbers as strings.
func scalarString(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(val), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", v)
	}
}

// parseFlag treats only the case-insensitive token "true" as set.
func parseFlag(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "true")
	default:
		return strings.EqualFold(fmt.Sprint(val), "true")
	}
}

func parseTags(raw interface{}) (map[string]string, error) {
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, v := range val {
			out[k] = v
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]string, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s, err := scalarString(val[k])
			if err != nil {
				return nil, NewValidationError(PropertyTags, "tag %q: %v", k, err)
			}
			out[k] = s
		}
		return out, nil
	case []interface{}:
		out := make(map[string]string, len(val))
		for i, item := range val {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, NewValidationError(PropertyTags, "entry %d: expected an object with Key and Value, got %T", i, item)
			}
			key, err := scalarString(entry["Key"])
			if err != nil || key == "" {
				return nil, NewValidationError(PropertyTags, "entry %d: Key must be a non-empty string", i)
			}
			value, err := scalarString(entry["Value"])
			if err != nil {
				return nil, NewValidationError(PropertyTags, "entry %d (%s): %v", i, key, err)
			}
			if _, dup := out[key]; dup {
				return nil, NewValidationError(PropertyTags, "duplicate key %q", key)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, NewValidationError(PropertyTags, "expected a mapping or a list of {Key, Value}, got %T", raw)
	}
}
