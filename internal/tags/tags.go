package tags

import (
	"sort"
)

// DefaultSystemPrefix is the key prefix used for the system tags when none is configured.
const DefaultSystemPrefix = "cfn"

// Tag is a single key/value pair attached to a document.
type Tag struct {
	Key   string `json:"Key" yaml:"Key"`
	Value string `json:"Value" yaml:"Value"`
}

// Owner identifies the stack resource that owns a document. It is the source
// of the three system tags.
type Owner struct {
	StackID   string
	StackName string
	LogicalID string
}

// SystemKeys returns the keys of the system tags for the given prefix, in the
// order Compute emits them.
func SystemKeys(prefix string) []string {
	if prefix == "" {
		prefix = DefaultSystemPrefix
	}
	return []string{
		prefix + ":stack-id",
		prefix + ":stack-name",
		prefix + ":logical-id",
	}
}

// Compute returns the full tag set for a document: the three system tags
// followed by the user tags sorted by key. A nil or empty user map yields
// only the system tags. User tags that collide with a system key are dropped.
func Compute(owner Owner, prefix string, user map[string]string) []Tag {
	keys := SystemKeys(prefix)
	result := make([]Tag, 0, len(keys)+len(user))
	result = append(result,
		Tag{Key: keys[0], Value: owner.StackID},
		Tag{Key: keys[1], Value: owner.StackName},
		Tag{Key: keys[2], Value: owner.LogicalID},
	)

	reserved := make(map[string]bool, len(keys))
	for _, k := range keys {
		reserved[k] = true
	}

	userKeys := make([]string, 0, len(user))
	for k := range user {
		if reserved[k] {
			continue
		}
		userKeys = append(userKeys, k)
	}
	sort.Strings(userKeys)

	for _, k := range userKeys {
		result = append(result, Tag{Key: k, Value: user[k]})
	}
	return result
}

// MissingKeys returns the keys present in oldTags whose key does not appear in
// newTags, in the order they appear in oldTags. Values are ignored: a tag whose
// value changed is not missing.
func MissingKeys(oldTags, newTags []Tag) []string {
	present := make(map[string]struct{}, len(newTags))
	for _, t := range newTags {
		present[t.Key] = struct{}{}
	}

	missing := []string{}
	for _, t := range oldTags {
		if _, ok := present[t.Key]; !ok {
			missing = append(missing, t.Key)
		}
	}
	return missing
}

// Equal reports whether a and b contain the same key/value pairs, regardless
// of order.
func Equal(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	index := make(map[string]string, len(a))
	for _, t := range a {
		index[t.Key] = t.Value
	}
	if len(index) != len(b) {
		return false
	}
	for _, t := range b {
		v, ok := index[t.Key]
		if !ok || v != t.Value {
			return false
		}
	}
	return true
}

// Keys returns the keys of the given tags in order.
func Keys(ts []Tag) []string {
	keys := make([]string, len(ts))
	for i, t := range ts {
		keys[i] = t.Key
	}
	return keys
}
