package collection

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ValidateRecord confirms one parsed record satisfies its variant's contract:
// JSON-object shape, a non-empty string primary identifier, a type tag equal
// to the variant sentinel, and (when the variant declares a membership field)
// a backlink that matches the collection identity exactly. The first
// violation is returned; all violations are fatal to the whole compilation.
func ValidateRecord(data []byte, path string, v Variant, identity string) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s: %w: invalid JSON", path, ErrMalformedRecord)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("%s: %w: not a JSON object", path, ErrMalformedRecord)
	}

	id := field(doc, v.IDField)
	if !id.Exists() {
		return fmt.Errorf("%s: %w %q", path, ErrMissingField, v.IDField)
	}
	if id.Type != gjson.String || id.Str == "" {
		return fmt.Errorf("%s: %w: %q must be a non-empty string", path, ErrMalformedRecord, v.IDField)
	}

	tag, ok := firstField(doc, v.TypeFields)
	if !ok {
		return fmt.Errorf("%s: %w %s", path, ErrMissingField, fieldList(v.TypeFields))
	}
	if tag.String() != v.TypeValue {
		return fmt.Errorf("%s: %w: got %q, want %q", path, ErrTypeMismatch, tag.String(), v.TypeValue)
	}

	if v.MembershipField != "" {
		if member := field(doc, v.MembershipField); member.Exists() && member.String() != identity {
			return fmt.Errorf("%s: %w: %s is %q, collection is %q",
				path, ErrMembershipMismatch, v.MembershipField, member.String(), identity)
		}
	}
	return nil
}

// field returns the value of a top-level key by literal match. Record keys
// may contain "@" and ":" which collide with gjson path syntax, so object
// iteration is used instead of path queries.
func field(doc gjson.Result, name string) gjson.Result {
	var out gjson.Result
	doc.ForEach(func(key, value gjson.Result) bool {
		if key.Str == name {
			out = value
			return false
		}
		return true
	})
	return out
}

// firstField returns the value of the first present key among names.
func firstField(doc gjson.Result, names []string) (gjson.Result, bool) {
	for _, name := range names {
		if value := field(doc, name); value.Exists() {
			return value, true
		}
	}
	return gjson.Result{}, false
}

func fieldList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, " or ")
}
