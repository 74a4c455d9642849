package collection

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Metadata is the loaded, validated collection metadata. Raw is copied
// verbatim into the compiled output's top-level fields; Identity is the
// collection identifier records may backlink to; AuthorRaw is the raw JSON
// value of the collection-level default author, empty when the variant has
// none or the metadata omits it.
type Metadata struct {
	Raw       []byte
	Identity  string
	AuthorRaw string
}

// LoadMetadata reads and validates the collection metadata file against the
// variant's metadata contract. Every violation, including an unreadable
// file, reports ErrInvalidMetadata with the offending path and key.
func LoadMetadata(path string, v Variant) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidMetadata, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w: invalid JSON", path, ErrInvalidMetadata)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%s: %w: not a JSON object", path, ErrInvalidMetadata)
	}

	id := field(doc, v.MetaIDField)
	if !id.Exists() {
		return nil, fmt.Errorf("%s: %w: missing %q", path, ErrInvalidMetadata, v.MetaIDField)
	}
	if id.Type != gjson.String || id.Str == "" {
		return nil, fmt.Errorf("%s: %w: %q must be a non-empty string", path, ErrInvalidMetadata, v.MetaIDField)
	}

	tag, ok := firstField(doc, v.MetaTypeFields)
	if !ok {
		return nil, fmt.Errorf("%s: %w: missing %s", path, ErrInvalidMetadata, fieldList(v.MetaTypeFields))
	}
	if tag.String() != v.MetaTypeValue {
		return nil, fmt.Errorf("%s: %w: type tag is %q, want %q", path, ErrInvalidMetadata, tag.String(), v.MetaTypeValue)
	}

	meta := &Metadata{
		Raw:      append([]byte(nil), data...),
		Identity: id.Str,
	}
	if v.AuthorField != "" {
		if author := field(doc, v.AuthorField); author.Exists() {
			meta.AuthorRaw = author.Raw
		}
	}
	return meta, nil
}
