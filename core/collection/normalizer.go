package collection

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// normalizeSkill fills in the skill-family defaults on a validated record:
// an absent membership backlink becomes the collection identity, and an
// absent author becomes the collection-level author copied verbatim. sjson
// returns a fresh byte slice, so the source record is never touched;
// defaulted keys are appended after the authored ones.
func normalizeSkill(data []byte, meta *Metadata) ([]byte, error) {
	doc := gjson.ParseBytes(data)
	out := data
	var err error

	if !field(doc, "isMemberOf").Exists() {
		out, err = sjson.SetBytes(out, "isMemberOf", meta.Identity)
		if err != nil {
			return nil, err
		}
	}
	if meta.AuthorRaw != "" && !field(doc, "author").Exists() {
		out, err = sjson.SetRawBytes(out, "author", []byte(meta.AuthorRaw))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// normalizePassthrough is for families whose records are complete on disk.
func normalizePassthrough(data []byte, _ *Metadata) ([]byte, error) {
	return data, nil
}
