package collection

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Assemble builds the compiled collection document: the metadata object with
// the record sequence set under arrayField as its last key. A pre-existing
// arrayField in the metadata is removed first so the sequence always lands
// at the end.
func Assemble(meta *Metadata, records [][]byte, arrayField string) ([]byte, error) {
	doc := meta.Raw
	if field(gjson.ParseBytes(doc), arrayField).Exists() {
		var err error
		doc, err = sjson.DeleteBytes(doc, arrayField)
		if err != nil {
			return nil, fmt.Errorf("assemble: drop %q: %w", arrayField, err)
		}
	}

	var arr bytes.Buffer
	arr.WriteByte('[')
	for i, body := range records {
		if i > 0 {
			arr.WriteByte(',')
		}
		arr.Write(body)
	}
	arr.WriteByte(']')

	doc, err := sjson.SetRawBytes(doc, arrayField, arr.Bytes())
	if err != nil {
		return nil, fmt.Errorf("assemble: set %q: %w", arrayField, err)
	}
	return doc, nil
}

// Render produces the canonical artifact text: two-space indentation, key
// order preserved as inserted, exactly one trailing line break. Pure —
// identical input bytes always yield identical output bytes, which is what
// makes byte comparison usable for change detection.
func Render(doc []byte) []byte {
	out := pretty.PrettyOptions(doc, &pretty.Options{
		Width:    80,
		Indent:   "  ",
		SortKeys: false,
	})
	out = bytes.TrimRight(out, "\n")
	return append(out, '\n')
}

// Fingerprint is the sha256 hex digest of an artifact, for quick equality
// checks and logging. It is never persisted.
func Fingerprint(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
