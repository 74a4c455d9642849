// Package collection compiles a directory of individually authored JSON
// records into a single deterministic collection artifact, and verifies that
// a previously written artifact still matches the current sources.
//
// Records and metadata are handled as raw JSON bytes throughout: gjson reads
// fields, sjson derives modified copies, and tidwall/pretty renders the final
// document. Source files are never deserialized into maps, so authored key
// order survives and source bytes are never mutated.
package collection

// Variant describes one record family. The compiler is generic over this
// descriptor; the two concrete families are Skills and Competencies.
type Variant struct {
	// Name is the plural, human-facing family name ("skills").
	Name string

	// IDField is the primary identifier key of a record.
	IDField string

	// TypeFields are the accepted spellings of the record type tag, in the
	// order they are probed.
	TypeFields []string

	// TypeValue is the sentinel every record's type tag must equal.
	TypeValue string

	// MembershipField, when non-empty, names the record key that backlinks
	// to the owning collection. A present value must equal the collection
	// identity exactly.
	MembershipField string

	// ArrayField is the key the record sequence is published under in the
	// compiled artifact.
	ArrayField string

	// SortKeys is the whitelist of accepted --sort-by values; DefaultSortKey
	// is used when the caller supplies none. The key "id" always resolves to
	// IDField.
	SortKeys       []string
	DefaultSortKey string

	// Metadata contract: identifier key, accepted type tag spellings and the
	// sentinel the tag must equal.
	MetaIDField    string
	MetaTypeFields []string
	MetaTypeValue  string

	// AuthorField, when non-empty, names the metadata key whose value is the
	// collection-level default author for records.
	AuthorField string

	// Normalize derives a completed copy of a validated record. It must not
	// mutate its input.
	Normalize func(data []byte, meta *Metadata) ([]byte, error)
}

// Skills is the RichSkillDescriptor family. Records accept either "type" or
// "@type" as the tag spelling; absent membership and author fields are filled
// in from the collection metadata.
var Skills = Variant{
	Name:            "skills",
	IDField:         "id",
	TypeFields:      []string{"type", "@type"},
	TypeValue:       "RichSkillDescriptor",
	MembershipField: "isMemberOf",
	ArrayField:      "skills",
	SortKeys:        []string{"id", "skillName"},
	DefaultSortKey:  "skillName",
	MetaIDField:     "id",
	MetaTypeFields:  []string{"type", "@type"},
	MetaTypeValue:   "Collection",
	AuthorField:     "author",
	Normalize:       normalizeSkill,
}

// Competencies is the CTDL family. Records require exactly "@type" and are
// complete on disk, so normalization is the identity.
var Competencies = Variant{
	Name:           "competencies",
	IDField:        "@id",
	TypeFields:     []string{"@type"},
	TypeValue:      "ceterms:Competency",
	ArrayField:     "competencies",
	SortKeys:       []string{"id", "name"},
	DefaultSortKey: "name",
	MetaIDField:    "@id",
	MetaTypeFields: []string{"@type"},
	MetaTypeValue:  "ceterms:Collection",
	Normalize:      normalizePassthrough,
}

// ValidSortKey reports whether key is in the variant's whitelist.
func (v Variant) ValidSortKey(key string) bool {
	for _, k := range v.SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SortField resolves a whitelisted sort key to the record field it projects.
func (v Variant) SortField(key string) string {
	if key == "id" {
		return v.IDField
	}
	return key
}
