package collection

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func skillJSON(id, name string) string {
	return fmt.Sprintf(`{
  "id": %q,
  "type": "RichSkillDescriptor",
  "skillName": %q,
  "skillStatement": "Statement for %s"
}`, id, name, name)
}

// newSkillsFixture lays out a metadata file and records under dir and
// returns ready-to-use compile options.
func newSkillsFixture(t *testing.T, records map[string]string) Options {
	t.Helper()
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "collection.json")
	writeFile(t, metaPath, skillsMetaJSON)
	for name, content := range records {
		writeFile(t, filepath.Join(dir, "skills", name), content)
	}
	return Options{
		MetaPath:   metaPath,
		RecordsDir: filepath.Join(dir, "skills"),
		SortKey:    "skillName",
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"pm-001.json": skillJSON("pm-001", "Planning"),
		"pm-002.json": skillJSON("pm-002", "Budgeting"),
	})

	first, err := Compile(opts, Skills)
	require.NoError(t, err)
	second, err := Compile(opts, Skills)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, testIdentity, first.Identity)
}

// The artifact must not depend on how the record store is laid out on disk:
// the same record set in a flat directory and in nested subdirectories has
// to compile to byte-identical output.
func TestCompileIndependentOfDirectoryShape(t *testing.T) {
	flat := newSkillsFixture(t, map[string]string{
		"pm-001.json": skillJSON("pm-001", "Planning"),
		"pm-002.json": skillJSON("pm-002", "Budgeting"),
		"pm-003.json": skillJSON("pm-003", "Risk"),
	})
	nested := newSkillsFixture(t, map[string]string{
		"zz/pm-001.json":    skillJSON("pm-001", "Planning"),
		"aa/bb/pm-002.json": skillJSON("pm-002", "Budgeting"),
		"renamed-003.json":  skillJSON("pm-003", "Risk"),
	})

	a, err := Compile(flat, Skills)
	require.NoError(t, err)
	b, err := Compile(nested, Skills)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes, b.Bytes)
}

func TestCompileSortStability(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		// Written in reverse of the expected output order.
		"1.json": skillJSON("pm-010", "Risk"),
		"2.json": skillJSON("pm-002", "Risk"),
		"3.json": skillJSON("pm-900", "agility"),
	})

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)

	var ids []string
	for _, rec := range gjson.GetBytes(artifact.Bytes, "skills").Array() {
		ids = append(ids, field(rec, "id").Str)
	}
	// "agility" sorts before "Risk" case-insensitively; equal keys break the
	// tie on the identifier.
	assert.Equal(t, []string{"pm-900", "pm-002", "pm-010"}, ids)
}

func TestCompileSortByID(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"1.json": skillJSON("pm-010", "Alpha"),
		"2.json": skillJSON("pm-002", "Zulu"),
	})
	opts.SortKey = "id"

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)

	skills := gjson.GetBytes(artifact.Bytes, "skills").Array()
	assert.Equal(t, "pm-002", field(skills[0], "id").Str)
	assert.Equal(t, "pm-010", field(skills[1], "id").Str)
}

func TestCompileRejectsUnknownSortKey(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{"a.json": skillJSON("a", "A")})
	opts.SortKey = "created"

	_, err := Compile(opts, Skills)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompileAppliesAuthorDefault(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"bare.json":     skillJSON("pm-001", "Planning"),
		"authored.json": `{"id": "pm-002", "type": "RichSkillDescriptor", "skillName": "Budgeting", "author": "Own Author"}`,
	})

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)

	skills := gjson.GetBytes(artifact.Bytes, "skills").Array()
	require.Len(t, skills, 2)
	// Sorted by skillName: Budgeting first.
	assert.Equal(t, "Own Author", field(skills[0], "author").Str)
	assert.Equal(t, "Example Org", field(skills[1], "author").Get("name").Str)
	assert.Equal(t, testIdentity, field(skills[1], "isMemberOf").Str)
}

func TestCompileMembershipMismatch(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"good.json":  skillJSON("pm-001", "Planning"),
		"wrong.json": `{"id": "pm-002", "type": "RichSkillDescriptor", "skillName": "Risk", "isMemberOf": "https://other.example.com/collections/qa"}`,
	})

	_, err := Compile(opts, Skills)
	require.ErrorIs(t, err, ErrMembershipMismatch)
	assert.Contains(t, err.Error(), "wrong.json")
}

func TestCompileFailFastOnBadRecord(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"good.json": skillJSON("pm-001", "Planning"),
	})
	out := filepath.Join(filepath.Dir(opts.MetaPath), "dist", "collection.json")

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)
	require.NoError(t, Write(out, artifact.Bytes))

	// A record missing its identifier invalidates the whole batch; the
	// pre-existing artifact must remain untouched.
	writeFile(t, filepath.Join(opts.RecordsDir, "broken.json"), `{"type": "RichSkillDescriptor"}`)

	_, err = Compile(opts, Skills)
	require.ErrorIs(t, err, ErrMissingField)

	onDisk, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, artifact.Bytes, onDisk)
}

func TestCompileEmptyRecordsDir(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "collection.json")
	writeFile(t, metaPath, skillsMetaJSON)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skills"), 0o755))

	_, err := Compile(Options{MetaPath: metaPath, RecordsDir: filepath.Join(dir, "skills"), SortKey: "id"}, Skills)
	require.ErrorIs(t, err, ErrEmptyCollection)
}

func TestCompileInvalidMetadata(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{"a.json": skillJSON("a", "A")})
	writeFile(t, opts.MetaPath, `{"id": "x", "type": "NotACollection"}`)

	_, err := Compile(opts, Skills)
	require.ErrorIs(t, err, ErrInvalidMetadata)
}

func TestWriteThenCheck(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{"a.json": skillJSON("pm-001", "Planning")})
	out := filepath.Join(filepath.Dir(opts.MetaPath), "dist", "collection.json")

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)
	require.NoError(t, Write(out, artifact.Bytes))
	require.NoError(t, Check(out, artifact.Bytes))
}

func TestCheckDetectsStaleArtifact(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{"a.json": skillJSON("pm-001", "Planning")})
	out := filepath.Join(filepath.Dir(opts.MetaPath), "collection.compiled.json")

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)
	require.NoError(t, Write(out, artifact.Bytes))

	writeFile(t, filepath.Join(opts.RecordsDir, "a.json"), skillJSON("pm-001", "Planning (revised)"))

	fresh, err := Compile(opts, Skills)
	require.NoError(t, err)

	err = Check(out, fresh.Bytes)
	require.ErrorIs(t, err, ErrStaleArtifact)
	assert.Contains(t, err.Error(), out)
}

func TestCheckTreatsMissingArtifactAsEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "absent.json")

	require.NoError(t, Check(out, nil))
	require.ErrorIs(t, Check(out, []byte("content\n")), ErrStaleArtifact)
}

func TestCompileCompetencies(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "competencies.json")
	writeFile(t, metaPath, `{
  "@id": "https://credentials.example.com/collections/ce",
  "@type": "ceterms:Collection",
  "name": "CE Collection"
}`)
	writeFile(t, filepath.Join(dir, "records", "b.json"),
		`{"@id": "ce-2", "@type": "ceterms:Competency", "name": "Budgeting"}`)
	writeFile(t, filepath.Join(dir, "records", "a.json"),
		`{"@id": "ce-1", "@type": "ceterms:Competency", "name": "Scheduling"}`)

	artifact, err := Compile(Options{
		MetaPath:   metaPath,
		RecordsDir: filepath.Join(dir, "records"),
		SortKey:    "name",
	}, Competencies)
	require.NoError(t, err)

	records := gjson.GetBytes(artifact.Bytes, "competencies").Array()
	require.Len(t, records, 2)
	assert.Equal(t, "ce-2", field(records[0], "@id").Str)
	assert.Equal(t, "ce-1", field(records[1], "@id").Str)
	// Pass-through family: no skill defaults may leak in.
	assert.False(t, field(records[0], "isMemberOf").Exists())
	assert.False(t, field(records[0], "author").Exists())
}

func TestCompileUsesDefaultSortKey(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"1.json": skillJSON("pm-002", "Zulu"),
		"2.json": skillJSON("pm-001", "Alpha"),
	})
	opts.SortKey = ""

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)

	skills := gjson.GetBytes(artifact.Bytes, "skills").Array()
	assert.Equal(t, "pm-001", field(skills[0], "id").Str)
}

func TestCompileMissingSortKeyProjectsEmpty(t *testing.T) {
	opts := newSkillsFixture(t, map[string]string{
		"named.json":   skillJSON("pm-002", "Planning"),
		"unnamed.json": `{"id": "pm-001", "type": "RichSkillDescriptor"}`,
	})

	artifact, err := Compile(opts, Skills)
	require.NoError(t, err)

	// The record without a skillName projects to "" and sorts first.
	skills := gjson.GetBytes(artifact.Bytes, "skills").Array()
	assert.Equal(t, "pm-001", field(skills[0], "id").Str)
	assert.Equal(t, "pm-002", field(skills[1], "id").Str)
}
