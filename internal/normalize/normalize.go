// Package normalize removes instance-specific state from workflow records and
// derives stable file names for them.
package normalize

import (
	"strings"

	"github.com/PolarWolf314/n8nsync/internal/record"
)

// InstanceMetadataKeys change on every save or differ between instances, so
// they are never written to the export.
var InstanceMetadataKeys = []string{"id", "createdAt", "updatedAt"}

// FileExtension is appended to every derived file name.
const FileExtension = ".json"

// MaxBaseNameLength caps the part of a file name before FileExtension. Most
// filesystems reject names longer than 255 bytes.
const MaxBaseNameLength = 200

// StripInstanceMetadata removes InstanceMetadataKeys from the top level of rec.
func StripInstanceMetadata(rec *record.Value) {
	for _, k := range InstanceMetadataKeys {
		rec.Delete(k)
	}
}

// ClearStaticData sets staticData to null, adding the key if it is missing.
func ClearStaticData(rec *record.Value) {
	rec.Set("staticData", record.NewNull())
}

// StripActive removes the active flag so imported workflows start disabled.
func StripActive(rec *record.Value) {
	rec.Delete("active")
}

// Name returns the workflow's display name, or "" if it has none.
func Name(rec *record.Value) string {
	v, ok := rec.Get("name")
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// FileName maps a workflow name to a file name: every character outside
// [a-zA-Z0-9] becomes '_', the result is lowercased and ".json" appended.
// Distinct names may map to the same file name.
func FileName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + len(FileExtension))
	n := 0
	for _, r := range name {
		if n == MaxBaseNameLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
		n++
	}
	b.WriteString(FileExtension)
	return b.String()
}
