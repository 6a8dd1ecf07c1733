package harvest

import "strings"

// NormalizePartitionField strips a leading path-style separator and
// surrounding whitespace from a configured partition field, so "/id" and
// " id " both resolve to "id".
func NormalizePartitionField(field string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(field), "/"))
}

// ResolvePartitionValue maps a normalized partition field to the concrete
// partition value for one item: the fingerprint itself when the field is the
// identity field, otherwise the configured constant. This indirection lets
// the storage layer's physical partitioning vary without touching pipeline
// logic.
func ResolvePartitionValue(normalizedField, fingerprint, constant string) string {
	if normalizedField == "id" {
		return fingerprint
	}
	return constant
}
