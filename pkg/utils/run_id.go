package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable run identifier.
// Format: {operation}-{8charHexUUID}, e.g. "cycle-a3f8e2b1"
func GenerateRunID(operation string) string {
	return operation + "-" + generateShortUUID()
}

// GenerateFleetRunID creates a run identifier scoped to one fleet.
// Format: {operation}-{fleetSlug}-{8charHexUUID}
//
// Example:
//   - Input: operation="tick", fleetName="Hauler Fleet #2"
//   - Output: "tick-hauler-fleet-2-a3f8e2b1"
func GenerateFleetRunID(operation, fleetName string) string {
	slug := Slugify(fleetName)
	if slug == "" {
		return GenerateRunID(operation)
	}
	return operation + "-" + slug + "-" + generateShortUUID()
}

// Slugify lower-cases s and collapses every run of characters other than
// letters and digits into a single hyphen
//   - "Hauler Fleet #2" -> "hauler-fleet-2"
//   - "  MUD//CSS  " -> "mud-css"
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
