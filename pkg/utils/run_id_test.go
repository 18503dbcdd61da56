package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID("cycle")
	assert.Regexp(t, regexp.MustCompile(`^cycle-[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, GenerateRunID("cycle"))
}

func TestGenerateFleetRunID(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^tick-hauler-fleet-2-[0-9a-f]{8}$`), GenerateFleetRunID("tick", "Hauler Fleet #2"))
	assert.Regexp(t, regexp.MustCompile(`^tick-[0-9a-f]{8}$`), GenerateFleetRunID("tick", "###"))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hauler Fleet #2": "hauler-fleet-2",
		"  MUD//CSS  ":    "mud-css",
		"alpha":           "alpha",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
