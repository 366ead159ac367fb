package pipeline

import (
	"strings"

	"github.com/schollz/convertwithmoss/internal/domain"
)

// reservedChars are the filesystem-reserved characters spec §8's
// invariant 9 keeps out of every zone name.
const reservedChars = `\/:*?"<>|`

// sanitizeName replaces every filesystem-reserved character with "_".
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reservedChars, r) {
			return '_'
		}
		return r
	}, name)
}

// ensureSafeSampleFileNames rewrites every zone name of m in place so
// none contains a filesystem-reserved character.
func ensureSafeSampleFileNames(m *domain.MultisampleSource) {
	for _, g := range m.Groups {
		for _, z := range g.Zones {
			z.Name = sanitizeName(z.Name)
		}
	}
}
