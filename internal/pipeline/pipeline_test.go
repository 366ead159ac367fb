package pipeline

import (
	"strings"
	"testing"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenameTableSkipsBlankAndComments(t *testing.T) {
	table, err := parseRenameTable(strings.NewReader("# header\n\nkick,Kick\nsnare,Snare\nkick,Kick2\n"))
	require.NoError(t, err)
	got, found := table.Apply("kick")
	assert.True(t, found)
	assert.Equal(t, "Kick2", got)
	_, found = table.Apply("hat")
	assert.False(t, found)
}

func TestSanitizeNameReplacesReservedChars(t *testing.T) {
	assert.Equal(t, "a_b_c_d", sanitizeName(`a/b:c*d`))
}

func TestEnsureSafeSampleFileNamesRewritesZones(t *testing.T) {
	ms := &domain.MultisampleSource{Groups: []*domain.Group{{Zones: []*domain.SampleZone{
		domain.NewSampleZone("bad/name"),
	}}}}
	ensureSafeSampleFileNames(ms)
	assert.Equal(t, "bad_name", ms.Groups[0].Zones[0].Name)
}
