package sfz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBasicRegion(t *testing.T) {
	text := []byte(`
<group>
<region>
sample=kick.wav lokey=36 hikey=36 pitch_keycenter=36 lovel=1 hivel=127
`)
	ms, err := Decode(text, t.TempDir())
	require.Error(t, err) // sample file does not exist in the temp dir
	_ = ms
}

func TestDecodeEmptyIsInvalid(t *testing.T) {
	_, err := Decode([]byte(""), t.TempDir())
	assert.Error(t, err) // no groups -> invalid multisample
}
