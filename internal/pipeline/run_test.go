package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/schollz/convertwithmoss/internal/domain"
	"github.com/schollz/convertwithmoss/internal/formats/samplefile"
	"github.com/schollz/convertwithmoss/internal/wavfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNotifier struct {
	logs     []string
	errs     []error
	finished bool
}

func (n *testNotifier) Log(id string, params ...any) { n.logs = append(n.logs, id) }
func (n *testNotifier) LogError(id string, err error, params ...any) {
	n.errs = append(n.errs, err)
}
func (n *testNotifier) UpdateButtonStates(bool) {}
func (n *testNotifier) Finished(cancelled bool) { n.finished = true }

func writeTestWav(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, wavfile.Emit(&wavfile.File{
		Metadata: domain.AudioMetadata{Channels: 1, SampleRate: 44100, BitResolution: 16, NumberOfFrames: 4},
		PCM:      make([]byte, 8),
	}, &buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRunEmitsThroughSamplefilePlugin(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	writeTestWav(t, filepath.Join(srcDir, "kick.wav"))

	notifier := &testNotifier{}
	Run(Options{
		Detector:     &samplefile.Detector{},
		Creator:      &samplefile.Creator{},
		SourceFolder: srcDir,
		DestFolder:   dstDir,
		Mode:         ModeEmit,
		Notifier:     notifier,
	})

	assert.True(t, notifier.finished)
	assert.Empty(t, notifier.errs)
	_, err := os.Stat(filepath.Join(dstDir, "kick.wav"))
	assert.NoError(t, err)
}
