package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynull/domain/core"
	"skynull/domain/sphere"
	"skynull/internal/testkit"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMapFileRoundTrip(t *testing.T) {
	f := testkit.GaussianField(4, 1)
	f[5] = sphere.Unseen

	path := filepath.Join(t.TempDir(), "map.txt")
	m := NewMapFile(4)
	require.NoError(t, m.WriteField(path, f))

	back, err := m.LoadField(path)
	require.NoError(t, err)
	require.Len(t, back, len(f))
	for i := range f {
		if !f.Seen(i) {
			assert.False(t, back.Seen(i), "pixel %d should stay masked", i)
			continue
		}
		assert.InDelta(t, f[i], back[i], 1e-9, "pixel %d", i)
	}
}

func TestMapFileCommentsAndBlanks(t *testing.T) {
	content := "# header comment\n\n1.0\n"
	for i := 1; i < 12; i++ {
		content += "2.5\n"
	}
	path := writeTemp(t, content)

	f, err := NewMapFile(1).LoadField(path)
	require.NoError(t, err)
	assert.Len(t, f, 12)
	assert.Equal(t, 1.0, f[0])
}

func TestMapFileMalformedValue(t *testing.T) {
	path := writeTemp(t, "1.0\nnot-a-number\n")
	_, err := NewMapFile(1).LoadField(path)
	assert.True(t, core.IsFatalIngestionError(err), "got %v", err)
}

func TestMapFileBadPixelCount(t *testing.T) {
	path := writeTemp(t, "1\n2\n3\n")
	_, err := NewMapFile(1).LoadField(path)
	assert.True(t, core.IsResolutionError(err), "got %v", err)
}

func TestMapFileDowngradesFinerInput(t *testing.T) {
	f := testkit.BandLimited(8, 4, 3)
	path := filepath.Join(t.TempDir(), "fine.txt")
	require.NoError(t, NewMapFile(8).WriteField(path, f))

	coarse, err := NewMapFile(2).LoadField(path)
	require.NoError(t, err)
	assert.Len(t, coarse, 12*2*2)
}

func TestMapFileRefusesCoarserInput(t *testing.T) {
	f := testkit.GaussianField(2, 1)
	path := filepath.Join(t.TempDir(), "coarse.txt")
	require.NoError(t, NewMapFile(2).WriteField(path, f))

	_, err := NewMapFile(8).LoadField(path)
	assert.True(t, core.IsResolutionError(err), "got %v", err)
}

func TestMapFileMissing(t *testing.T) {
	_, err := NewMapFile(4).LoadField(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
