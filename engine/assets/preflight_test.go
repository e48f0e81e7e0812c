package assets

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPreflightReportsAvailability(t *testing.T) {
	dir := t.TempDir()
	assetsIn := []Asset{
		{Kind: KindModel, Path: writeFile(t, dir, "kit/scene.gltf", `{"asset":{"version":"2.0"}}`)},
		{Kind: KindEnvironment, Path: writeFile(t, dir, "sky.hdr", "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n")},
	}

	var mu sync.Mutex
	var seen []int
	report, err := Preflight(context.Background(), assetsIn,
		WithWorkers(2),
		WithProgress(func(loaded, total int, _ string) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 2, total)
			seen = append(seen, loaded)
		}),
	)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.True(t, report.Available(KindModel))
	assert.True(t, report.Available(KindEnvironment))
	assert.Empty(t, report.Missing())
	assert.ElementsMatch(t, []int{1, 2}, seen)
	assert.Equal(t, assetsIn[0].Path, report.Results[0].Path, "results keep input order")
}

func TestPreflightMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	assetsIn := []Asset{
		{Kind: KindModel, Path: filepath.Join(dir, "nope.gltf")},
		{Kind: KindEnvironment, Path: writeFile(t, dir, "sky.hdr", "not an hdr")},
	}

	report, err := Preflight(context.Background(), assetsIn)
	require.NoError(t, err)
	assert.False(t, report.Available(KindModel))
	assert.False(t, report.Available(KindEnvironment))
	assert.Len(t, report.Missing(), 2)
	for _, r := range report.Results {
		assert.Error(t, r.Err)
	}
}

func TestPreflightEmptyAndCancelled(t *testing.T) {
	report, err := Preflight(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.False(t, report.Available(KindEnvironment), "no asset of a kind is not available")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	report, err = Preflight(ctx, []Asset{{Kind: KindEnvironment, Path: writeFile(t, dir, "a.hdr", "#?RGBE\n")}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, report.Results[0].Available)
}

func TestUnknownExtensionOnlyNeedsToExist(t *testing.T) {
	dir := t.TempDir()
	report, err := Preflight(context.Background(), []Asset{{Kind: KindModel, Path: writeFile(t, dir, "scene.obj", "o cube\n")}})
	require.NoError(t, err)
	assert.True(t, report.Available(KindModel))
	assert.Equal(t, int64(7), report.Results[0].Size)
}
