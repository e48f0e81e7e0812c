package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"window": { "title": "Tavern", "width": 800 },
		"camera": { "minPolarAngle": 45, "maxPolarAngle": 90 },
		"tween": { "duration": "2s", "tiltDuration": 250, "tiltAngle": 10 },
		"viewer": { "autoRotate": false }
	}`)
	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))

	w := GetWindowConfig()
	assert.Equal(t, "Tavern", w.Title)
	assert.Equal(t, 800, w.Width)
	assert.Equal(t, 720, w.Height, "unset keys fall back to defaults")

	c := GetCameraConfig()
	assert.Equal(t, float32(45), c.MinPolarAngle)
	assert.Equal(t, float32(90), c.MaxPolarAngle)
	assert.Equal(t, float32(20), c.MaxDistance)

	tw := GetTweenConfig()
	assert.Equal(t, 2*time.Second, tw.Duration)
	assert.Equal(t, 250*time.Millisecond, tw.TiltDuration)
	assert.Equal(t, float32(10), tw.TiltAngle)

	assert.False(t, GetViewerConfig().AutoRotate)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, WindowConfig{
		Title: "Oxy Viewer", Width: 1280, Height: 720,
		MinWidth: 600, MinHeight: 400, MaxWidth: 3840, MaxHeight: 2160,
	}, GetWindowConfig())
	assert.Equal(t, EngineConfig{TickRate: 60}, GetEngineConfig())
	assert.Equal(t, RendererConfig{VSync: true}, GetRendererConfig())

	c := GetCameraConfig()
	assert.Equal(t, float32(75), c.Fov)
	assert.InDelta(t, 0.1, c.Near, 1e-6)
	assert.Equal(t, float32(1000), c.Far)
	assert.Equal(t, float32(1), c.MinDistance)
	assert.Equal(t, float32(20), c.MaxDistance)
	assert.Equal(t, float32(30), c.MinPolarAngle)
	assert.Equal(t, float32(120), c.MaxPolarAngle)
	assert.InDelta(t, 0.01, c.PanSpeed, 1e-6)

	tw := GetTweenConfig()
	assert.Equal(t, 1500*time.Millisecond, tw.Duration)
	assert.Equal(t, 500*time.Millisecond, tw.TiltDuration)
	assert.Equal(t, float32(7.5), tw.TiltAngle)
	assert.Equal(t, float32(5), tw.Standoff)
	assert.Equal(t, float32(1.5), tw.MinHeight)

	v := GetViewerConfig()
	assert.True(t, v.AutoRotate)
	assert.InDelta(t, 0.06, v.AutoRotateSpeed, 1e-6)
	assert.InDelta(t, 0.2, v.MarkerRadius, 1e-6)
	assert.False(t, v.NightMode)

	assert.Equal(t, SceneConfig{AssetDir: ".", Workers: 4}, GetSceneConfig())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("a", "b")
	viper.Set("n", 3)
	viper.Set("f", true)
	assert.Equal(t, "b", GetString("a"))
	assert.Equal(t, 3, GetInt("n"))
	assert.True(t, GetBool("f"))
}
