// Package config loads viewer settings from viewer.cfg.json through viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file Load looks for.
const FileName = "viewer.cfg.json"

// WindowConfig holds window settings.
type WindowConfig struct {
	Title     string `json:"title" mapstructure:"title"`
	Width     int    `json:"width" mapstructure:"width"`
	Height    int    `json:"height" mapstructure:"height"`
	MinWidth  int    `json:"minWidth" mapstructure:"minWidth"`
	MinHeight int    `json:"minHeight" mapstructure:"minHeight"`
	MaxWidth  int    `json:"maxWidth" mapstructure:"maxWidth"`
	MaxHeight int    `json:"maxHeight" mapstructure:"maxHeight"`
}

// EngineConfig holds engine loop settings.
type EngineConfig struct {
	TickRate   float64 `json:"tickRate" mapstructure:"tickRate"`
	FrameLimit float64 `json:"frameLimit" mapstructure:"frameLimit"`
	Profiling  bool    `json:"profiling" mapstructure:"profiling"`
}

// RendererConfig holds GPU settings.
type RendererConfig struct {
	VSync    bool `json:"vsync" mapstructure:"vsync"`
	Software bool `json:"software" mapstructure:"software"`
}

// CameraConfig holds projection and orbit settings. Angles are in degrees.
type CameraConfig struct {
	Fov              float32 `json:"fov" mapstructure:"fov"`
	Near             float32 `json:"near" mapstructure:"near"`
	Far              float32 `json:"far" mapstructure:"far"`
	MinDistance      float32 `json:"minDistance" mapstructure:"minDistance"`
	MaxDistance      float32 `json:"maxDistance" mapstructure:"maxDistance"`
	MinPolarAngle    float32 `json:"minPolarAngle" mapstructure:"minPolarAngle"`
	MaxPolarAngle    float32 `json:"maxPolarAngle" mapstructure:"maxPolarAngle"`
	MouseSensitivity float32 `json:"mouseSensitivity" mapstructure:"mouseSensitivity"`
	ZoomSpeed        float32 `json:"zoomSpeed" mapstructure:"zoomSpeed"`
	PanSpeed         float32 `json:"panSpeed" mapstructure:"panSpeed"`
}

// TweenConfig holds fly-to settings.
type TweenConfig struct {
	Duration     time.Duration
	TiltDuration time.Duration
	TiltAngle    float32 // degrees
	Standoff     float32
	MinHeight    float32
}

// ViewerConfig holds interaction settings.
type ViewerConfig struct {
	AutoRotate      bool    `json:"autoRotate" mapstructure:"autoRotate"`
	AutoRotateSpeed float32 `json:"autoRotateSpeed" mapstructure:"autoRotateSpeed"` // rad/s
	MarkerRadius    float32 `json:"markerRadius" mapstructure:"markerRadius"`
	NightMode       bool    `json:"nightMode" mapstructure:"nightMode"`
}

// SceneConfig holds manifest location settings.
type SceneConfig struct {
	Manifest string `json:"manifest" mapstructure:"manifest"`
	AssetDir string `json:"assetDir" mapstructure:"assetDir"`
	Watch    bool   `json:"watch" mapstructure:"watch"`
	Workers  int    `json:"workers" mapstructure:"workers"`
}

// SetDefaults registers every key's default value.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("window.title", "Oxy Viewer")
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.minWidth", 600)
	viper.SetDefault("window.minHeight", 400)
	viper.SetDefault("window.maxWidth", 3840)
	viper.SetDefault("window.maxHeight", 2160)

	viper.SetDefault("engine.tickRate", 60)
	viper.SetDefault("engine.frameLimit", 0)
	viper.SetDefault("engine.profiling", false)

	viper.SetDefault("renderer.vsync", true)
	viper.SetDefault("renderer.software", false)

	viper.SetDefault("camera.fov", 75)
	viper.SetDefault("camera.near", 0.1)
	viper.SetDefault("camera.far", 1000)
	viper.SetDefault("camera.minDistance", 1)
	viper.SetDefault("camera.maxDistance", 20)
	viper.SetDefault("camera.minPolarAngle", 30)
	viper.SetDefault("camera.maxPolarAngle", 120)
	viper.SetDefault("camera.mouseSensitivity", 0.005)
	viper.SetDefault("camera.zoomSpeed", 1.0)
	viper.SetDefault("camera.panSpeed", 0.01)

	viper.SetDefault("tween.duration", "1500ms")
	viper.SetDefault("tween.tiltDuration", "500ms")
	viper.SetDefault("tween.tiltAngle", 7.5)
	viper.SetDefault("tween.standoff", 5)
	viper.SetDefault("tween.minHeight", 1.5)

	viper.SetDefault("viewer.autoRotate", true)
	viper.SetDefault("viewer.autoRotateSpeed", 0.06)
	viper.SetDefault("viewer.markerRadius", 0.2)
	viper.SetDefault("viewer.nightMode", false)

	viper.SetDefault("scene.manifest", "")
	viper.SetDefault("scene.assetDir", ".")
	viper.SetDefault("scene.watch", false)
	viper.SetDefault("scene.workers", 4)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetWindowConfig returns the window section.
func GetWindowConfig() WindowConfig {
	return WindowConfig{
		Title:     viper.GetString("window.title"),
		Width:     viper.GetInt("window.width"),
		Height:    viper.GetInt("window.height"),
		MinWidth:  viper.GetInt("window.minWidth"),
		MinHeight: viper.GetInt("window.minHeight"),
		MaxWidth:  viper.GetInt("window.maxWidth"),
		MaxHeight: viper.GetInt("window.maxHeight"),
	}
}

// GetEngineConfig returns the engine section.
func GetEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:   viper.GetFloat64("engine.tickRate"),
		FrameLimit: viper.GetFloat64("engine.frameLimit"),
		Profiling:  viper.GetBool("engine.profiling"),
	}
}

// GetRendererConfig returns the renderer section.
func GetRendererConfig() RendererConfig {
	return RendererConfig{
		VSync:    viper.GetBool("renderer.vsync"),
		Software: viper.GetBool("renderer.software"),
	}
}

// GetCameraConfig returns the camera section.
func GetCameraConfig() CameraConfig {
	return CameraConfig{
		Fov:              getFloat32("camera.fov"),
		Near:             getFloat32("camera.near"),
		Far:              getFloat32("camera.far"),
		MinDistance:      getFloat32("camera.minDistance"),
		MaxDistance:      getFloat32("camera.maxDistance"),
		MinPolarAngle:    getFloat32("camera.minPolarAngle"),
		MaxPolarAngle:    getFloat32("camera.maxPolarAngle"),
		MouseSensitivity: getFloat32("camera.mouseSensitivity"),
		ZoomSpeed:        getFloat32("camera.zoomSpeed"),
		PanSpeed:         getFloat32("camera.panSpeed"),
	}
}

// GetTweenConfig returns the tween section. Durations accept Go duration strings ("1.5s")
// or integer milliseconds.
func GetTweenConfig() TweenConfig {
	return TweenConfig{
		Duration:     getDuration("tween.duration"),
		TiltDuration: getDuration("tween.tiltDuration"),
		TiltAngle:    getFloat32("tween.tiltAngle"),
		Standoff:     getFloat32("tween.standoff"),
		MinHeight:    getFloat32("tween.minHeight"),
	}
}

// GetViewerConfig returns the viewer section.
func GetViewerConfig() ViewerConfig {
	return ViewerConfig{
		AutoRotate:      viper.GetBool("viewer.autoRotate"),
		AutoRotateSpeed: getFloat32("viewer.autoRotateSpeed"),
		MarkerRadius:    getFloat32("viewer.markerRadius"),
		NightMode:       viper.GetBool("viewer.nightMode"),
	}
}

// GetSceneConfig returns the scene section.
func GetSceneConfig() SceneConfig {
	return SceneConfig{
		Manifest: viper.GetString("scene.manifest"),
		AssetDir: viper.GetString("scene.assetDir"),
		Watch:    viper.GetBool("scene.watch"),
		Workers:  viper.GetInt("scene.workers"),
	}
}

func getFloat32(key string) float32 {
	return float32(viper.GetFloat64(key))
}

// getDuration treats bare numbers as milliseconds; viper would read them as nanoseconds.
func getDuration(key string) time.Duration {
	switch v := viper.Get(key).(type) {
	case int:
		return time.Duration(v) * time.Millisecond
	case int64:
		return time.Duration(v) * time.Millisecond
	case float64:
		return time.Duration(v * float64(time.Millisecond))
	default:
		return viper.GetDuration(key)
	}
}
