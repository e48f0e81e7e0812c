package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/assets"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/tween"
	"github.com/Carmen-Shannon/oxy-viewer/engine/viewer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/logging"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const degToRad = math32.Pi / 180

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	// ── Config + Logging ────────────────────────────────────────────────
	cfgErr := config.Load(*configDir)

	logger, logCloser, err := logging.NewWithFile(os.Stderr, logging.ParseLevel(config.GetString("logLevel")), config.GetString("logFile"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if cfgErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(cfgErr, &notFound) {
			logger.Fatal().Err(cfgErr).Msg("config")
		}
		logger.Warn().Str("dir", *configDir).Msg("no config file found, using defaults")
	}

	winCfg := config.GetWindowConfig()
	engCfg := config.GetEngineConfig()
	rendCfg := config.GetRendererConfig()
	camCfg := config.GetCameraConfig()
	viewCfg := config.GetViewerConfig()
	sceneCfg := config.GetSceneConfig()

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(winCfg.Title+" - loading"),
		window.WithWidth(winCfg.Width),
		window.WithHeight(winCfg.Height),
		window.WithMinWidth(winCfg.MinWidth),
		window.WithMinHeight(winCfg.MinHeight),
		window.WithMaxWidth(winCfg.MaxWidth),
		window.WithMaxHeight(winCfg.MaxHeight),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("window")
	}

	// ── Manifest + Asset preflight ──────────────────────────────────────
	manifest, err := loadManifest(sceneCfg)
	if err != nil {
		logger.Fatal().Err(err).Str("path", sceneCfg.Manifest).Msg("manifest")
	}

	report, err := assets.Preflight(context.Background(), manifest.Assets(sceneCfg.AssetDir),
		assets.WithWorkers(sceneCfg.Workers),
		assets.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("asset preflight")
	}
	for _, r := range report.Missing() {
		logger.Warn().Err(r.Err).Str("kind", r.Asset.Kind.String()).Str("path", r.Asset.Path).Msg("asset unavailable")
	}
	win.SetTitle(winCfg.Title)

	// ── Lighting ────────────────────────────────────────────────────────
	mode := light.ModeDay
	if viewCfg.NightMode {
		mode = light.ModeNight
	}
	rig := light.NewRig(light.DefaultLights(),
		light.WithMode(mode),
		light.WithHDRAvailable(report.Available(assets.KindEnvironment)),
	)

	// ── Camera + Renderer ───────────────────────────────────────────────
	controller := camera.NewCameraController(
		camera.WithRadiusBounds(camCfg.MinDistance, camCfg.MaxDistance),
		camera.WithElevationBounds(
			camera.ElevationFromPolar(camCfg.MaxPolarAngle*degToRad),
			camera.ElevationFromPolar(camCfg.MinPolarAngle*degToRad),
		),
		camera.WithMouseSensitivity(camCfg.MouseSensitivity),
		camera.WithZoomSpeed(camCfg.ZoomSpeed),
		camera.WithPanSpeed(camCfg.PanSpeed),
	)
	controller.SetPose(manifest.Camera.Position, manifest.Camera.Target)

	cam := camera.NewCamera(
		camera.WithFov(camCfg.Fov*degToRad),
		camera.WithAspect(float32(win.Width())/float32(max(win.Height(), 1))),
		camera.WithNear(camCfg.Near),
		camera.WithFar(camCfg.Far),
		camera.WithController(controller),
	)

	presentMode := renderer.PresentModeUncapped
	if rendCfg.VSync {
		presentMode = renderer.PresentModeVSync
	}
	env := rig.Environment()
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(rendCfg.Software),
		renderer.WithClearColor(env.Background, env.Exposure),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("renderer")
	}
	defer r.Release()

	// ── Engine + Viewer ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam),
		engine.WithLogger(logger),
		engine.WithTickRate(engCfg.TickRate),
		engine.WithRenderFrameLimit(engCfg.FrameLimit),
		engine.WithProfiling(engCfg.Profiling),
	)

	v, err := viewer.NewViewer(cam,
		viewer.WithPoints(manifest.Points),
		viewer.WithRig(rig),
		viewer.WithTweenOptions(tweenOptions(config.GetTweenConfig())...),
		viewer.WithAutoRotate(viewCfg.AutoRotate),
		viewer.WithAutoRotateSpeed(viewCfg.AutoRotateSpeed),
		viewer.WithMarkerRadius(markerRadius(sceneCfg, viewCfg, manifest)),
		viewer.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("viewer")
	}

	viewer.BindInput(eng.Window(), eng.Post, v, time.Now)

	eng.SetTickCallback(func(dt float32) {
		v.Advance(time.Now(), dt)
	})
	eng.SetRenderCallback(func(float32) {
		e := v.Environment()
		r.SetClearColor(e.Background, e.Exposure)
	})

	// ── Manifest hot reload ─────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if sceneCfg.Watch && sceneCfg.Manifest != "" {
		startWatcher(ctx, sceneCfg.Manifest, eng, v, logger)
	}

	eng.Post(func() { v.Start(time.Now()) })
	eng.Run()
	logger.Info().Msg("viewer closed")
}

// loadManifest reads the configured manifest, or returns the built-in scene when none is set.
func loadManifest(sc config.SceneConfig) (*assets.Manifest, error) {
	if sc.Manifest == "" {
		return assets.DefaultManifest(), nil
	}
	return assets.LoadManifest(sc.Manifest)
}

// markerRadius prefers a manifest's own radius over the config default.
func markerRadius(sc config.SceneConfig, vc config.ViewerConfig, m *assets.Manifest) float32 {
	if sc.Manifest != "" && m.MarkerRadius > 0 {
		return m.MarkerRadius
	}
	return vc.MarkerRadius
}

func tweenOptions(tc config.TweenConfig) []tween.TweenBuilderOption {
	return []tween.TweenBuilderOption{
		tween.WithDuration(tc.Duration),
		tween.WithTiltDuration(tc.TiltDuration),
		tween.WithTiltAngle(tc.TiltAngle * degToRad),
		tween.WithStandoff(tc.Standoff),
		tween.WithMinHeight(tc.MinHeight),
	}
}

func startWatcher(ctx context.Context, path string, eng engine.Engine, v viewer.Viewer, logger zerolog.Logger) {
	w, err := assets.NewManifestWatcher(path, func(m *assets.Manifest) {
		eng.Post(func() { v.ReplacePoints(m.Points) })
	}, assets.WithWatchLogger(logger))
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("manifest watch disabled")
		return
	}
	go func() {
		defer w.Close()
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("manifest watcher stopped")
		}
	}()
}
