package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// CameraPose is the camera position and look-at target the viewer starts from.
type CameraPose struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// Manifest describes a viewer scene: which assets to load, where the camera starts and
// which points of interest the user can navigate between.
//
// Relative asset paths are resolved against the base directory passed to Assets
// (the configured scene.assetDir), not the manifest's own directory.
type Manifest struct {
	// Model is the glTF scene file.
	Model string `yaml:"model"`

	// Environment is the equirectangular HDR used as the day background.
	Environment string `yaml:"environment"`

	// Camera is the starting pose.
	Camera CameraPose `yaml:"camera"`

	// Points are the points of interest in navigation order.
	Points [][3]float32 `yaml:"points"`

	// MarkerRadius is the radius of the pickable sphere drawn at each point.
	MarkerRadius float32 `yaml:"markerRadius"`
}

// DefaultManifest returns the built-in fantasy interior scene.
//
// Returns:
//   - *Manifest: a new manifest with the default values
func DefaultManifest() *Manifest {
	return &Manifest{
		Model:       "fantasy_interior_kit/scene.gltf",
		Environment: "textures/venice_sunset_1k.hdr",
		Camera: CameraPose{
			Position: [3]float32{0, 5, 10},
			Target:   [3]float32{0, 2, 0},
		},
		Points: [][3]float32{
			{0, 2.5, 2.25},
			{3.10, 0.5, 2},
			{3, 1.5, -4.5},
			{0, 3.75, -6.75},
			{0, 5, 2},
			{-3.25, 0.5, 2},
		},
		MarkerRadius: 0.2,
	}
}

// LoadManifest reads a YAML manifest from path. Keys missing from the file keep their
// DefaultManifest values.
//
// Parameters:
//   - path: the manifest file
//
// Returns:
//   - *Manifest: the decoded and validated manifest
//   - error: an error if the file cannot be read, decoded or validated
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a YAML manifest. Keys missing from data keep their DefaultManifest values.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Manifest: the decoded and validated manifest
//   - error: an error if decoding or validation fails
func ParseManifest(data []byte) (*Manifest, error) {
	m := DefaultManifest()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every coordinate is finite and the marker radius is positive.
//
// Returns:
//   - error: the first problem found, or nil
func (m *Manifest) Validate() error {
	if !(m.MarkerRadius > 0) {
		return fmt.Errorf("invalid manifest: markerRadius must be positive, got %v", m.MarkerRadius)
	}
	if m.Camera.Position == m.Camera.Target {
		return errors.New("invalid manifest: camera position equals target")
	}
	if !finite(m.Camera.Position) || !finite(m.Camera.Target) {
		return errors.New("invalid manifest: camera pose is not finite")
	}
	for i, p := range m.Points {
		if !finite(p) {
			return fmt.Errorf("invalid manifest: point %d is not finite", i)
		}
	}
	return nil
}

// Assets lists the files the manifest references, resolved against baseDir.
// Empty paths are skipped.
//
// Parameters:
//   - baseDir: the directory relative paths are resolved against
//
// Returns:
//   - []Asset: the referenced assets
func (m *Manifest) Assets(baseDir string) []Asset {
	var out []Asset
	if m.Model != "" {
		out = append(out, Asset{Kind: KindModel, Path: resolve(baseDir, m.Model)})
	}
	if m.Environment != "" {
		out = append(out, Asset{Kind: KindEnvironment, Path: resolve(baseDir, m.Environment)})
	}
	return out
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

func finite(v [3]float32) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
