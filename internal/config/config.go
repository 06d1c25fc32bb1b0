// Package config holds the settings of the cubeface command, stored as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/cubemap"
)

// DefaultPath is where cubeface looks for its configuration when --config is
// not given. A leading ~ is expanded to the user's home directory.
const DefaultPath = "~/.config/cubeface/config.toml"

// ErrInvalid is returned for settings that cannot be applied.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the persisted cubeface configuration. Zero numeric values mean
// "use the library default".
type Config struct {
	LogLevel string `toml:"log_level" comment:"debug, info, warn or error"`
	Workers  int    `toml:"workers" comment:"sampling goroutines per build, 0 = GOMAXPROCS"`
	Jobs     int    `toml:"jobs" comment:"sources built at the same time"`

	WorkingResolution  int    `toml:"working_resolution" comment:"side of faces held in memory"`
	ScaleCeiling       int    `toml:"scale_ceiling" comment:"largest pre-scaled source dimension"`
	MaxSourceScale     int    `toml:"max_source_scale" comment:"largest source pre-scale factor"`
	PreviewWorkingSize int    `toml:"preview_working_size"`
	PreviewOutputSize  int    `toml:"preview_output_size"`
	FullWorkingFactor  int    `toml:"full_working_factor" comment:"supersampling factor of full faces"`
	Sampling           string `toml:"sampling" comment:"bilinear or bicubic"`
	SourceInterpolator string `toml:"source_interpolator" comment:"approx-bilinear, bilinear or catmull-rom"`
}

// Default returns the configuration matching the library defaults.
func Default() Config {
	return Config{
		LogLevel:           "warn",
		Workers:            0,
		Jobs:               1,
		WorkingResolution:  cubemap.DefaultWorkingResolution,
		ScaleCeiling:       cubemap.DefaultScaleCeiling,
		MaxSourceScale:     cubemap.DefaultMaxSourceScale,
		PreviewWorkingSize: cubemap.DefaultPreviewWorkingSize,
		PreviewOutputSize:  cubemap.DefaultPreviewOutputSize,
		FullWorkingFactor:  cubemap.DefaultFullWorkingFactor,
		Sampling:           "bilinear",
		SourceInterpolator: "bilinear",
	}
}

// Expand resolves a leading ~ in path.
func Expand(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %q: %w", path, err)
	}
	return p, nil
}

// Load reads the configuration at path. Keys missing from the file keep their
// default values. A missing file yields Default() and no error; unknown keys
// and invalid values are errors.
func Load(path string) (Config, error) {
	c := Default()

	path, err := Expand(path)
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Default(), fmt.Errorf("config: %s: %s", path, strict.String())
		}
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the parent directory if needed.
func Save(path string, c Config) error {
	path, err := Expand(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks that every setting can be applied.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.sampling(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.interpolator(); err != nil {
		errs = append(errs, err)
	}
	for name, v := range map[string]int{
		"workers":              c.Workers,
		"jobs":                 c.Jobs,
		"working_resolution":   c.WorkingResolution,
		"scale_ceiling":        c.ScaleCeiling,
		"max_source_scale":     c.MaxSourceScale,
		"preview_working_size": c.PreviewWorkingSize,
		"preview_output_size":  c.PreviewOutputSize,
		"full_working_factor":  c.FullWorkingFactor,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s = %d", ErrInvalid, name, v))
		}
	}
	return errors.Join(errs...)
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

func (c Config) sampling() (cubemap.Sampling, error) {
	switch strings.ToLower(c.Sampling) {
	case "", "bilinear":
		return cubemap.SamplingBilinear, nil
	case "bicubic":
		return cubemap.SamplingBicubic, nil
	}
	return cubemap.SamplingBilinear, fmt.Errorf("%w: sampling %q", ErrInvalid, c.Sampling)
}

// interpolator returns the source pre-scaling interpolator. Only smoothing
// interpolators are accepted.
func (c Config) interpolator() (xdraw.Interpolator, error) {
	switch strings.ToLower(c.SourceInterpolator) {
	case "", "bilinear":
		return xdraw.BiLinear, nil
	case "approx-bilinear":
		return xdraw.ApproxBiLinear, nil
	case "catmull-rom":
		return xdraw.CatmullRom, nil
	}
	return nil, fmt.Errorf("%w: source_interpolator %q", ErrInvalid, c.SourceInterpolator)
}

// Options converts the configuration into scene options. Zero values are
// left to the library defaults.
func (c Config) Options() ([]cubemap.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mode, _ := c.sampling()
	interp, _ := c.interpolator()

	return []cubemap.Option{
		cubemap.WithWorkers(c.Workers),
		cubemap.WithWorkingResolution(c.WorkingResolution),
		cubemap.WithScaleCeiling(c.ScaleCeiling),
		cubemap.WithMaxSourceScale(c.MaxSourceScale),
		cubemap.WithPreviewSizes(c.PreviewWorkingSize, c.PreviewOutputSize),
		cubemap.WithFullWorkingFactor(c.FullWorkingFactor),
		cubemap.WithSampling(mode),
		cubemap.WithSourceInterpolator(interp),
	}, nil
}
