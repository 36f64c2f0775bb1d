package internal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const envPrefix = "GDM_AUTO_BLUR_"

// Defaults are used for any parameter that has neither a command line override nor a value
// in the blur extension's settings.
type Defaults struct {
	Brightness float64 `toml:"brightness"`
	Blur       float64 `toml:"blur"`
}

type ExtensionConfig struct {
	SchemaDir     string `toml:"schema_dir"`
	Schema        string `toml:"schema"`
	SigmaKey      string `toml:"sigma_key"`
	BrightnessKey string `toml:"brightness_key"`
}

type Config struct {
	Defaults  Defaults        `toml:"defaults"`
	Extension ExtensionConfig `toml:"extension"`

	// Nominal blur values are calibrated against this resolution
	ReferenceWidth  int  `toml:"reference_width"`
	ReferenceHeight int  `toml:"reference_height"`
	HeightAware     bool `toml:"height_aware"`
	SigmaPrecision  int  `toml:"sigma_precision"`

	// Crop and scale to the screen before blurring so the edges don't bleed
	Fill         bool `toml:"fill"`
	ScreenWidth  int  `toml:"screen_width"`
	ScreenHeight int  `toml:"screen_height"`

	OutputFormat string `toml:"output_format"`
	JpegQuality  int    `toml:"jpeg_quality"`

	PreferDark    bool   `toml:"prefer_dark"`
	ThemeCommand  string `toml:"theme_command"`
	ViewerCommand string `toml:"viewer_command"`
}

func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			Brightness: 0.5,
			Blur:       20.0,
		},
		Extension: ExtensionConfig{
			SchemaDir:     "~/.local/share/gnome-shell/extensions/blur-my-shell@aunetx/schemas/",
			Schema:        "org.gnome.shell.extensions.blur-my-shell",
			SigmaKey:      "sigma",
			BrightnessKey: "brightness",
		},
		ReferenceWidth:  1920,
		ReferenceHeight: 1080,
		SigmaPrecision:  0,
		OutputFormat:    "png",
		JpegQuality:     95,
		ThemeCommand:    "set-gdm-theme",
		ViewerCommand:   "xdg-open",
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/gdm-auto-blur/config.toml
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gdm-auto-blur", "config.toml")
}

// LoadConfig layers the TOML file at path and then GDM_AUTO_BLUR_* environment variables over
// DefaultConfig. A missing file is only an error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || required {
				return cfg, NewUsageError("failed to load config %s: %v", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	floatVar := func(key string, dst *float64) {
		if v, ok := lookupEnv(key); ok && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = NewUsageError("invalid %s%s: %q", envPrefix, key, v)
				return
			}
			*dst = f
		}
	}
	intVar := func(key string, dst *int) {
		if v, ok := lookupEnv(key); ok && err == nil {
			i, perr := strconv.Atoi(v)
			if perr != nil {
				err = NewUsageError("invalid %s%s: %q", envPrefix, key, v)
				return
			}
			*dst = i
		}
	}
	boolVar := func(key string, dst *bool) {
		if v, ok := lookupEnv(key); ok && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = NewUsageError("invalid %s%s: %q", envPrefix, key, v)
				return
			}
			*dst = b
		}
	}
	stringVar := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok {
			*dst = v
		}
	}

	floatVar("BRIGHTNESS", &c.Defaults.Brightness)
	floatVar("BLUR", &c.Defaults.Blur)
	boolVar("HEIGHT_AWARE", &c.HeightAware)
	intVar("SIGMA_PRECISION", &c.SigmaPrecision)
	boolVar("FILL", &c.Fill)
	intVar("SCREEN_WIDTH", &c.ScreenWidth)
	intVar("SCREEN_HEIGHT", &c.ScreenHeight)
	stringVar("OUTPUT_FORMAT", &c.OutputFormat)
	intVar("JPEG_QUALITY", &c.JpegQuality)
	boolVar("PREFER_DARK", &c.PreferDark)
	stringVar("THEME_COMMAND", &c.ThemeCommand)
	stringVar("VIEWER_COMMAND", &c.ViewerCommand)
	stringVar("SCHEMA_DIR", &c.Extension.SchemaDir)
	return err
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c *Config) Validate() error {
	c.OutputFormat = strings.ToLower(strings.TrimPrefix(c.OutputFormat, "."))
	if _, ok := formatExtensions[c.OutputFormat]; !ok {
		return NewUsageError("unsupported output_format %q (want png or jpeg)", c.OutputFormat)
	}
	if c.ReferenceWidth <= 0 || c.ReferenceHeight <= 0 {
		return NewUsageError("reference resolution must be positive (got %dx%d)", c.ReferenceWidth, c.ReferenceHeight)
	}
	if c.SigmaPrecision < 0 || c.SigmaPrecision > 6 {
		return NewUsageError("sigma_precision must be between 0 and 6 (got %d)", c.SigmaPrecision)
	}
	if c.Fill && (c.ScreenWidth <= 0 || c.ScreenHeight <= 0) {
		return NewUsageError("fill requires screen_width and screen_height")
	}
	if c.JpegQuality < 1 || c.JpegQuality > 100 {
		return NewUsageError("jpeg_quality must be between 1 and 100 (got %d)", c.JpegQuality)
	}
	if c.Defaults.Blur < 0 || c.Defaults.Brightness < 0 {
		return NewUsageError("default blur and brightness must not be negative")
	}
	if c.ThemeCommand == "" {
		return NewUsageError("theme_command must not be empty")
	}
	return nil
}

// OutputExtension is the canonical extension, including the dot, for the configured format
func (c Config) OutputExtension() string {
	return formatExtensions[c.OutputFormat]
}

var formatExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"jpg":  ".jpg",
}
