package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type ResolvedParameters struct {
	Brightness float64
	BlurSigma  float64
}

// ParameterResolver resolves brightness and blur independently of each other:
// command line override, then the blur extension's settings, then the configured defaults.
type ParameterResolver struct {
	settings  SettingsClient
	extension ExtensionConfig
	defaults  Defaults
	logger    *logrus.Logger
}

func NewParameterResolver(settings SettingsClient, extension ExtensionConfig, defaults Defaults, logger *logrus.Logger) *ParameterResolver {
	return &ParameterResolver{
		settings:  settings,
		extension: extension,
		defaults:  defaults,
		logger:    logger,
	}
}

func (r *ParameterResolver) Resolve(brightnessOverride, blurOverride *float64) ResolvedParameters {
	params := ResolvedParameters{
		Brightness: r.defaults.Brightness,
		BlurSigma:  r.defaults.Blur,
	}

	missing := false
	if brightnessOverride != nil {
		params.Brightness = *brightnessOverride
	} else if v, err := r.query(r.extension.BrightnessKey); err == nil {
		params.Brightness = v
	} else {
		missing = true
		r.logger.Debugf("Extension brightness unavailable: %v", err)
	}

	if blurOverride != nil {
		params.BlurSigma = *blurOverride
	} else if v, err := r.query(r.extension.SigmaKey); err == nil {
		params.BlurSigma = v
	} else {
		missing = true
		r.logger.Debugf("Extension sigma unavailable: %v", err)
	}

	if missing {
		r.logger.Info("'blur-my-shell' not installed, using default values")
	}
	return params
}

func (r *ParameterResolver) query(key string) (float64, error) {
	value, err := r.settings.Get(r.extension.SchemaDir, r.extension.Schema, key)
	if err != nil {
		return 0, err
	}
	return ParseSettingsFloat(value)
}

// ParseSettingsFloat parses a numeric gsettings value, dropping a GVariant type prefix
// such as "uint32 30".
func ParseSettingsFloat(value string) (float64, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty settings value")
	}
	f, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("settings value %q is not a number: %w", value, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("settings value %q is out of range", value)
	}
	return f, nil
}
