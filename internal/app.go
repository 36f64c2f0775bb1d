package internal

import (
	"fmt"

	"github.com/rm-hull/gdm-auto-blur/internal/img"
	"github.com/rm-hull/gdm-auto-blur/internal/img/stage"
	"github.com/sirupsen/logrus"
)

// App runs one request from start to finish
type App struct {
	cfg     Config
	logger  *logrus.Logger
	locator *InputLocator
	params  *ParameterResolver
	scaler  BlurScaler
	sink    *OutputSink
}

func NewApp(cfg Config, runner CommandRunner, logger *logrus.Logger) *App {
	settings := NewGSettings(runner)
	return &App{
		cfg:     cfg,
		logger:  logger,
		locator: NewInputLocator(settings, cfg.PreferDark),
		params:  NewParameterResolver(settings, cfg.Extension, cfg.Defaults, logger),
		scaler:  NewBlurScaler(cfg),
		sink:    NewOutputSink(cfg, runner, logger),
	}
}

func (a *App) Run(req ProcessingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	a.logger.WithField("mode", req.Mode).Debug("Running request")

	if req.Mode == ModeUnset {
		return a.sink.Unset()
	}

	inputPath, err := a.locator.Locate(req.InputPath)
	if err != nil {
		return err
	}

	image, err := img.NewImageFromFile(inputPath)
	if err != nil {
		return NewDecodeError(inputPath, err)
	}
	a.logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"format": image.Format,
		"size":   fmt.Sprintf("%dx%d", image.Width(), image.Height()),
	}).Debug("Decoded image")

	params := a.params.Resolve(req.BrightnessOverride, req.BlurOverride)

	if err := a.Process(image, params); err != nil {
		return err
	}

	target, err := ResolveOutput(req.OutputPath, inputPath, a.cfg.OutputExtension())
	if err != nil {
		return err
	}

	if req.Preview {
		return a.sink.Preview(image, target)
	}
	return a.sink.Apply(image, target, req.DeleteAfter)
}

// Process runs the filter stages over image: optional fill, Gaussian blur scaled to the
// image geometry, smoothing, then brightness.
func (a *App) Process(image *img.Image, params ResolvedParameters) error {
	if a.cfg.Fill {
		if err := image.Pipeline(&stage.FillStage{Width: a.cfg.ScreenWidth, Height: a.cfg.ScreenHeight}); err != nil {
			return fmt.Errorf("failed to fill screen: %w", err)
		}
	}

	blurUsed := a.scaler.Scale(params.BlurSigma, image.Width(), image.Height())
	blur := fmt.Sprintf("%g", params.BlurSigma)
	if blurUsed != params.BlurSigma {
		blur = fmt.Sprintf("%g (%g)", params.BlurSigma, blurUsed)
	}
	a.logger.WithFields(logrus.Fields{
		"brightness": params.Brightness,
		"blur":       blur,
	}).Info("Parameters")

	err := image.Pipeline(
		&stage.GaussianBlurStage{Sigma: blurUsed},
		&stage.SmoothMoreStage{},
		&stage.BrightnessStage{Factor: params.Brightness},
	)
	if err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}
	return nil
}
