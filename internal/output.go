package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/gdm-auto-blur/internal/img"
	"github.com/sirupsen/logrus"
)

// OutputTarget is where the processed image is written. Ephemeral targets are temporary
// files owned by this run.
type OutputTarget struct {
	Path      string
	Ephemeral bool
}

// ResolveOutput derives the output path. A directory (existing, or written with a trailing
// separator) gets "<input-stem>-blur<ext>" appended, a file has its extension replaced by ext,
// and no output at all yields a new temporary file.
func ResolveOutput(outputArg, inputPath, ext string) (OutputTarget, error) {
	if outputArg == "" {
		f, err := os.CreateTemp("", "gdm-auto-blur-*"+ext)
		if err != nil {
			return OutputTarget{}, NewOutputError("failed to create temporary file", err)
		}
		if err := f.Close(); err != nil {
			return OutputTarget{}, NewOutputError("failed to close temporary file", err)
		}
		return OutputTarget{Path: f.Name(), Ephemeral: true}, nil
	}

	path := expandHome(outputArg)
	if isDirectory(path) {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		path = filepath.Join(path, stem+"-blur"+ext)
	} else {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ext
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return OutputTarget{}, NewOutputError(fmt.Sprintf("failed to resolve output path %s", path), err)
	}
	return OutputTarget{Path: abs}, nil
}

func isDirectory(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

type OutputSink struct {
	theme   *ThemeSetter
	runner  CommandRunner
	viewer  string
	format  string
	quality int
	logger  *logrus.Logger
}

func NewOutputSink(cfg Config, runner CommandRunner, logger *logrus.Logger) *OutputSink {
	return &OutputSink{
		theme:   NewThemeSetter(runner, cfg.ThemeCommand),
		runner:  runner,
		viewer:  cfg.ViewerCommand,
		format:  cfg.OutputFormat,
		quality: cfg.JpegQuality,
		logger:  logger,
	}
}

// Unset restores the default login background without touching any image
func (s *OutputSink) Unset() error {
	s.logger.Info("Unsetting image")
	return s.theme.SetBackground(UnsetSentinel)
}

// Preview writes the image and opens it in the default viewer. An ephemeral file is left
// in place for the viewer to read.
func (s *OutputSink) Preview(image *img.Image, target OutputTarget) error {
	if err := s.write(image, target.Path); err != nil {
		return err
	}
	s.logger.WithField("output", target.Path).Info("Opening preview")
	if err := s.runner.Run(s.viewer, target.Path); err != nil {
		return NewExternalToolError("failed to open preview", err)
	}
	return nil
}

// Apply writes the image and hands it to the theme-setting tool. Ephemeral files are always
// removed afterwards, persistent ones only when deleteAfter is set.
func (s *OutputSink) Apply(image *img.Image, target OutputTarget, deleteAfter bool) error {
	if target.Ephemeral {
		defer s.remove(target.Path)
	}

	if err := s.write(image, target.Path); err != nil {
		return err
	}
	// only remove what this run wrote
	if deleteAfter && !target.Ephemeral {
		defer s.remove(target.Path)
	}
	s.logger.WithField("output", target.Path).Info("Setting login background")
	return s.theme.SetBackground(target.Path)
}

func (s *OutputSink) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warnf("failed to remove %s: %v", path, err)
	}
}

// write encodes to a temporary file next to path and renames it into place
func (s *OutputSink) write(image *img.Image, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewOutputError(fmt.Sprintf("failed to create directory %s", dir), err)
	}

	tmpFile, err := os.CreateTemp(dir, ".gdm-auto-blur-*.tmp")
	if err != nil {
		return NewOutputError("failed to create temporary file", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := image.Write(tmpFile, s.format, s.quality); err != nil {
		return NewOutputError("failed to encode image", err)
	}
	if err := tmpFile.Close(); err != nil {
		return NewOutputError("failed to close temporary file before rename", err)
	}
	// readable by the theme tool, which may run as another user
	if err := os.Chmod(tmpFile.Name(), 0644); err != nil {
		return NewOutputError("failed to set permissions on output", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return NewOutputError(fmt.Sprintf("failed to write %s", path), err)
	}

	cleanupTemp = false
	return nil
}
