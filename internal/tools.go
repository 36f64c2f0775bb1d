package internal

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// CommandRunner is the capability through which every external tool is invoked
type CommandRunner interface {
	// Output runs the command to completion and returns its trimmed stdout
	Output(name string, args ...string) (string, error)
	// Run runs the command to completion with the process' stdio attached
	Run(name string, args ...string) error
}

type ExecRunner struct {
	logger *logrus.Logger
}

func NewExecRunner(logger *logrus.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Output(name string, args ...string) (string, error) {
	r.logger.Debugf("Running: %s %s", name, strings.Join(args, " "))
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *ExecRunner) Run(name string, args ...string) error {
	r.logger.Debugf("Running: %s %s", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

type SettingsClient interface {
	// Get reads a single key. An empty schemaDir uses the system schemas.
	Get(schemaDir, schema, key string) (string, error)
}

type GSettings struct {
	runner CommandRunner
}

func NewGSettings(runner CommandRunner) *GSettings {
	return &GSettings{runner: runner}
}

func (g *GSettings) Get(schemaDir, schema, key string) (string, error) {
	args := make([]string, 0, 5)
	if schemaDir != "" {
		args = append(args, "--schemadir", expandHome(schemaDir))
	}
	args = append(args, "get", schema, key)
	out, err := g.runner.Output("gsettings", args...)
	if err != nil {
		return "", NewExternalToolError(fmt.Sprintf("failed to read %s %s", schema, key), err)
	}
	return out, nil
}

// ThemeSetter applies an image, or the "none" sentinel, as the login screen background
type ThemeSetter struct {
	runner  CommandRunner
	command string
}

const UnsetSentinel = "none"

func NewThemeSetter(runner CommandRunner, command string) *ThemeSetter {
	return &ThemeSetter{runner: runner, command: command}
}

func (t *ThemeSetter) SetBackground(pathOrNone string) error {
	if err := t.runner.Run(t.command, "set", "-b", pathOrNone); err != nil {
		return NewExternalToolError("failed to set login background", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + strings.TrimPrefix(path, "~")
}
