package internal

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rm-hull/gdm-auto-blur/internal/img"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutput(t *testing.T) {
	t.Run("no output gives a temporary png", func(t *testing.T) {
		target, err := ResolveOutput("", "/a/b/pic.jpg", ".png")
		require.NoError(t, err)
		defer os.Remove(target.Path)

		assert.True(t, target.Ephemeral)
		assert.Equal(t, ".png", filepath.Ext(target.Path))
		assert.FileExists(t, target.Path)
	})

	t.Run("directory with trailing separator", func(t *testing.T) {
		target, err := ResolveOutput("/out/", "/a/b/pic.jpg", ".png")
		require.NoError(t, err)
		assert.Equal(t, OutputTarget{Path: "/out/pic-blur.png"}, target)
	})

	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		target, err := ResolveOutput(dir, "/a/b/pic.tar.jpg", ".png")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "pic.tar-blur.png"), target.Path)
		assert.False(t, target.Ephemeral)
	})

	t.Run("file extension is normalized", func(t *testing.T) {
		target, err := ResolveOutput("/out/name.jpg", "/a/b/pic.jpg", ".png")
		require.NoError(t, err)
		assert.Equal(t, "/out/name.png", target.Path)
	})

	t.Run("file without extension", func(t *testing.T) {
		target, err := ResolveOutput("/out/name", "/a/b/pic.jpg", ".jpg")
		require.NoError(t, err)
		assert.Equal(t, "/out/name.jpg", target.Path)
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		target, err := ResolveOutput("name.webp", "/a/b/pic.jpg", ".png")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(target.Path))
		assert.True(t, strings.HasSuffix(target.Path, string(filepath.Separator)+"name.png"))
	})
}

func solidImage(w, h int) *img.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgba.Set(x, y, color.RGBA{120, 80, 200, 255})
		}
	}
	return &img.Image{Img: rgba, Bounds: rgba.Bounds(), Format: "png"}
}

func newSink(runner CommandRunner) *OutputSink {
	logger, _ := test.NewNullLogger()
	return NewOutputSink(DefaultConfig(), runner, logger)
}

func TestOutputSink(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		runner := &MockRunner{}
		assert.NoError(t, newSink(runner).Unset())
		assert.Equal(t, [][]string{{"set-gdm-theme", "set", "-b", "none"}}, runner.Runs)
	})

	t.Run("apply keeps a persistent file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "pic-blur.png")
		runner := &MockRunner{RunFunc: func(name string, args ...string) error {
			assert.FileExists(t, args[len(args)-1])
			return nil
		}}

		err := newSink(runner).Apply(solidImage(4, 4), OutputTarget{Path: path}, false)
		assert.NoError(t, err)
		assert.Equal(t, [][]string{{"set-gdm-theme", "set", "-b", path}}, runner.Runs)
		assert.FileExists(t, path)

		decoded, err := img.NewImageFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "png", decoded.Format)
		assert.Equal(t, 4, decoded.Width())
	})

	t.Run("apply with delete removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic-blur.png")
		runner := &MockRunner{}

		assert.NoError(t, newSink(runner).Apply(solidImage(4, 4), OutputTarget{Path: path}, true))
		assert.Len(t, runner.Runs, 1)
		assert.NoFileExists(t, path)
	})

	t.Run("failed write keeps an existing file despite delete", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic-blur.png")
		require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

		cfg := DefaultConfig()
		cfg.OutputFormat = "gif"
		logger, _ := test.NewNullLogger()
		runner := &MockRunner{}
		sink := NewOutputSink(cfg, runner, logger)

		err := sink.Apply(solidImage(4, 4), OutputTarget{Path: path}, true)
		assert.Equal(t, KindOutput, KindOf(err))
		assert.Empty(t, runner.Runs)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))
	})

	t.Run("ephemeral file is removed", func(t *testing.T) {
		target, err := ResolveOutput("", "/a/pic.jpg", ".png")
		require.NoError(t, err)

		assert.NoError(t, newSink(&MockRunner{}).Apply(solidImage(4, 4), target, false))
		assert.NoFileExists(t, target.Path)
	})

	t.Run("tool failure with an already missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic-blur.png")
		runner := &MockRunner{RunFunc: func(name string, args ...string) error {
			_ = os.Remove(args[len(args)-1])
			return errors.New("exit status 1")
		}}

		err := newSink(runner).Apply(solidImage(4, 4), OutputTarget{Path: path}, true)
		assert.Error(t, err)
		assert.Equal(t, KindExternalTool, KindOf(err))
		assert.NoFileExists(t, path)
	})

	t.Run("preview opens the viewer only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "preview.png")
		runner := &MockRunner{}

		assert.NoError(t, newSink(runner).Preview(solidImage(4, 4), OutputTarget{Path: path, Ephemeral: true}))
		assert.Equal(t, [][]string{{"xdg-open", path}}, runner.Runs)
		assert.FileExists(t, path)
	})

	t.Run("jpeg output", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OutputFormat = "jpeg"
		logger, _ := test.NewNullLogger()
		sink := NewOutputSink(cfg, &MockRunner{}, logger)

		path := filepath.Join(t.TempDir(), "pic-blur.jpg")
		require.NoError(t, sink.Apply(solidImage(8, 8), OutputTarget{Path: path}, false))

		decoded, err := img.NewImageFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", decoded.Format)
	})
}
