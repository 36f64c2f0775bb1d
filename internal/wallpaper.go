package internal

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	backgroundSchema = "org.gnome.desktop.background"
	interfaceSchema  = "org.gnome.desktop.interface"
)

// InputLocator resolves the image to process: the explicit path when given, otherwise
// the current desktop wallpaper.
type InputLocator struct {
	settings   SettingsClient
	preferDark bool
}

func NewInputLocator(settings SettingsClient, preferDark bool) *InputLocator {
	return &InputLocator{settings: settings, preferDark: preferDark}
}

// Locate does not check that an explicit path exists; decoding reports that.
func (l *InputLocator) Locate(inputPath string) (string, error) {
	if inputPath != "" {
		return inputPath, nil
	}

	if l.preferDark && l.darkSchemeActive() {
		if value, err := l.settings.Get("", backgroundSchema, "picture-uri-dark"); err == nil {
			if path, err := ParseFileURI(value); err == nil {
				return path, nil
			}
		}
	}

	value, err := l.settings.Get("", backgroundSchema, "picture-uri")
	if err != nil {
		return "", NewInputResolutionError("failed to read the current wallpaper", err)
	}
	return ParseFileURI(value)
}

func (l *InputLocator) darkSchemeActive() bool {
	value, err := l.settings.Get("", interfaceSchema, "color-scheme")
	if err != nil {
		return false
	}
	return unquote(value) == "prefer-dark"
}

// ParseFileURI converts a gsettings file URI, quoted or not, into a local path
func ParseFileURI(value string) (string, error) {
	value = unquote(value)
	if !strings.HasPrefix(value, "file://") {
		return "", NewInputResolutionError(fmt.Sprintf("unsupported wallpaper location %q", value), ErrWallpaperNotSet)
	}

	u, err := url.Parse(value)
	if err != nil {
		return "", NewInputResolutionError(fmt.Sprintf("malformed wallpaper URI %q", value), ErrWallpaperNotSet)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", NewInputResolutionError(fmt.Sprintf("wallpaper is on a remote host %q", u.Host), ErrWallpaperNotSet)
	}
	if u.Path == "" {
		return "", NewInputResolutionError("wallpaper URI has no path", ErrWallpaperNotSet)
	}
	return u.Path, nil
}

func unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
