package cmd

import (
	"github.com/rm-hull/gdm-auto-blur/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags adds the image processing flags. -br is handled by internal.NormalizeArgs
// as pflag shorthands are a single character.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolP("unset", "u", false, "unset background image (set gray background)")
	fs.StringP("input", "i", "", "path of the image (default: current wallpaper)")
	fs.StringP("output", "o", "", "file or directory to save the processed image to (default: temporary file)")
	fs.Float64("brightness", 0, "change brightness (-br); from 0.00 to 1.00 and above")
	fs.Float64P("blur", "b", 0, "change 'sigma' parameter of gaussian blur (radius); from 0 to 50 and above")
	fs.BoolP("preview", "p", false, "preview an image without setting it as background")
	fs.BoolP("delete", "d", false, "delete the saved image after setting it as background")
}

// RequestFromFlags builds the request from a flag set populated by RegisterFlags.
// Overrides are only set for flags given on the command line.
func RequestFromFlags(fs *pflag.FlagSet) (internal.ProcessingRequest, error) {
	var req internal.ProcessingRequest
	var err error

	unset, err := fs.GetBool("unset")
	if err != nil {
		return req, internal.NewUsageError("%v", err)
	}
	if unset {
		req.Mode = internal.ModeUnset
	}

	if req.InputPath, err = fs.GetString("input"); err != nil {
		return req, internal.NewUsageError("%v", err)
	}
	if req.OutputPath, err = fs.GetString("output"); err != nil {
		return req, internal.NewUsageError("%v", err)
	}
	if req.Preview, err = fs.GetBool("preview"); err != nil {
		return req, internal.NewUsageError("%v", err)
	}
	if req.DeleteAfter, err = fs.GetBool("delete"); err != nil {
		return req, internal.NewUsageError("%v", err)
	}

	if fs.Changed("brightness") {
		v, err := fs.GetFloat64("brightness")
		if err != nil {
			return req, internal.NewUsageError("%v", err)
		}
		req.BrightnessOverride = &v
	}
	if fs.Changed("blur") {
		v, err := fs.GetFloat64("blur")
		if err != nil {
			return req, internal.NewUsageError("%v", err)
		}
		req.BlurOverride = &v
	}

	return req, req.Validate()
}

// NoArgs rejects positional arguments and unknown subcommands as usage errors
func NoArgs(c *cobra.Command, args []string) error {
	if err := cobra.NoArgs(c, args); err != nil {
		return internal.NewUsageError("%v", err)
	}
	return nil
}
