package internal

import "strings"

type Mode int

const (
	ModeProcess Mode = iota
	ModeUnset
)

func (m Mode) String() string {
	if m == ModeUnset {
		return "unset"
	}
	return "process"
}

// ProcessingRequest is built once from the parsed command line and is not modified afterwards.
// Optional values are nil when the corresponding flag was not given.
type ProcessingRequest struct {
	Mode               Mode
	InputPath          string
	OutputPath         string
	BrightnessOverride *float64
	BlurOverride       *float64
	Preview            bool
	DeleteAfter        bool
}

// Validate rejects flag combinations that cannot be satisfied
func (r ProcessingRequest) Validate() error {
	if r.Mode == ModeUnset {
		if r.InputPath != "" || r.OutputPath != "" || r.BrightnessOverride != nil || r.BlurOverride != nil || r.Preview || r.DeleteAfter {
			return NewUsageError("--unset cannot be combined with image processing flags")
		}
		return nil
	}
	if r.BlurOverride != nil && *r.BlurOverride < 0 {
		return NewUsageError("blur must not be negative (got %g)", *r.BlurOverride)
	}
	if r.BrightnessOverride != nil && *r.BrightnessOverride < 0 {
		return NewUsageError("brightness must not be negative (got %g)", *r.BrightnessOverride)
	}
	if r.DeleteAfter && r.OutputPath == "" {
		return NewUsageError("--delete requires --output")
	}
	if r.DeleteAfter && r.Preview {
		return NewUsageError("--delete cannot be combined with --preview")
	}
	return nil
}

// flags whose value is the following token, when not given with "="
var valueFlags = map[string]bool{
	"-i": true, "--input": true,
	"-o": true, "--output": true,
	"-b": true, "--blur": true,
	"--brightness": true,
	"--config":     true,
}

// NormalizeArgs rewrites the two-letter short flag -br, which pflag cannot express,
// into its long form. Option values and everything after a bare "--" are left untouched.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	isValue := false
	for i, arg := range args {
		if isValue {
			out = append(out, arg)
			isValue = false
			continue
		}
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == "-br":
			out = append(out, "--brightness")
			isValue = true
		case strings.HasPrefix(arg, "-br"):
			// -br=0.4 and -br0.4
			value := strings.TrimPrefix(strings.TrimPrefix(arg, "-br"), "=")
			out = append(out, "--brightness="+value)
		default:
			out = append(out, arg)
			isValue = valueFlags[arg]
		}
	}
	return out
}
