package cmd

import (
	"fmt"
	"io"

	"github.com/earthboundkid/versioninfo/v2"
)

func Version(w io.Writer) error {
	_, err := fmt.Fprintf(w, "gdm-auto-blur %s\n", versioninfo.Short())
	return err
}
