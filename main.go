package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/gdm-auto-blur/cmd"
	"github.com/rm-hull/gdm-auto-blur/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	var verbose bool

	logger := logrus.New()
	initLogger(logger, false)

	// .env is optional
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gdm-auto-blur [-u] [-i INPUT] [-o OUTPUT] [-br BRIGHTNESS] [-b BLUR] [-p] [-d]",
		Short: "Set a blurred, dimmed wallpaper as the GDM background",
		Long: `Sets GDM background image while blurring it and changing brightness.
Works well with 'Blur my Shell' extension (https://github.com/aunetx/blur-my-shell)

'gdm-tools' are required! (https://github.com/realmazharhussain/gdm-tools)`,
		Args:          cmd.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			initLogger(logger, verbose)
		},
		RunE: func(c *cobra.Command, _ []string) error {
			req, err := cmd.RequestFromFlags(c.Flags())
			if err != nil {
				return err
			}
			return cmd.Blur(req, configPath, c.Flags().Changed("config"), logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", internal.DefaultConfigPath(), "Path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.RegisterFlags(rootCmd.Flags())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return internal.NewUsageError("%v", err)
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cmd.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.Version(c.OutOrStdout())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.SetArgs(internal.NormalizeArgs(os.Args[1:]))
	os.Exit(exitCode(rootCmd.Execute(), logger))
}

func initLogger(logger *logrus.Logger, verbose bool) {
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
}

func exitCode(err error, logger *logrus.Logger) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, internal.ErrWallpaperNotSet) {
		logger.Warnf("%v", err)
		logger.Warn("Please set your wallpaper from gnome-settings, or pass --input")
		return 0
	}
	logger.Error(err)
	if internal.KindOf(err) == internal.KindUsage {
		logger.Error("See 'gdm-auto-blur --help' for usage")
		return 2
	}
	return 1
}
