package cmd

import (
	"github.com/rm-hull/gdm-auto-blur/internal"
	"github.com/sirupsen/logrus"
)

func Blur(req internal.ProcessingRequest, configPath string, configRequired bool, logger *logrus.Logger) error {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		internal.ShowVersion(logger)
		internal.UserInfo(logger)
		internal.SessionVars(logger)
	}

	cfg, err := internal.LoadConfig(configPath, configRequired)
	if err != nil {
		return err
	}

	app := internal.NewApp(cfg, internal.NewExecRunner(logger), logger)
	return app.Run(req)
}
