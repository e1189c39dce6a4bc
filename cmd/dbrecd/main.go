package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iamdanielyin/dbrec"
	"github.com/iamdanielyin/dbrec/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		socketPath string
		envFile    string
		logFile    string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:          "dbrecd",
		Short:        "Serve dbrec requests over a unix socket",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("socket") {
				if v := strings.TrimSpace(os.Getenv("DBREC_SOCKET_PATH")); v != "" {
					socketPath = v
				}
			}
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log := logger.Default()
			if logFile != "" {
				log = logger.NewFile(logger.FileConfig{Filename: logFile, Compress: true, Level: level})
				logger.SetDefault(log)
			} else {
				log.SetLevel(level)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := NewServer(socketPath, dbrec.DefaultNamespace, log)
			if err := server.Listen(); err != nil {
				return err
			}
			return server.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&socketPath, "socket", "/tmp/dbrec.sock", "unix socket path (env DBREC_SOCKET_PATH)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load environment variables from a .env file")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to a rotating file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	return cmd
}
