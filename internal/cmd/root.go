/*
Package cmd provides the CLI commands for mailbridge.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailbridge/mailbridge/pkg/logger"
	"github.com/mailbridge/mailbridge/pkg/mailer/acumba"
	"github.com/mailbridge/mailbridge/pkg/mailer/resend"
	"github.com/mailbridge/mailbridge/pkg/mailer/transport"
)

// app carries state shared by all subcommands.
type app struct {
	logger  *slog.Logger
	cfgFile string
	cfg     Config
}

// NewRootCommand builds the mailbridge command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mailbridge",
		Short: "Send transactional email through HTTP email APIs",
		Long: `mailbridge delivers transactional email through provider HTTP APIs
selected by a transport DSN.

Example:
  mailbridge send --dsn 'acumba+api://TOKEN@default' \
    --from 'Team <team@example.com>' --to user@example.com \
    --subject 'Welcome' --html-file welcome.html
  mailbridge render --templates ./emails welcome.md --data Name=Alice
  mailbridge schemes`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML)")
	pf.StringVar(&a.cfg.Log.Level, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.cfg.Log.Format, "log-format", "", "log format: text or json")

	root.AddCommand(newSendCommand(a))
	root.AddCommand(newRenderCommand(a))
	root.AddCommand(newSchemesCommand(a))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	if a.cfg.DSN == "" {
		a.cfg.DSN = os.Getenv("MAILER_DSN")
	}
	if a.cfgFile != "" {
		file, err := loadConfig(a.cfgFile)
		if err != nil {
			return err
		}
		if err := mergeConfig(&a.cfg, file); err != nil {
			return err
		}
	}

	if a.cfg.Log.Format == "" {
		a.cfg.Log.Format = "text"
	}
	if _, err := logger.ParseLevel(a.cfg.Log.Level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	a.logger = logger.NewWithSentryWriter(cmd.ErrOrStderr(), a.cfg.Log, logger.TransportExtractor)
	return nil
}

// registry returns the transports available to the CLI.
func (a *app) registry() *transport.Registry {
	return transport.NewRegistry(
		transport.NullFactory{},
		acumba.NewFactory(nil, a.logger),
		resend.NewFactory(a.logger),
	)
}
