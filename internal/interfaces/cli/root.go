// Package cli is the supportdesk command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/interfaces/notify"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

// App holds what the commands share during one run.
type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	notifier  *notify.Notifier
	prompt    *prompter
	container *Container
}

func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		in:       in,
		out:      out,
		errOut:   errOut,
		notifier: notify.New(errOut),
		prompt:   newPrompter(in, errOut),
	}
}

// boot loads configuration and wires the container on first use. verify
// controls whether a stored session is checked against the backend.
func (a *App) boot(ctx context.Context, verify bool) (*Container, error) {
	if a.container != nil {
		return a.container, nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if a.verbose {
		cfg.Logger.Level = "debug"
		cfg.Logger.Verbose = true
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c, err := NewContainer(cfg, a.notifier, logger.NewLogger())
	if err != nil {
		return nil, err
	}
	a.container = c

	if verify {
		if err := c.Bootstrap(ctx); err != nil {
			return nil, err
		}
	} else if err := c.Session.Restore(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *App) Close() {
	if a.container == nil {
		return
	}
	if err := a.container.Close(); err != nil {
		a.container.Log.Warnw("failed to close session store", "error", err)
	}
}

// report shows err unless a use case already did.
func (a *App) report(err error) {
	if errors.IsReported(err) {
		return
	}
	a.notifier.Error(err.Error())
}

func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "supportdesk",
		Short:         "Support desk client",
		Long:          `Supportdesk signs in to the support backend, stores helpdesk and CRM credentials, and browses tickets with their requester and CRM context.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newConfigureCommand(app),
		newTicketsCommand(app),
		newWebhooksCommand(app),
		newDashboardCommand(app),
		newVersionCommand(app),
	)

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	app := NewApp(in, out, errOut)
	defer app.Close()

	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		app.report(err)
		return 1
	}
	return 0
}

func requireSession(c *Container) error {
	if !c.Session.Session().IsAuthenticated() {
		return errors.NewUnauthorizedError("Please log in first")
	}
	return nil
}

func requireHelpdesk(c *Container) error {
	if err := requireSession(c); err != nil {
		return err
	}
	if !c.Integrations.Config().HelpdeskConfigured() {
		return errors.NewNotConfiguredError("Configuration required", "run `supportdesk configure helpdesk` first")
	}
	return nil
}
