package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"supportdesk/internal/application/integration"
	"supportdesk/internal/application/session"
	"supportdesk/internal/interfaces/notify"
	"supportdesk/internal/shared/errors"
)

func newRegisterCommand(app *App) *cobra.Command {
	var in session.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), false)
			if err != nil {
				return err
			}
			if err := app.prompt.fill(&in.Name, "Name", false); err != nil {
				return err
			}
			if err := app.prompt.fill(&in.Email, "Email", false); err != nil {
				return err
			}
			if err := app.prompt.fill(&in.Password, "Password", true); err != nil {
				return err
			}
			if errs := session.ValidateRegister(in); len(errs) > 0 {
				return errs
			}

			res, err := c.Session.Register(cmd.Context(), in)
			if err != nil {
				app.showSession(notify.SeverityError, err.Error())
				return errors.Reported(err)
			}
			c.Integrations.Replace(integration.FromUser(res.User))

			message := res.Message
			if message == "" {
				message = "Registration successful"
			}
			app.showSession(notify.SeveritySuccess, message)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var in session.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the support backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), false)
			if err != nil {
				return err
			}
			if err := app.prompt.fill(&in.Email, "Email", false); err != nil {
				return err
			}
			if err := app.prompt.fill(&in.Password, "Password", true); err != nil {
				return err
			}
			if errs := session.ValidateLogin(in); len(errs) > 0 {
				return errs
			}

			res, err := c.Session.Login(cmd.Context(), in)
			if err != nil {
				app.showSession(notify.SeverityError, err.Error())
				return errors.Reported(err)
			}
			c.Integrations.Replace(integration.FromUser(res.User))

			message := res.Message
			if message == "" {
				message = "Login successful"
			}
			app.showSession(notify.LoginSeverity(message), message)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), false)
			if err != nil {
				return err
			}
			c.Integrations.Clear()
			if err := c.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			app.showSession(notify.SeverityInfo, "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and integration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			s := c.Session.Session()
			if s.User == nil {
				return errors.NewUnauthorizedError("Not logged in")
			}

			fmt.Fprintf(app.out, "%s <%s>\n", s.User.Name, s.User.Email)

			cfg := c.Integrations.Config()
			if cfg.HelpdeskConfigured() {
				fmt.Fprintf(app.out, "Helpdesk: %s\n", cfg.HelpdeskDomain)
			} else {
				fmt.Fprintln(app.out, "Helpdesk: not configured")
			}
			if cfg.CRMConfigured() {
				fmt.Fprintln(app.out, "CRM: configured")
			} else {
				fmt.Fprintln(app.out, "CRM: not configured")
			}
			if exp, ok := c.Session.TokenExpiry(); ok {
				fmt.Fprintf(app.out, "Session expires: %s\n", exp.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func (a *App) showSession(severity notify.Severity, message string) {
	a.notifier.Show(notify.Notification{
		ID:       notify.SessionToastID,
		Severity: severity,
		Message:  message,
	})
}
