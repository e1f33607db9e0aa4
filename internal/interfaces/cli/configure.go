package cli

import (
	"github.com/spf13/cobra"
)

func newConfigureCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store integration credentials",
		Long:  `Save the helpdesk API key and domain, or the CRM access token, on the backend for the signed-in user.`,
	}

	cmd.AddCommand(
		newConfigureHelpdeskCommand(app),
		newConfigureCRMCommand(app),
	)

	return cmd
}

func newConfigureHelpdeskCommand(app *App) *cobra.Command {
	var domain, apiKey string

	cmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Save helpdesk credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireSession(c); err != nil {
				return err
			}
			if err := app.prompt.fill(&domain, "Helpdesk domain", false); err != nil {
				return err
			}
			if err := app.prompt.fill(&apiKey, "API key", true); err != nil {
				return err
			}

			message, err := c.Integrations.SaveHelpdeskConfig(cmd.Context(), apiKey, domain)
			if err != nil {
				return err
			}
			if message == "" {
				message = "Helpdesk configuration saved"
			}
			app.notifier.Success(message)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Helpdesk subdomain, e.g. your-domain")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Helpdesk API key (prompted when omitted)")

	return cmd
}

func newConfigureCRMCommand(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "crm",
		Short: "Save the CRM access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.boot(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := requireSession(c); err != nil {
				return err
			}
			if err := app.prompt.fill(&token, "Access token", true); err != nil {
				return err
			}

			message, err := c.Integrations.SaveCRMConfig(cmd.Context(), token)
			if err != nil {
				return err
			}
			if message == "" {
				message = "CRM configuration saved"
			}
			app.notifier.Success(message)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "CRM private app access token (prompted when omitted)")

	return cmd
}
