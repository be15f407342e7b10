package cli

import (
	"fmt"

	"github.com/alexanderramin/showrunner/internal/cli/formatter"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and manage passwords",
	}

	cmd.AddCommand(
		newAuthRegisterCmd(app),
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthSetPasswordCmd(app),
		newAuthWhoamiCmd(app),
	)

	return cmd
}

func newAuthRegisterCmd(app *App) *cobra.Command {
	var in service.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.promptSecret(ctx, "Password", &in.Password); err != nil {
				return err
			}
			if err := app.promptSecret(ctx, "Confirm password", &in.ConfirmPassword); err != nil {
				return err
			}
			p, err := app.Auth.Register(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. You are signed in as %s.\n", p.Name, p.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted when omitted in a terminal)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "Password again")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pending, err := app.Auth.HasPendingInvitation(ctx, email)
			if err != nil {
				return err
			}
			if pending {
				return fmt.Errorf("%s has a pending invitation: run `showrunner auth set-password` first", email)
			}
			if err := app.promptSecret(ctx, "Password", &password); err != nil {
				return err
			}
			p, err := app.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", formatter.Bold(p.Name), p.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted in a terminal)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newAuthSetPasswordCmd(app *App) *cobra.Command {
	var in service.SetPasswordInput

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Accept an invitation by choosing a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.promptSecret(ctx, "Password", &in.Password); err != nil {
				return err
			}
			if err := app.promptSecret(ctx, "Confirm password", &in.ConfirmPassword); err != nil {
				return err
			}
			p, err := app.Auth.SetPassword(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password set. Signed in as %s.\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Invited email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "New password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "New password again")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in person",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n%s\n", formatter.Bold(p.Name), p.Email, formatter.Dim(string(p.Role)))
			return nil
		},
	}
}
