package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/spf13/cobra"
)

func (a *App) newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new vault account",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			login, err := a.login()
			if err != nil {
				return err
			}

			password, err := a.prompter.Secret("Password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errEmptySecret
			}
			confirm, err := a.prompter.Secret("Repeat password: ")
			if err != nil {
				return err
			}
			if confirm != password {
				return errSecretMismatch
			}

			if err = s.AuthService.Register(ctx, login, password); err != nil {
				return err
			}

			fmt.Fprintln(a.out, successText.Sprint("✓ ")+"account "+login+" created")
			fmt.Fprintln(a.out, hintText.Sprint("  next: `legacyshield emergency setup` to choose an unlock phrase for your emergency contact"))
			return nil
		}),
	}
}

func (a *App) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the account password and emergency access status",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}

			userID, err := s.AuthService.UserID()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s logged in as user %d\n", successText.Sprint("✓"), userID)
			if s.Session.HasEmergencyKey() {
				fmt.Fprintln(a.out, "  emergency access: "+successText.Sprint("configured"))
			} else {
				fmt.Fprintln(a.out, "  emergency access: "+warningText.Sprint("not configured"))
			}
			return nil
		}),
	}
}
