package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/spf13/cobra"
)

func (a *App) newPortalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Open a vault read-only as its emergency contact",
		Long: `Uses the owner's login and unlock phrase to open the vault read-only.
Pass the owner's login with --login.`,
	}

	cmd.AddCommand(
		a.newPortalUnlockCmd(),
		a.newPortalListCmd(),
		a.newPortalDownloadCmd(),
	)
	return cmd
}

// unlock opens the portal with a prompted phrase.
func (a *App) unlock(ctx context.Context, s *service.ClientServices) (models.UnlockGrant, error) {
	login, err := a.login()
	if err != nil {
		return models.UnlockGrant{}, err
	}

	phrase, err := a.prompter.Secret("Unlock phrase: ")
	if err != nil {
		return models.UnlockGrant{}, err
	}

	return s.EmergencyPortal.Unlock(ctx, login, phrase)
}

func (a *App) newPortalUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Check the unlock phrase",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			grant, err := a.unlock(ctx, s)
			if err != nil {
				return err
			}
			defer s.EmergencyPortal.Close()

			fmt.Fprintf(a.out, "%s vault unlocked read-only until %s\n",
				successText.Sprint("✓"), grant.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		}),
	}
}

func (a *App) newPortalListCmd() *cobra.Command {
	var (
		cursor string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files of the unlocked vault",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			if _, err := a.unlock(ctx, s); err != nil {
				return err
			}
			defer s.EmergencyPortal.Close()

			page, err := s.EmergencyPortal.List(ctx, cursor, limit)
			if err != nil {
				return err
			}
			a.printPage(page)
			return nil
		}),
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue after this file id")
	cmd.Flags().IntVar(&limit, "limit", defaultPageSize, "maximum number of files to show")

	return cmd
}

func (a *App) newPortalDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download and decrypt a file of the unlocked vault",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, args []string) error {
			if _, err := a.unlock(ctx, s); err != nil {
				return err
			}
			defer s.EmergencyPortal.Close()

			file, plaintext, err := s.EmergencyPortal.Download(ctx, args[0])
			if err != nil {
				return err
			}
			return a.saveFile(file, plaintext, output)
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: the file's name)")

	return cmd
}
