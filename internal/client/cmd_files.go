package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/spf13/cobra"
)

// defaultPageSize is the page size of the list commands.
const defaultPageSize = 50

func (a *App) newUploadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Encrypt a file locally and store it in the vault",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, args []string) error {
			path := args[0]
			plaintext, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			displayName := name
			if displayName == "" {
				displayName = filepath.Base(path)
			}

			if err = a.signIn(ctx, s); err != nil {
				return err
			}

			p := a.startProgress("encrypting and uploading " + displayName)
			file, err := s.FileService.Upload(ctx, displayName, plaintext)
			p.stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s uploaded %s (%d bytes) as %s\n", successText.Sprint("✓"), file.Name, file.Size, file.FileID)
			if !s.Session.HasEmergencyKey() {
				fmt.Fprintln(a.out, warningText.Sprint("  ! emergency access is not configured, your contact will not be able to open this file"))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default: base name of path)")

	return cmd
}

func (a *App) newDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download and decrypt a file",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, args []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}

			file, plaintext, err := s.FileService.Download(ctx, args[0])
			if err != nil {
				return err
			}
			return a.saveFile(file, plaintext, output)
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: the file's name)")

	return cmd
}

func (a *App) newListCmd() *cobra.Command {
	var (
		cursor string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files in the vault",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}

			page, err := s.FileService.List(ctx, cursor, limit)
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

func (a *App) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file-id>",
		Short: "Delete a file from the vault",
		Args:  cobra.ExactArgs(1),
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, args []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}
			if err := s.FileService.Delete(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(a.out, successText.Sprint("✓ ")+"deleted "+args[0])
			return nil
		}),
	}
}

func (a *App) printPage(page models.FilePage) {
	if len(page.Files) == 0 {
		fmt.Fprintln(a.out, "no files")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tEMERGENCY\tUPLOADED")
	for _, f := range page.Files {
		emergency := "yes"
		if !f.HasEmergencyWrap() {
			emergency = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", f.FileID, f.Name, f.Size, emergency, f.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()

	fmt.Fprintf(a.out, "%d of %d file(s)\n", len(page.Files), page.Total)
	if page.NextCursor != "" {
		fmt.Fprintln(a.out, hintText.Sprint("  more: --cursor "+page.NextCursor))
	}
}

// saveFile writes plaintext to output, or to the file's base name in the
// working directory. Existing files are never overwritten.
func (a *App) saveFile(file models.File, plaintext []byte, output string) error {
	if output == "" {
		output = filepath.Base(file.Name)
	}

	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if _, err = f.Write(plaintext); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(a.out, "%s saved %s (%d bytes) to %s\n", successText.Sprint("✓"), file.Name, len(plaintext), output)
	return nil
}
