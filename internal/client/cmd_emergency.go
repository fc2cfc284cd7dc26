package client

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/spf13/cobra"
)

func (a *App) newEmergencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Manage the emergency unlock phrase",
		Long: `Configures the unlock phrase an emergency contact uses to open the vault read-only.

Changing the phrase rewraps the key of every file under the new emergency
key. Files that fail are listed and can be retried; an interrupted rotation
can be resumed from the local journal.`,
	}

	cmd.AddCommand(
		a.newPhraseCmd("setup", "Choose the unlock phrase for the first time"),
		a.newPhraseCmd("rotate", "Replace the unlock phrase and rewrap every file"),
		a.newRetryCmd(),
		a.newResumeCmd(),
	)
	return cmd
}

func (a *App) newPhraseCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}
			if use == "setup" && s.Session.HasEmergencyKey() {
				fmt.Fprintln(a.out, warningText.Sprint("! emergency access is already configured, the phrase will be replaced"))
			}

			phrase, err := a.newPhrase()
			if err != nil {
				return err
			}

			seq, result := s.RotationCoordinator.Rotate(ctx, phrase)
			return a.runRotation("rewrapping file keys", seq, result)
		}),
	}
}

func (a *App) newRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry [file-id...]",
		Short: "Rewrap the given files, or every file the last rotation did not finish",
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, args []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}

			seq, result := s.RotationCoordinator.Retry(ctx, args)
			return a.runRotation("retrying failed files", seq, result)
		}),
	}
}

func (a *App) newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Finish an interrupted rotation",
		Args:  cobra.NoArgs,
		RunE: a.withServices(func(ctx context.Context, s *service.ClientServices, _ []string) error {
			if err := a.signIn(ctx, s); err != nil {
				return err
			}

			seq, result := s.RotationCoordinator.Resume(ctx)
			return a.runRotation("resuming rotation", seq, result)
		}),
	}
}

// runRotation drains seq, drawing a progress bar on a terminal and one
// line per file otherwise, and returns the rotation's final error.
func (a *App) runRotation(message string, seq iter.Seq[models.RotationProgress], result func() error) error {
	var failed int
	if a.interactive() {
		var viewErr error
		if failed, viewErr = renderRotation(message, a.out, seq); viewErr != nil {
			a.logger.Debug().Err(viewErr).Msg("rotation progress could not be drawn")
		}
	} else {
		failed = a.printRotation(message, seq)
	}

	err := result()
	var partial *service.RotationPartialFailure
	switch {
	case err == nil:
		fmt.Fprintln(a.out, successText.Sprint("✓ ")+"emergency key is up to date on every file")
		return nil
	case errors.As(err, &partial):
		fmt.Fprintf(a.out, "%s %d file(s) could not be rewrapped:\n", warningText.Sprint("!"), failed)
		for _, id := range partial.FailedFileIDs {
			fmt.Fprintf(a.out, "  %s  %v\n", id, partial.Causes[id])
		}
	}
	return err
}

func (a *App) printRotation(message string, seq iter.Seq[models.RotationProgress]) int {
	fmt.Fprintln(a.out, message)

	failed := 0
	for step := range seq {
		status := "ok"
		if step.Err != nil {
			failed++
			status = "failed: " + step.Err.Error()
		}
		fmt.Fprintf(a.out, "  [%d/%d] %s %s\n", step.Done, step.Total, step.FileID, status)
	}
	return failed
}
