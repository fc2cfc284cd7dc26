package client

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

type formatter struct {
	color *color.Color
}

func (f formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return text
	}
	return f.color.Sprint(text)
}

func (f formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	successText = formatter{color.New(color.FgGreen)}
	errorText   = formatter{color.New(color.FgRed)}
	warningText = formatter{color.New(color.FgYellow)}
	hintText    = formatter{color.New(color.FgCyan)}
)

// interactive reports whether progress may be drawn: not verbose and
// writing to a terminal.
func (a *App) interactive() bool {
	return !a.flags.Verbose && a.out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// progress shows a spinner on a terminal. In verbose mode, or when output
// is not a terminal, lines are printed instead.
type progress struct {
	spinner *spinner.Spinner
	out     io.Writer
	verbose bool
}

func (a *App) startProgress(message string) *progress {
	p := &progress{out: a.out, verbose: !a.interactive()}
	if p.verbose {
		fmt.Fprintln(p.out, message)
		return p
	}

	p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	p.spinner.Suffix = " " + message
	_ = p.spinner.Color("cyan")
	p.spinner.Start()
	return p
}

func (p *progress) update(message string) {
	if p.verbose {
		fmt.Fprintln(p.out, "  "+message)
		return
	}
	p.spinner.Suffix = " " + message
}

func (p *progress) stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// describeError turns an error into a user-facing line with a hint where
// one helps.
func describeError(err error) string {
	var partial *service.RotationPartialFailure

	switch {
	case errors.As(err, &partial):
		return err.Error() + "\n  " + hintText.Sprint("run `legacyshield emergency retry` to rewrap the failed files")
	case errors.Is(err, service.ErrRotationInterrupted):
		return err.Error() + "\n  " + hintText.Sprint("run `legacyshield emergency resume` to finish the rotation")
	case errors.Is(err, service.ErrRotationInProgress):
		return "another key rotation is running for this account, try again later"
	case errors.Is(err, service.ErrEmergencyNotConfigured):
		return "emergency access is not configured\n  " + hintText.Sprint("run `legacyshield emergency setup` first")
	case errors.Is(err, service.ErrWrongPassword):
		return "wrong login or password"
	case errors.Is(err, crypto.ErrVerificationFailed):
		return "unlock failed: wrong login or unlock phrase"
	case errors.Is(err, service.ErrTooManyRequests):
		return "too many unlock attempts, wait a minute and try again"
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return "file could not be decrypted: wrong key or tampered data"
	case errors.Is(err, service.ErrNoEmergencyWrap):
		return "this file was uploaded before emergency access was configured and cannot be opened from the portal"
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return "login is already taken"
	case errors.Is(err, store.ErrFileNotFound):
		return "file not found"
	case errors.Is(err, crypto.ErrSessionExpired):
		return "session expired, run the command again"
	}
	return err.Error()
}
