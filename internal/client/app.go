package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/MKhiriev/legacy-shield/internal/store"
	"github.com/MKhiriev/legacy-shield/models"
	"github.com/spf13/cobra"
)

// loginEnv is read when --login is not given.
const loginEnv = "LEGACYSHIELD_LOGIN"

// Flags holds the persistent command-line flags.
type Flags struct {
	// Server overrides the configured server address.
	Server string
	// Journal overrides the configured rotation journal path.
	Journal string
	// Login is the owner account the command acts on.
	Login string
	// Verbose disables spinners and prints per-file progress.
	Verbose bool
}

type App struct {
	root      *cobra.Command
	flags     Flags
	buildInfo models.AppBuildInfo

	connect  Connector
	prompter Prompter
	out      io.Writer
	errOut   io.Writer

	logger *logger.Logger
}

// Option customises an App.
type Option func(*App)

// WithConnector replaces the default service wiring.
func WithConnector(c Connector) Option {
	return func(a *App) { a.connect = c }
}

// WithPrompter replaces the terminal prompter.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithOutput redirects normal and error output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

func NewApp(buildInfo models.AppBuildInfo, logger *logger.Logger, opts ...Option) *App {
	a := &App{
		buildInfo: buildInfo,
		prompter:  newTerminalPrompter(os.Stdin, os.Stderr),
		out:       os.Stdout,
		errOut:    os.Stderr,
		logger:    logger,
	}
	a.connect = a.defaultConnector

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCmd()
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	a.root.SetOut(a.out)
	a.root.SetErr(a.errOut)

	if err := a.root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(a.errOut, errorText.Sprint("✗ ")+describeError(err))
		return err
	}
	return nil
}

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "legacyshield",
		Short: "LegacyShield - a zero-knowledge document vault with emergency access.",
		Long: `LegacyShield encrypts documents on this machine before they reach the server.
The server never sees a password, an unlock phrase or a key.

An emergency contact who knows the owner's login and unlock phrase can open
the vault read-only with the "portal" commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Server, "server", "", "vault server address (overrides config)")
	pf.StringVar(&a.flags.Journal, "journal", "", "path of the local rotation journal (overrides config)")
	pf.StringVarP(&a.flags.Login, "login", "l", "", "account login (default $"+loginEnv+")")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "print progress line by line instead of a spinner")

	root.AddCommand(
		a.newRegisterCmd(),
		a.newLoginCmd(),
		a.newUploadCmd(),
		a.newDownloadCmd(),
		a.newListCmd(),
		a.newDeleteCmd(),
		a.newEmergencyCmd(),
		a.newPortalCmd(),
		a.newVersionCmd(),
	)

	return root
}

// withServices connects, runs fn and destroys every key afterwards,
// whether fn succeeded or not.
func (a *App) withServices(fn func(ctx context.Context, s *service.ClientServices, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		services, closeFn, err := a.connect(ctx, a.flags)
		if err != nil {
			return err
		}
		defer closeFn()

		return fn(ctx, services, args)
	}
}

func (a *App) defaultConnector(ctx context.Context, flags Flags) (*service.ClientServices, func(), error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}
	if err = cfg.ApplyOverrides(flags.Server, flags.Journal); err != nil {
		return nil, nil, fmt.Errorf("invalid flags: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, nil, err
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening rotation journal: %w", err)
	}

	services, err := service.NewClientServices(storages, *cfg, a.logger)
	if err != nil {
		storages.Close()
		return nil, nil, err
	}

	return services, func() {
		services.Close()
		if err := storages.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close rotation journal")
		}
	}, nil
}

func (a *App) login() (string, error) {
	login := a.flags.Login
	if login == "" {
		login = os.Getenv(loginEnv)
	}
	if login == "" {
		return "", errLoginRequired
	}
	return login, nil
}

// signIn logs the owner in with a prompted password.
func (a *App) signIn(ctx context.Context, s *service.ClientServices) error {
	login, err := a.login()
	if err != nil {
		return err
	}

	password, err := a.prompter.Secret("Password: ")
	if err != nil {
		return err
	}

	return s.AuthService.Login(ctx, login, password)
}

// newPhrase prompts twice for a new unlock phrase.
func (a *App) newPhrase() (string, error) {
	phrase, err := a.prompter.Secret("New unlock phrase: ")
	if err != nil {
		return "", err
	}
	if phrase == "" {
		return "", errEmptySecret
	}

	confirm, err := a.prompter.Secret("Repeat unlock phrase: ")
	if err != nil {
		return "", err
	}
	if confirm != phrase {
		return "", errSecretMismatch
	}
	return phrase, nil
}

var (
	errLoginRequired  = errors.New("login is required: pass --login or set " + loginEnv)
	errEmptySecret    = errors.New("value must not be empty")
	errSecretMismatch = errors.New("entries do not match")
)
