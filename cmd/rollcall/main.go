package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"

	"editcard/internal/config"
	"editcard/internal/logging"
	"editcard/internal/profile"
	"editcard/internal/trace"
	"editcard/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const serviceName = "rollcall"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg      config.Config
	logger   *logrus.Logger
	store    *profile.Store
	shutdown trace.ShutdownFunc
	closer   io.Closer
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	root := &cobra.Command{
		Use:   "rollcall",
		Short: "Edit your rollcall profile in the terminal",
		Long: `rollcall opens an edit card for the current user's profile.

Fields are edited in place; ctrl+s saves. The profile is stored as YAML at the
path given by --profile, ROLLCALL_PROFILE, or the config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, cfgFile)
		},
		RunE: a.withTeardown(func(cmd *cobra.Command) error {
			return a.runEdit(cmd.Context())
		}),
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/rollcall/config.yaml)")
	flags.String("profile", "", "profile YAML file")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Duration("save-timeout", 0, "give up on a save after this long")
	flags.Int("card-width", 0, "outer width of the edit card")

	root.AddCommand(newEditCmd(a), newShowCmd(a))
	return root
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the profile edit card (default)",
		Args:  cobra.NoArgs,
		RunE: a.withTeardown(func(cmd *cobra.Command) error {
			return a.runEdit(cmd.Context())
		}),
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile as YAML",
		Args:  cobra.NoArgs,
		RunE: a.withTeardown(func(cmd *cobra.Command) error {
			p, err := a.loadProfile(cmd.Context())
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(p); err != nil {
				return fmt.Errorf("encode profile: %w", err)
			}
			return enc.Close()
		}),
	}
}

func (a *app) setup(cmd *cobra.Command, cfgFile string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	shutdown, err := trace.Setup(cmd.Context(), serviceName)
	if err != nil {
		closer.Close()
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	a.shutdown = shutdown
	a.store = profile.NewStore(cfg.Profile, profile.WithDelay(cfg.SaveDelay))
	logger.WithFields(logrus.Fields{
		"profile": a.store.Path(),
		"command": cmd.Name(),
	}).Debug("rollcall starting")
	return nil
}

// withTeardown wraps a command body so logging and tracing are shut down
// whether or not it fails. Cobra skips post-run hooks after a RunE error.
func (a *app) withTeardown(run func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, a.teardown(cmd.Context(), err))
		}()
		return run(cmd)
	}
}

func (a *app) teardown(ctx context.Context, runErr error) error {
	if a.logger != nil {
		entry := a.logger.WithField("ok", runErr == nil)
		if runErr != nil {
			entry = entry.WithError(runErr)
		}
		entry.Debug("rollcall finished")
	}
	var errs []error
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
		a.shutdown = nil
	}
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
		a.closer = nil
	}
	return errors.Join(errs...)
}

// loadProfile reads the stored profile. A missing file starts a fresh profile
// for the current OS user.
func (a *app) loadProfile(ctx context.Context) (profile.Profile, error) {
	p, err := a.store.Load(ctx)
	if errors.Is(err, profile.ErrNotFound) {
		a.logger.WithField("path", a.store.Path()).Info("no profile yet; starting empty")
		return profile.Profile{Username: currentUsername()}, nil
	}
	return p, err
}

func (a *app) runEdit(ctx context.Context) error {
	p, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}
	form := ui.NewProfileForm(p, a.store, ui.FormConfig{
		SaveTimeout: a.cfg.SaveTimeout,
		CardWidth:   a.cfg.CardWidth,
		Logger:      a.logger,
	})
	prog := tea.NewProgram(form.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	if form.Dirty() {
		fmt.Fprintln(os.Stderr, "rollcall: exited with unsaved changes")
	}
	return nil
}

func currentUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rollcall: %v\n", err)
		os.Exit(1)
	}
}
