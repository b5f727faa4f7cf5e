// Package cli is the storedesk command line front-end. Every command runs
// against containers built by internal/app, and protected commands pass the
// route guard before they run.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/jrsteele09/storedesk/internal/app"
	"github.com/jrsteele09/storedesk/internal/config"
	"github.com/jrsteele09/storedesk/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// AppFactory builds the application for one command invocation.
type AppFactory func(ctx context.Context, cfg config.Config) (*app.App, error)

type CLI struct {
	root    *cobra.Command
	newApp  AppFactory
	app     *app.App
	version string
	nowFunc func() time.Time

	jsonOutput bool
	verbose    bool
}

type Option func(*CLI)

func WithAppFactory(f AppFactory) Option {
	return func(c *CLI) {
		c.newApp = f
	}
}

func WithVersion(v string) Option {
	return func(c *CLI) {
		c.version = v
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(c *CLI) {
		c.nowFunc = now
	}
}

func New(options ...Option) *CLI {
	c := &CLI{
		newApp: func(ctx context.Context, cfg config.Config) (*app.App, error) {
			return app.New(ctx, cfg)
		},
		version: "dev",
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}

	c.root = &cobra.Command{
		Use:   "storedesk",
		Short: "Point-of-sale back office from the terminal",
		Long: `storedesk signs you in to the storedesk API, keeps your session and the
store you are working in, and shows the store's products, orders, staff and tasks.

Example usage:
  storedesk login --email manager@storedesk.test
  storedesk stores list
  storedesk stores switch Harbour
  storedesk dashboard`,
		Version:           c.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}
	c.root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "output as JSON")
	c.root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	c.root.AddCommand(
		c.loginCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.storesCommand(),
		c.productsCommand(),
		c.ordersCommand(),
		c.staffCommand(),
		c.tasksCommand(),
		c.dashboardCommand(),
		c.themeCommand(),
	)
	return c
}

// Root exposes the cobra command, e.g. for output redirection and completion.
func (c *CLI) Root() *cobra.Command {
	return c.root
}

// Execute runs the command line args and releases the application afterwards.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)
	if c.app != nil {
		if closeErr := c.app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		c.app = nil
	}
	return err
}

func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	level := cfg.GetLogLevel()
	if c.verbose {
		level = "debug"
	}
	logger.Configure(cmd.ErrOrStderr(), level, cfg.GetEnv())

	if c.app, err = c.newApp(cmd.Context(), cfg); err != nil {
		return err
	}
	return c.authorize(cmd)
}

func (c *CLI) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
