package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/profilespaces/internal/buildinfo"
	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/config"
	"github.com/dmitrijs2005/profilespaces/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/profilespaces/internal/filex"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

// Opener builds an App for one command run. The returned func releases
// its resources.
type Opener func(ctx context.Context) (*App, func(), error)

// NewRootCommand returns the command tree:
//
//	profilespaces          interactive REPL
//	profilespaces whoami   print the stored session's user
//	profilespaces logout   end the stored session
//	profilespaces version  print build information
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "profilespaces",
		Short:         "Terminal client for profilespaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return app.Run(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestored(cmd, open, func(ctx context.Context, app *App) error {
				return app.Whoami(ctx)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestored(cmd, open, func(ctx context.Context, app *App) error {
				return app.Logout(ctx)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	})

	return root
}

func withRestored(cmd *cobra.Command, open Opener, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	app, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := app.session.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return fn(ctx, app)
}

// Open is the production Opener: it builds the logger, the local database,
// the session store and the HTTP API client from cfg.
func Open(cfg *config.Config) Opener {
	return func(ctx context.Context) (*App, func(), error) {
		log, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
		if err != nil {
			return nil, nil, err
		}

		if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, nil, err
		}
		db, err := client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
			return nil, nil, err
		}

		store := metadata.NewSessionStore(db, cfg.SessionSecret)
		api := client.NewHTTPClient(cfg.APIBaseURL, cfg.APIKey,
			client.WithTimeout(cfg.RequestTimeout),
			client.WithLogger(log))

		app := NewApp(api, store,
			WithLogger(log),
			WithToastDuration(cfg.ToastDuration),
			WithShareBase(ShareBase(cfg.APIBaseURL)))

		closeFn := func() {
			if z, ok := log.(*logging.ZapLogger); ok {
				_ = z.Sync()
			}
			_ = db.Close()
		}
		return app, closeFn, nil
	}
}
