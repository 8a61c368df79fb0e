package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/resume-slides/internal/analytics"
	"github.com/Zachkp/resume-slides/internal/config"
	"github.com/Zachkp/resume-slides/internal/contact"
	"github.com/Zachkp/resume-slides/internal/content"
	"github.com/Zachkp/resume-slides/internal/server"
	"github.com/Zachkp/resume-slides/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the résumé",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.Server.Mode)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		holder, watcher, err := loadContent(cfg)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		var sink analytics.Sink
		if cfg.Analytics.Enabled {
			sink = st
		}
		tracker := analytics.New(sink, logger.Named("analytics"))

		mailer := contact.NewMailer(contact.Config{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		}, logger.Named("contact"))
		if !mailer.Configured() {
			logger.Warn("SMTP credentials not configured, contact form will report errors")
		}

		srv, err := server.New(server.Deps{
			Config:  cfg,
			Content: holder,
			Store:   st,
			Tracker: tracker,
			Mailer:  mailer,
			Log:     logger,
		})
		if err != nil {
			return err
		}

		logger.Info("privacy: visitor tracking enabled with hashed IP addresses")

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Run(gctx) })
		if watcher != nil {
			g.Go(func() error { return watcher.Run(gctx) })
		}
		return g.Wait()
	},
}

// loadContent reads the configured content file, or the built-in résumé
// when none is set. The watcher is nil unless reloading was asked for.
func loadContent(cfg *config.Config) (*content.Holder, *content.Watcher, error) {
	if cfg.Content.Path == "" {
		c, err := content.Default()
		if err != nil {
			return nil, nil, err
		}
		return content.NewHolder(c), nil, nil
	}

	c, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	holder := content.NewHolder(c)
	if !cfg.Content.Watch {
		return holder, nil, nil
	}

	w, err := content.NewWatcher(cfg.Content.Path, holder, logger.Named("content"))
	if err != nil {
		return nil, nil, err
	}
	return holder, w, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	// A bare invocation serves, as the site always has.
	rootCmd.RunE = serveCmd.RunE
}
