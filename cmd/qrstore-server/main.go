package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfryer1193/qrstore/gallery/application"
	"github.com/dfryer1193/qrstore/gallery/persistence"
	"github.com/dfryer1193/qrstore/internal/rest"
	"github.com/dfryer1193/qrstore/shared/config"
	"github.com/dfryer1193/qrstore/shared/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrstore-server",
		Short: "Serve the QR image gallery",
		Long: `Serve the QR image gallery frontend and its image API.

Uploaded images are stored in a single directory under their original names.
Settings come from the environment (and a .env file); flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.ContentRoot, "root", cfg.ContentRoot, "directory holding the frontend")
	flags.StringVar(&cfg.StoreDir, "store", cfg.StoreDir, "directory holding uploaded images")
	flags.StringVar(&cfg.IndexFile, "index", cfg.IndexFile, "entry document served for /")
	flags.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", cfg.MaxUploadBytes, "largest accepted upload, 0 for no limit")
	flags.BoolVar(&cfg.WatchStore, "watch", cfg.WatchStore, "log changes made to the image directory")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "json or console")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	})

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	repo := persistence.NewImageRepository(cfg.StoreDir)
	if err := repo.EnsureDir(); err != nil {
		return err
	}

	if cfg.WatchStore {
		watcher, err := persistence.NewStoreWatcher(repo.Dir(), func(e persistence.StoreEvent) {
			log.Debug().Str("filename", e.Name).Str("op", e.Op).Msg("Image directory changed")
		})
		if err != nil {
			log.Warn().Err(err).Msg("Image directory watcher disabled")
		} else {
			defer watcher.Close()
			go func() {
				if err := watcher.Run(ctx); err != nil {
					log.Error().Err(err).Msg("Image directory watcher stopped")
				}
			}()
		}
	}

	imageService := application.NewImageService(repo, cfg.MaxUploadBytes)
	router := rest.NewRouter(
		rest.NewImageHandler(imageService),
		rest.NewStaticHandler(cfg.ContentRoot, cfg.IndexFile),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("root", cfg.ContentRoot).
			Str("store", cfg.StoreDir).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
