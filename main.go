package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"employeedir/app/client"
	"employeedir/app/controllers"
	"employeedir/app/page"
	"employeedir/app/repositories"
	"employeedir/app/routes"
	"employeedir/app/services"
	"employeedir/app/view"
	"employeedir/config"
	"employeedir/internal/logger"

	"go.uber.org/zap"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help":
		printHelp()
		return 0
	case "version":
		fmt.Printf("employeedir version %s\n", cliVersion)
		return 0
	case "serve":
		return withConfig(serve)
	case "mirror":
		return mirror(args[1:])
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printHelp()
		return 1
	}
}

func printHelp() {
	helpText := `Usage: employeedir <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Serve the employee directory page.
  mirror seed [--from <url>]     Copy users, posts and comments into the local mirror.
  mirror serve                   Serve the local mirror of the directory API.

Configuration is read from config.yaml and DIRECTORY_* environment variables.
`
	fmt.Println(helpText)
}

func mirror(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}
	switch args[0] {
	case "seed":
		from := client.DefaultBaseURL
		for i, arg := range args {
			if arg == "--from" && i+1 < len(args) {
				from = args[i+1]
			}
		}
		return withConfig(func(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
			return seedMirror(ctx, cfg, log, from)
		})
	case "serve":
		return withConfig(serveMirror)
	default:
		fmt.Printf("Unknown mirror command: %s\n\n", args[0])
		printHelp()
		return 1
	}
}

// withConfig loads configuration and a logger, runs fn until it returns or
// the process is interrupted, and maps its error to an exit code.
func withConfig(fn func(ctx context.Context, cfg *config.Config, log *zap.Logger) error) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	log := logger.New(cfg.Log.Level)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg, log); err != nil {
		log.Error("command failed", zap.Error(err))
		return 1
	}
	return 0
}

func newClient(cfg *config.Config, log *zap.Logger, baseURL string) *client.Client {
	return client.New(baseURL, client.WithTimeout(cfg.API.Timeout), client.WithLogger(log.Named("client")))
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	c := newClient(cfg, log, cfg.API.BaseURL)
	renderer := view.NewRenderer(c,
		view.WithStrategy(view.Strategy(cfg.Render.Strategy), cfg.Render.Concurrency),
		view.WithLogger(log.Named("view")))
	p := page.New(c, renderer, log.Named("page"))
	p.Init(ctx)

	router := routes.SetupPageRoutes(controllers.NewPageController(p, log), log)
	log.Info("starting directory page", zap.String("addr", cfg.Server.Addr), zap.String("api", cfg.API.BaseURL))
	return listenAndServe(ctx, cfg.Server.Addr, router)
}

func openMirror(cfg *config.Config, log *zap.Logger) (*services.MirrorService, func(), error) {
	db, err := repositories.Open(cfg.Mirror.DBPath)
	if err != nil {
		return nil, nil, err
	}
	service := services.NewMirrorService(
		repositories.NewBadgerUserRepository(db),
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		log.Named("mirror"),
	)
	return service, func() { db.Close() }, nil
}

func seedMirror(ctx context.Context, cfg *config.Config, log *zap.Logger, from string) error {
	service, closeDB, err := openMirror(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	stats, err := service.Seed(ctx, newClient(cfg, log, from))
	if err != nil {
		return fmt.Errorf("seed from %s: %w", from, err)
	}
	fmt.Printf("Seeded %d users, %d posts, %d comments into %s\n", stats.Users, stats.Posts, stats.Comments, cfg.Mirror.DBPath)
	return nil
}

func serveMirror(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	service, closeDB, err := openMirror(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	router := routes.SetupMirrorRoutes(controllers.NewMirrorController(service, log), log)
	log.Info("starting directory API mirror", zap.String("addr", cfg.Mirror.Addr), zap.String("db", cfg.Mirror.DBPath))
	return listenAndServe(ctx, cfg.Mirror.Addr, router)
}

// listenAndServe runs handler on addr until ctx is done, then shuts down.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
