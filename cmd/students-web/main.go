// main is the entry point of the students-web application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Build the site renderer from the embedded templates
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-web --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-web
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/http/handlers/pages"
	"github.com/aanand-mishra/students-web/internal/http/handlers/student"
	"github.com/aanand-mishra/students-web/internal/site"
	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
)

func main() {
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// If this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting students-web",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// sqlite.New opens the SQLite file and creates the students table.
	// We only ever hand the result around as the storage.Storage
	// interface — swapping the engine later means changing this one line.
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// The site renders from templates embedded in the binary, so this
	// only fails if the build itself is broken.
	webSite, err := site.New("Students")
	if err != nil {
		log.Error("failed to initialise site",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	static, err := site.StaticDir()
	if err != nil {
		log.Error("failed to initialise static assets",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Route table:
	//   GET    /                   → HTML list page
	//   POST   /student            → add a student from the form, redirect to /
	//   GET    /data               → {"count": n} for the counter script
	//   GET    /static/...         → stylesheet and counter script
	//   POST   /api/students       → create a new student (JSON)
	//   GET    /api/students       → list all students (JSON)
	//   GET    /api/students/{id}  → get one student by ID
	//   PUT    /api/students/{id}  → update a student
	//   DELETE /api/students/{id}  → delete a student
	//
	// "GET /{$}" matches the root path only; a plain "GET /" would
	// swallow every path that has no more specific route.
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", pages.Home(webSite, storage))
	router.HandleFunc("POST /student", pages.AddStudent(storage))
	router.HandleFunc("GET /data", pages.Count(storage))
	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	router.HandleFunc("POST /api/students", student.New(storage))
	router.HandleFunc("GET /api/students", student.GetList(storage))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(storage))
	router.HandleFunc("PUT /api/students/{id}", student.Update(storage))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(storage))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: router,

		// Timeouts prevent slow clients from pinning connections open.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks forever, so it runs in its own goroutine
	// and main stays free to wait for the shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown()
		// is called. That's expected, not an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Buffered so we don't miss the signal if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// Give in-flight requests up to 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
