package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/station-portal/identity/auth0"
	"github.com/jrsteele09/station-portal/internal/config"
	"github.com/jrsteele09/station-portal/internal/logger"
	"github.com/jrsteele09/station-portal/server"
	"github.com/jrsteele09/station-portal/server/authflowrepo"
	"github.com/jrsteele09/station-portal/sessions"
	"github.com/rs/zerolog/log"
)

var (
	version = "dev"
	cli     struct {
		EnvFile string           `help:"Load environment variables from this file when it exists." default:".env" type:"path"`
		Debug   bool             `help:"Enable debug logging."`
		Version kong.VersionFlag `help:"Print the version and exit."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("server"),
		kong.Description("Station portal web server."),
		kong.Vars{"version": version},
	)

	if err := run(cli.EnvFile, cli.Debug); err != nil {
		log.Error().Err(err).Msg("Error running server")
		kctx.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func run(envFile string, debugMode bool) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logger.Setup(c.GetEnv(), debugMode)
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, err := newServer(ctx, c)
	if err != nil {
		return err
	}
	go handler.RunBackground(ctx)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newServer(ctx context.Context, c config.Config) (*server.Server, error) {
	provider, err := auth0.New(ctx, auth0.Options{
		BaseURL:      c.GetProviderBaseURL(),
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		CallbackURL:  c.GetCallbackURL(),
		Audience:     c.GetAudience(),
	})
	if err != nil {
		return nil, fmt.Errorf("auth0 client: %w", err)
	}

	sessionManager, err := sessions.NewManager(
		sessions.NewInMemoryRepo(),
		c.GetSessionSecret(),
		c.GetSessionCookieName(),
		c.GetMaxSessionAge(),
	)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}

	return server.New(c, provider, sessionManager, authflowrepo.NewInMemoryRepo())
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
