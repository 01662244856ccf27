package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/projectstore"
)

// app bundles what every project command needs.
type app struct {
	api    *apiclient.Client
	creds  auth.Static
	store  *projectstore.Store
	logger logger.Logger
}

func newLogger(out io.Writer) logger.Logger {
	level := "warn"
	if flagDebug {
		level = "debug"
	}
	return logger.NewLogrusLoggerWithOutput(level, logger.FormatText, out)
}

// newApp wires the store against the configured server. Notifications go to
// stderr so --json output on stdout stays parseable.
func newApp() *app {
	log := newLogger(os.Stderr)
	api := apiclient.New(getConfigURL(), apiclient.WithLogger(log))
	creds := getCredentials()

	var sink notify.Sink = notify.Func(func(message string, severity notify.Severity) {
		if severity == notify.SeveritySuccess && flagJSON {
			return
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", severity, message)
	})
	if flagDebug {
		sink = notify.LogSink{Logger: log, Next: sink}
	}

	a := &app{api: api, creds: creds, logger: log}
	a.store = projectstore.New(api, creds, sink, log,
		projectstore.WithBasePath(getConfigBasePath()),
		projectstore.WithUnauthorizedHandler(a.reverify),
	)
	return a
}

// requireRead fails when no token is configured.
func (a *app) requireRead() error {
	if err := auth.RequireRole(a.creds); err != nil {
		return fmt.Errorf("%w: set a token via --token, BIZADMIN_TOKEN or ~/.bizadmin.yaml (see `bizctl login`)", err)
	}
	return nil
}

// requireWrite also refuses employees when a role is configured. The server
// enforces roles on its own; this only saves a round trip.
func (a *app) requireWrite() error {
	if err := a.requireRead(); err != nil {
		return err
	}
	if a.creds.UserRole == "" {
		return nil
	}
	return auth.RequireRole(a.creds, auth.RoleAdmin, auth.RoleManager)
}

// reverify asks the server whether the token is still valid after a 401 and
// tells the user what to do. It never discards the token.
func (a *app) reverify(ctx context.Context, err error) {
	verifyErr := a.api.WithToken(a.creds.AccessToken).Get(ctx, "/api/auth/verify", nil, nil)
	if verifyErr != nil {
		a.logger.Warn(ctx, "access token rejected", map[string]interface{}{
			"error": verifyErr.Error(),
		})
		fmt.Fprintln(os.Stderr, "Your access token was rejected. Run `bizctl login` to get a new one.")
		return
	}
	a.logger.Warn(ctx, "request unauthorized but token verified", map[string]interface{}{
		"error": err.Error(),
	})
}
