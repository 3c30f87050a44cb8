package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"apidocs/internal/api"
	"apidocs/internal/apidoc"
	"apidocs/internal/config"
	"apidocs/internal/logging"
	"apidocs/internal/metrics"
)

// BindError reports that the listener could not be bound. Like a LoadError
// it is fatal: nothing is served.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Stdout receives the single startup line. Defaults to os.Stdout.
	Stdout  io.Writer
	Metrics *metrics.Metrics
}

// Run loads the document, binds the listener, announces the docs URL and
// serves until ctx is cancelled. Nothing is bound when loading fails.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	applySafeDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	path := apidoc.ResolvePath(cfg.SpecPath)
	doc, err := apidoc.Load(path)
	if err != nil {
		return err
	}
	opts.Metrics.SetDocument(doc.Title(), doc.Version(), doc.OpenAPIVersion(), len(doc.YAML()), time.Now())
	logging.Infof("loaded api document %s (title=%q openapi=%s)", doc.Path(), doc.Title(), doc.OpenAPIVersion())

	handler := api.New(api.Dependencies{
		Config:   cfg,
		Document: doc,
		Metrics:  opts.Metrics,
	})

	ln, err := Listen(cfg.Addr())
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(opts.Stdout, "API docs available at %s\n", cfg.DocsURL(ln.Addr())); err != nil {
		logging.Warnf("write startup message: %v", err)
	}

	return Serve(ctx, ln, handler, cfg.ShutdownTimeout)
}

func applySafeDefaults(cfg *config.Config) {
	cfg.Normalize()
}

// Listen binds a TCP listener on addr, wrapping failures in a BindError.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}
	return ln, nil
}

// Serve takes ownership of ln and serves handler on it until ctx is done or
// the server fails.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Debugf("serving on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Warnf("shutdown: %v", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
