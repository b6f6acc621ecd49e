package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gqlgate/gqlgate/internal/eventbus"
	"github.com/gqlgate/gqlgate/internal/fixture"
	"github.com/gqlgate/gqlgate/internal/logging"
	"github.com/gqlgate/gqlgate/internal/metrics"
	"github.com/gqlgate/gqlgate/internal/otel"
	"github.com/gqlgate/gqlgate/internal/schemaerr"
	"github.com/gqlgate/gqlgate/internal/server"
)

const rootUsage = `gqlgate — GraphQL-over-HTTP gateway

USAGE:
  gqlgate <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL endpoint over a fixture engine
  check            Validate a fixture file
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -fixtures <file>              Fixture file defining canned operations (required)
  -server.addr <addr>           HTTP listen address (default: :8080)
  -server.pretty                Pretty-print JSON responses
  -server.timeout <duration>    Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>      Max request body size, 0 for unlimited
  -server.graphiql <bool>       Serve the exploration page on bare GET (default: true)
  -server.cors-origin <origin>  Allowed CORS origin. Repeatable; * for any
  -metrics.path <path>          Prometheus exposition path (default: /metrics)
  -otel.endpoint <addr>         OTLP collector endpoint
  -otel.service <name>          OpenTelemetry service name (default: gqlgate)
  -log.level <level>            debug, info, warn or error (default: info)
  -errors.decorated             Decorate fixture diagnostics with kind tags
`

const checkUsage = `check FLAGS:
  -fixtures <file>              Fixture file to validate (required)
  -errors.decorated             Decorate diagnostics with kind tags
  (Exits non-zero when the fixture set is invalid)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlgate", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "check":
		return cmdCheck(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "check":
		fmt.Print(checkUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func loadFixtures(path string, formatter schemaerr.Formatter) (*fixture.Engine, error) {
	engine, err := fixture.Load(path)
	if err != nil {
		var derr *fixture.DiagnosticsError
		if errors.As(err, &derr) {
			fmt.Fprintln(os.Stderr, schemaerr.FormatAll(formatter, derr.Diagnostics))
		}
		return nil, err
	}
	return engine, nil
}

func cmdServe(args []string) error {
	fixtures := ""
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(0)
	graphiql := true
	metricsPath := "/metrics"
	otelEndpoint := ""
	otelService := "gqlgate"
	logLevel := "info"
	decorated := false
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&fixtures, "fixtures", fixtures, "Fixture file")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.BoolVar(&graphiql, "server.graphiql", graphiql, "Serve the exploration page")
	fs.Var(&corsOrigins, "server.cors-origin", "Allowed CORS origin")
	fs.StringVar(&metricsPath, "metrics.path", metricsPath, "Prometheus exposition path")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	fs.StringVar(&logLevel, "log.level", logLevel, "Log level")
	fs.BoolVar(&decorated, "errors.decorated", decorated, "Decorate diagnostics")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if fixtures == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-fixtures is required")
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var formatter schemaerr.Formatter = schemaerr.PlainFormatter{}
	if decorated {
		formatter = schemaerr.DecoratedFormatter{}
	}

	engine, err := loadFixtures(fixtures, formatter)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	eventbus.Use(eventbus.New())
	logging.Attach(logger)
	m := metrics.New("gqlgate")
	m.Attach()
	reg, err := metrics.NewRegistry(m)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sopts := []server.Option{server.WithGraphiQL(graphiql)}
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	h, err := server.New(engine, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)
	mux.Handle(metricsPath, metrics.Handler(reg))

	logger.Info("GraphQL server listening", "addr", addr, "fixtures", fixtures)
	return http.ListenAndServe(addr, mux)
}

func cmdCheck(args []string) error {
	fixtures := ""
	decorated := false
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&fixtures, "fixtures", fixtures, "Fixture file")
	fs.BoolVar(&decorated, "errors.decorated", decorated, "Decorate diagnostics")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	if fixtures == "" {
		fmt.Fprint(os.Stderr, checkUsage)
		return fmt.Errorf("-fixtures is required")
	}

	var formatter schemaerr.Formatter = schemaerr.PlainFormatter{}
	if decorated {
		formatter = schemaerr.DecoratedFormatter{}
	}

	engine, err := loadFixtures(fixtures, formatter)
	if err != nil {
		return err
	}
	fmt.Printf("OK: %d operation fixture(s)\n", engine.Operations())
	return nil
}
