// Package fixture provides a YAML-configured execution engine that answers
// operations with canned results. It exists for local development and
// integration testing of clients: point the gateway at a fixture file and it
// serves deterministic responses without a real schema backend.
package fixture

import (
	"context"
	"fmt"
	"os"

	graphql "github.com/gqlgate/gqlgate/internal/graphql"
	schemaerr "github.com/gqlgate/gqlgate/internal/schemaerr"
	"gopkg.in/yaml.v3"
)

// Config is the root of a fixture file.
type Config struct {
	// Operations maps named operations to canned results.
	Operations []Fixture `yaml:"operations"`
	// Default, when set, answers operations with no matching name.
	Default *Fixture `yaml:"default"`
}

// Fixture is the canned result for one operation name.
type Fixture struct {
	Name   string         `yaml:"name"`
	Data   any            `yaml:"data"`
	Errors []FixtureError `yaml:"errors"`
}

type FixtureError struct {
	Message string `yaml:"message"`
	Path    []any  `yaml:"path"`
}

// Engine serves fixtures as ExecutionResults. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	byName   map[string]Fixture
	fallback *Fixture
}

// DiagnosticsError aggregates fixture validation failures.
type DiagnosticsError struct {
	Diagnostics []schemaerr.Diagnostic
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("invalid fixture set: %d diagnostic(s)", len(e.Diagnostics))
}

// Validate reports every problem in cfg, not just the first one.
func Validate(cfg Config) []schemaerr.Diagnostic {
	var ds []schemaerr.Diagnostic
	seen := make(map[string]bool, len(cfg.Operations))
	for _, fx := range cfg.Operations {
		if fx.Name == "" {
			ds = append(ds, schemaerr.Diagnostic{Kind: schemaerr.KindUnnamedOperation})
			continue
		}
		if seen[fx.Name] {
			ds = append(ds, schemaerr.Diagnostic{Kind: schemaerr.KindDuplicateOperation, Name: fx.Name})
			continue
		}
		seen[fx.Name] = true
	}
	return ds
}

// New builds an Engine from cfg, returning a *DiagnosticsError when the
// fixture set is invalid.
func New(cfg Config) (*Engine, error) {
	if ds := Validate(cfg); len(ds) > 0 {
		return nil, &DiagnosticsError{Diagnostics: ds}
	}
	e := &Engine{byName: make(map[string]Fixture, len(cfg.Operations)), fallback: cfg.Default}
	for _, fx := range cfg.Operations {
		e.byName[fx.Name] = fx
	}
	return e, nil
}

// Load reads and builds an Engine from a fixture file.
func Load(path string) (*Engine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return New(cfg)
}

func (e *Engine) ExecuteSync(_ context.Context, op graphql.Operation) *graphql.ExecutionResult {
	fx, ok := e.byName[op.OperationName]
	if !ok {
		if e.fallback == nil {
			return &graphql.ExecutionResult{
				Errors: []graphql.Error{{Message: fmt.Sprintf("no fixture for operation %q", op.OperationName)}},
			}
		}
		fx = *e.fallback
	}

	res := &graphql.ExecutionResult{Data: fx.Data}
	for _, fe := range fx.Errors {
		res.Errors = append(res.Errors, graphql.Error{Message: fe.Message, Path: graphql.Path(fe.Path)})
	}
	return res
}

// Operations returns the number of named fixtures, counting the default.
func (e *Engine) Operations() int {
	n := len(e.byName)
	if e.fallback != nil {
		n++
	}
	return n
}
