package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/forge-dev/forge/pkg/project"
	"github.com/forge-dev/forge/pkg/telemetry/schema"
	"github.com/forge-dev/forge/pkg/telemetry/schema/latest"
	"github.com/forge-dev/forge/pkg/version"
)

// Store is the part of the config store the engine needs.
type Store interface {
	Raw(key string) (json.RawMessage, bool)
	Set(key string, v any) error
}

// Invocation describes the project forge is running in.
type Invocation struct {
	// Cwd is the project directory; it is made absolute before use.
	Cwd              string
	Lists            map[string]project.List
	DatabaseProvider string
}

// Engine runs the consent and cadence state machine for one CLI invocation.
type Engine struct {
	store    Store
	settings Settings
	client   *Client
	logger   *telemetryLogger
	out      io.Writer
	now      func() time.Time
	versions func(dir string) map[string]string
}

type Option func(*engineOptions)

type engineOptions struct {
	out        io.Writer
	debugOut   io.Writer
	now        func() time.Time
	httpClient *http.Client
	versions   func(dir string) map[string]string
	version    string
}

// WithOutput sets where the disclosure is printed. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *engineOptions) { o.out = w }
}

// WithDebugOutput sets where debug logs go when Settings.Debug is on.
// Defaults to stderr.
func WithDebugOutput(w io.Writer) Option {
	return func(o *engineOptions) { o.debugOut = w }
}

func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) { o.now = now }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *engineOptions) { o.httpClient = c }
}

// WithVersionResolver replaces project.ResolveVersions.
func WithVersionResolver(resolve func(dir string) map[string]string) Option {
	return func(o *engineOptions) { o.versions = resolve }
}

func NewEngine(store Store, settings Settings, opts ...Option) *Engine {
	o := engineOptions{
		out:      os.Stderr,
		debugOut: os.Stderr,
		now:      time.Now,
		versions: project.ResolveVersions,
		version:  version.Version,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := newDebugLogger(settings.Debug, o.debugOut)
	return &Engine{
		store:    store,
		settings: settings,
		client:   newClient(logger, settings, o.version, o.httpClient),
		logger:   logger,
		out:      o.out,
		now:      o.now,
		versions: o.versions,
	}
}

// Run invokes the engine once. It never fails: errors and panics are logged
// to the telemetry debug channel and dropped.
func Run(ctx context.Context, store Store, settings Settings, inv Invocation, opts ...Option) {
	NewEngine(store, settings, opts...).Run(ctx, inv)
}

func (e *Engine) Run(ctx context.Context, inv Invocation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("Telemetry run panicked", "panic", r)
		}
	}()

	if err := e.run(ctx, inv); err != nil {
		e.logger.Debug("Telemetry run failed", "error", err)
	}
}

func (e *Engine) run(ctx context.Context, inv Invocation) error {
	if reason := e.settings.skipReason(); reason != "" {
		e.logger.Debug("Skipping telemetry", "reason", reason)
		return nil
	}

	cwd, err := filepath.Abs(inv.Cwd)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}
	inv.Cwd = cwd

	value := schema.Load(e.store)
	now := e.now()
	today := calendarDate(now)

	decision := Decide(value, cwd, today)
	if decision.Status == StatusDisabled {
		e.logger.Debug("Skipping telemetry", "reason", "disabled by user")
		return nil
	}

	record := value.RecordOrDefault()
	if record.Projects == nil {
		record.Projects = map[string]*latest.Project{}
	}

	var errs []error
	for _, action := range decision.Actions {
		switch action {
		case ActionInform:
			return e.inform(record, now)
		case ActionSendProject:
			errs = append(errs, e.sendProject(ctx, record, inv, today))
		case ActionSendDevice:
			errs = append(errs, e.sendDevice(ctx, record, today))
		case ActionSkip:
			e.logger.Debug("Nothing to send today", "date", today)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) inform(record *latest.Record, now time.Time) error {
	PrintDisclosure(e.out)

	informedAt := now.UTC()
	record.InformedAt = &informedAt
	if err := e.store.Set(schema.Key, record); err != nil {
		return fmt.Errorf("saving disclosure date: %w", err)
	}
	return nil
}

func (e *Engine) sendProject(ctx context.Context, record *latest.Record, inv Invocation, today string) error {
	var previous *string
	if p, ok := record.Projects[inv.Cwd]; ok && p != nil {
		last := p.LastSentDate
		previous = &last
	}

	report := BuildProjectReport(previous, inv.Lists, e.versions(inv.Cwd), inv.DatabaseProvider)
	e.client.Send(ctx, EventTypeProject, report)

	record.Projects[inv.Cwd] = &latest.Project{LastSentDate: today}
	if err := e.store.Set(schema.Key, record); err != nil {
		return fmt.Errorf("saving project send date: %w", err)
	}
	return nil
}

func (e *Engine) sendDevice(ctx context.Context, record *latest.Record, today string) error {
	report := BuildDeviceReport(record.Device.LastSentDate)
	e.client.Send(ctx, EventTypeDevice, report)

	sent := today
	record.Device.LastSentDate = &sent
	if err := e.store.Set(schema.Key, record); err != nil {
		return fmt.Errorf("saving device send date: %w", err)
	}
	return nil
}
