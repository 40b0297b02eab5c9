package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"sheetexport/internal/exporter"
	"sheetexport/internal/records"
	"sheetexport/pkg/contracts/domain"
)

// ProfileInfo describes a registered profile.
type ProfileInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Headers     []string `json:"headers"`
	Columns     int      `json:"columns"`
}

// Input carries the records for one export, either inline JSON or a file path.
type Input struct {
	Records []byte
	Source  string
}

// Binding ties a profile to the way its records are loaded.
type Binding interface {
	Info() ProfileInfo
	prepare(in Input, maxRecords int, bold *bool) (*preparedExport, error)
}

// preparedExport is a decoded, validated export ready to run.
type preparedExport struct {
	layout  exporter.Layout
	records int
	run     func(ctx context.Context, engine *exporter.Engine, dest, headerStart, headerEnd string) error
	project func() error
}

type binding[In, R any] struct {
	info       ProfileInfo
	newProfile func() *exporter.Table[R]
	loadFile   func(path string) ([]In, error)
	convert    func([]In) []R
}

// Bind creates a Binding. Records are decoded as In, validated, then
// converted to the profile's record type R.
func Bind[In, R any](description string, newProfile func() *exporter.Table[R], loadFile func(string) ([]In, error), convert func([]In) []R) Binding {
	p := newProfile()
	return &binding[In, R]{
		info: ProfileInfo{
			Name:        p.Name(),
			Description: description,
			Headers:     p.Headers(),
			Columns:     p.ColumnCount(),
		},
		newProfile: newProfile,
		loadFile:   loadFile,
		convert:    convert,
	}
}

func (b *binding[In, R]) Info() ProfileInfo { return b.info }

func (b *binding[In, R]) prepare(in Input, maxRecords int, bold *bool) (*preparedExport, error) {
	var items []In
	var err error
	switch {
	case in.Source != "":
		items, err = b.loadFile(in.Source)
	case len(in.Records) > 0:
		items, err = records.DecodeJSON[In](bytes.NewReader(in.Records))
	default:
		return nil, fmt.Errorf("%w: records or source is required", ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if maxRecords > 0 && len(items) > maxRecords {
		return nil, fmt.Errorf("%w: %d records exceeds the limit of %d", ErrTooManyRecords, len(items), maxRecords)
	}
	if err := records.Validate(items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows := b.convert(items)
	profile := b.newProfile()
	if bold != nil {
		profile.WithBoldHeaders(*bold)
	}
	return &preparedExport{
		layout:  profile,
		records: len(rows),
		run: func(ctx context.Context, engine *exporter.Engine, dest, headerStart, headerEnd string) error {
			return exporter.Export[R](ctx, engine, profile, rows, dest, headerStart, headerEnd)
		},
		project: func() error { return exporter.Project[R](profile, rows) },
	}, nil
}

// Registry maps profile names to bindings.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// DefaultRegistry holds the hooks, trades and tickers profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Bind(
		"Hook event log: one row per hook with its category, weather and time of day",
		exporter.HookProfile,
		records.LoadHooks,
		identity[domain.Hook],
	))
	r.MustRegister(Bind(
		"Daily trade records, one row per company per day",
		exporter.TradeProfile,
		records.LoadTrades,
		identity[domain.TradeRecord],
	))
	r.MustRegister(Bind(
		"Per-ticker summary statistics computed from daily trade records",
		exporter.TickerSummaryProfile,
		records.LoadTrades,
		domain.SummarizeTickers,
	))
	return r
}

func identity[T any](items []T) []T { return items }

// Register adds b. Names must be unique.
func (r *Registry) Register(b Binding) error {
	name := b.Info().Name
	if name == "" {
		return fmt.Errorf("profile name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bindings[name]; exists {
		return fmt.Errorf("profile %q already registered", name)
	}
	r.bindings[name] = b
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(b Binding) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Lookup returns the binding registered under name.
func (r *Registry) Lookup(name string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

// Profiles lists registered profiles sorted by name.
func (r *Registry) Profiles() []ProfileInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]ProfileInfo, 0, len(r.bindings))
	for _, b := range r.bindings {
		infos = append(infos, b.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
