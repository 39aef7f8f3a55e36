package state

import (
	"fmt"
	"railway/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(root *Root)

// WithLogger replaces the logger used by the stack and the manager.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithMetrics collects substrate activity into c.
func WithMetrics(c metrics.Collector) Option {
	return func(r *Root) {
		if c != nil {
			r.metrics = c
		}
	}
}

// Root is the context of one game instance. It owns the only Manager and
// ChangeStack of that game; independent games must use independent roots.
type Root struct {
	items   map[string]Item
	manager *Manager
	stack   *ChangeStack
	logger  zerolog.Logger
	metrics metrics.Collector
}

func NewRoot(options ...Option) *Root {
	r := &Root{ // Default values
		items:   make(map[string]Item),
		logger:  log.Logger.With().Str("component", "state").Logger(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(r)
	}
	r.manager = newManager(r)
	r.stack = newChangeStack(r)
	return r
}

func (r *Root) ID() string     { return "" }
func (r *Root) Parent() Item   { return nil }
func (r *Root) Root() *Root    { return r }
func (r *Root) URI() string    { return "" }
func (r *Root) String() string { return "/" }

func (r *Root) Manager() *Manager          { return r.manager }
func (r *Root) Stack() *ChangeStack        { return r.stack }
func (r *Root) Logger() *zerolog.Logger    { return &r.logger }
func (r *Root) Metrics() metrics.Collector { return r.metrics }

// Locate finds a registered item by its URI, e.g. "/players/alice/cash".
func (r *Root) Locate(uri string) (Item, bool) {
	i, ok := r.items[uri]
	return i, ok
}

func (r *Root) register(i Item) {
	if _, ok := r.items[i.URI()]; ok {
		panic(fmt.Sprintf("state: duplicate item %q", i.URI()))
	}
	r.items[i.URI()] = i
}
