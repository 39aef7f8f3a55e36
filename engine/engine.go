package engine

import (
	"errors"
	"fmt"
	"railway/config"
	"railway/game"
	"railway/metrics"
	"railway/report"
	"railway/state"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrActionFailed = errors.New("action failed")
	// ErrInternal marks failures of the substrate or the rules code itself,
	// as opposed to actions the rules reject.
	ErrInternal = errors.New("an internal error occurred; the action could not complete")
	// ErrNotRecorded means the action was applied but the recorder failed.
	ErrNotRecorded = errors.New("action applied but not recorded")
)

// Recorder persists every accepted action, e.g. the action log writer.
type Recorder interface {
	Write(a game.Action) error
}

type Option func(*Engine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCollector records change stack activity in c.
func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// Engine owns one game: its root context, the report and the action history.
type Engine struct {
	root      *state.Root
	game      *game.Game
	report    *report.Buffer
	history   []game.Action
	records   []metrics.ActionRecord
	collector metrics.Collector
	recorder  Recorder
	logger    zerolog.Logger
}

// New sets up a game from cfg and closes the setup change set.
func New(cfg config.Config, options ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := &Engine{
		collector: metrics.NewDummyCollector(),
		logger:    log.Logger,
	}
	for _, option := range options {
		option(e)
	}

	e.root = state.NewRoot(state.WithLogger(e.logger), state.WithMetrics(e.collector))
	e.report = report.NewBuffer()
	e.root.Stack().AddReporter(e.report)
	e.game = game.NewGame(e.root, cfg, game.NewStandardRules(cfg.PriceStep), e.report)

	e.report.Addf("%s: %d players, %d companies", cfg.Title, len(cfg.Players), len(cfg.Companies))
	if err := e.root.Stack().Close("setup"); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return e, nil
}

func (e *Engine) Game() *game.Game                { return e.game }
func (e *Engine) Root() *state.Root               { return e.root }
func (e *Engine) Report() *report.Buffer          { return e.report }
func (e *Engine) Records() []metrics.ActionRecord { return e.records }

// History returns the accepted actions in the order they were processed,
// undo and redo included.
func (e *Engine) History() []game.Action {
	return append([]game.Action(nil), e.history...)
}

// Process applies one action. Undo and redo move through the change stack;
// every other action is validated, executed and closed as one change set.
// A failed action leaves the game as it was.
func (e *Engine) Process(a game.Action) error {
	start := time.Now()
	stack := e.root.Stack()

	var err error
	switch a.Type {
	case game.UndoAction:
		err = stack.Undo()
	case game.RedoAction:
		err = stack.Redo()
	default:
		err = e.apply(a)
	}
	if errors.Is(err, state.ErrCycleDetected) || errors.Is(err, state.ErrModelFailed) {
		err = fmt.Errorf("%w: %w", ErrInternal, err)
	}

	record := metrics.ActionRecord{
		Seq:       len(e.records) + 1,
		Player:    a.Player,
		Action:    a.String(),
		Accepted:  err == nil,
		Index:     stack.CurrentIndex(),
		Duration:  time.Since(start),
		Substrate: e.collector.Complete(),
	}
	if past := stack.Past(); err == nil && len(past) > 0 {
		record.Changes = past[len(past)-1].Len()
	}
	e.records = append(e.records, record)

	if err != nil {
		e.logger.Warn().Err(err).Str("action", a.String()).Msg("action rejected")
		return fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	e.history = append(e.history, a)
	e.logger.Debug().Str("action", a.String()).Int("index", stack.CurrentIndex()).Msg("action processed")

	if e.recorder != nil {
		if err := e.recorder.Write(a); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrNotRecorded, a.String(), err)
		}
	}
	return nil
}

func (e *Engine) apply(a game.Action) (err error) {
	if err := e.game.Validate(a); err != nil {
		return err
	}

	stack := e.root.Stack()
	index := stack.CurrentIndex()
	defer func() {
		if r := recover(); r != nil {
			stack.Rollback()
			// a panic while publishing the closed set leaves it on the stack
			if stack.CurrentIndex() > index {
				if uerr := stack.Undo(); uerr != nil {
					e.logger.Error().Err(uerr).Str("action", a.String()).Msg("cannot take back failed action")
				}
			}
			err = fmt.Errorf("%w: executing %q: %v", ErrInternal, a.String(), r)
		}
	}()
	e.game.Execute(a)
	return stack.Close(a.String())
}

// Replay builds a fresh game from cfg and processes actions in order. On
// failure it returns the index of the failing action, otherwise -1.
func Replay(cfg config.Config, actions []game.Action, options ...Option) (*Engine, int, error) {
	e, err := New(cfg, options...)
	if err != nil {
		return nil, -1, err
	}
	for i, a := range actions {
		if err := e.Process(a); err != nil {
			return e, i, fmt.Errorf("replay action %d: %w", i, err)
		}
	}
	return e, -1, nil
}
