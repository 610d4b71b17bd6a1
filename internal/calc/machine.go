// Package calc implements the calculator's input state machine: key presses
// in, display text and evaluation requests out.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/rcliao/redstone-calc/internal/model"
	"github.com/rcliao/redstone-calc/internal/slots"
	"github.com/rcliao/redstone-calc/internal/store"
)

// Ceiling is the largest result the calculator accepts after perturbation.
const Ceiling = 250

var (
	// ErrEvaluation is returned when the expression cannot be evaluated.
	ErrEvaluation = errors.New("calculation error")

	// ErrInsufficientCompute is returned when the perturbed result is
	// above Ceiling.
	ErrInsufficientCompute = errors.New("insufficient compute")
)

// SlotError is a failed recall or delete.
type SlotError struct {
	Op    string
	Index int
	Err   error
}

func (e *SlotError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *SlotError) Unwrap() error { return e.Err }

// Options configures a Machine. Slots is required.
type Options struct {
	Slots     *slots.Store
	Evaluator Evaluator
	Announcer Announcer
	Recorder  store.Recorder

	// Perturb returns the offset added to every result. Defaults to a
	// uniform pick from 1, 2, 3.
	Perturb func() int

	Logger *slog.Logger
}

// Machine owns the expression and its flags. It is not safe for
// concurrent use; all presses come from one event loop.
type Machine struct {
	slots    *slots.Store
	eval     Evaluator
	announce Announcer
	recorder store.Recorder
	perturb  func() int
	logger   *slog.Logger

	state State
}

// Result is what the front-end renders after a key press.
type Result struct {
	Display string `json:"display"`
	Label   string `json:"label"`
	State   State  `json:"state"`

	// Evaluate asks the front-end to run its delay and then call
	// Machine.Evaluate.
	Evaluate bool `json:"evaluate,omitempty"`
}

// New returns a machine in the initial state.
func New(opts Options) *Machine {
	m := &Machine{
		slots:    opts.Slots,
		eval:     opts.Evaluator,
		announce: opts.Announcer,
		recorder: opts.Recorder,
		perturb:  opts.Perturb,
		logger:   opts.Logger,
	}
	if m.eval == nil {
		m.eval = StarlarkEvaluator{}
	}
	if m.announce == nil {
		m.announce = nopAnnouncer{}
	}
	if m.perturb == nil {
		m.perturb = func() int { return rand.IntN(3) + 1 }
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

func (m *Machine) result() Result {
	return Result{
		Display: m.state.Expr,
		Label:   m.slots.Label(),
		State:   m.state,
	}
}

// Press applies one key. Errors are user-facing: a missing slot on
// recall or delete. Evaluation happens in Evaluate.
func (m *Machine) Press(ctx context.Context, k Key) (Result, error) {
	var err error
	switch {
	case k.IsDigit():
		err = m.pressDigit(ctx, k)
	case k.IsOperator():
		m.pressOperator(k)
	default:
		switch k {
		case KeyDecimal:
			m.pressDecimal()
		case KeyEquals:
			res := m.result()
			res.Evaluate = m.state.Expr != ""
			return res, nil
		case KeyClear:
			m.pressClear(ctx)
		case KeyBackspace:
			m.pressBackspace()
		case KeyF:
			m.pressF(ctx)
		case KeyFMinus:
			m.state.Pending = PendingDelete
			m.announce.Announce(phraseArmDelete)
		default:
			return m.result(), fmt.Errorf("unknown key %q", k)
		}
	}
	return m.result(), err
}

func (m *Machine) pressDigit(ctx context.Context, k Key) error {
	d := k.Digit()
	switch m.state.Pending {
	case PendingRecall:
		m.state.Pending = PendingNone
		if m.state.Phase == PhaseOperator {
			m.state.Phase = PhaseEditing
		}
		v, err := m.slots.Recall(d)
		if err != nil {
			return &SlotError{Op: "recall", Index: d, Err: err}
		}
		m.state.Expr += v.String()
		m.announce.Announce(phraseRecalled(d))
		return nil
	case PendingDelete:
		m.state.Pending = PendingNone
		if err := m.slots.Delete(ctx, d); err != nil {
			return &SlotError{Op: "delete", Index: d, Err: err}
		}
		m.announce.Announce(phraseDeleted(d))
		return nil
	}

	if m.state.Phase == PhaseResult {
		m.state.Expr = string(k)
	} else {
		m.state.Expr += string(k)
	}
	m.state.Phase = PhaseEditing
	m.announce.Announce(string(k))
	return nil
}

func (m *Machine) pressDecimal() {
	switch {
	case m.state.Phase == PhaseResult:
		m.state.Expr = "0."
	case lastOperand(m.state.Expr) == "":
		m.state.Expr += "0."
	case !strings.Contains(lastOperand(m.state.Expr), "."):
		m.state.Expr += "."
	}
	m.state.Phase = PhaseEditing
	m.announce.Announce(phraseDecimal)
}

func (m *Machine) pressOperator(k Key) {
	m.state.Expr += string(k)
	m.state.Phase = PhaseOperator
	m.announce.Announce(operatorPhrases[k])
}

func (m *Machine) pressClear(ctx context.Context) {
	if m.state.Pending == PendingDelete {
		m.slots.ClearAll(ctx)
		m.state.Pending = PendingNone
		m.announce.Announce(phraseClearAll)
		return
	}
	m.state = State{}
	m.announce.Announce(phraseClear)
}

func (m *Machine) pressBackspace() {
	if m.state.Phase == PhaseResult || m.state.Expr == "" {
		return
	}
	r := []rune(m.state.Expr)
	m.state.Expr = string(r[:len(r)-1])
}

func (m *Machine) pressF(ctx context.Context) {
	if m.state.Phase == PhaseOperator {
		m.state.Pending = PendingRecall
		m.announce.Announce(phraseArmRecall)
		return
	}
	if m.state.Expr == "" {
		return
	}
	idx, err := m.slots.Save(ctx, m.state.Expr)
	if err != nil {
		m.logger.Debug("save display", "display", m.state.Expr, "error", err)
		return
	}
	m.announce.Announce(phraseSaved(idx))
}

// Evaluate computes the expression, adds the perturbation and applies the
// ceiling. On success the result becomes the new expression. On failure
// the expression is left as it was and the error wraps ErrEvaluation or
// ErrInsufficientCompute.
func (m *Machine) Evaluate(ctx context.Context) (Result, error) {
	expr := m.state.Expr
	if expr == "" {
		return m.result(), nil
	}

	// "=" always ends operator entry, even when evaluation fails.
	if m.state.Phase == PhaseOperator {
		m.state.Phase = PhaseEditing
	}

	v, err := m.eval.Eval(ctx, expr)
	if err != nil {
		m.record(ctx, model.TapeEntry{Expr: expr, Outcome: model.OutcomeError, Error: err.Error()})
		m.announce.Announce(phraseEvalFailure)
		return m.result(), fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	offset := m.perturb()
	v = v.Add(int64(offset))
	if v.Float64() > Ceiling {
		m.record(ctx, model.TapeEntry{Expr: expr, Outcome: model.OutcomeRejected, Offset: offset, Result: v.String()})
		m.announce.Announce(phraseCapacity)
		return m.result(), fmt.Errorf("%w: %s exceeds %d", ErrInsufficientCompute, v, Ceiling)
	}

	m.state.Expr = v.String()
	m.state.Phase = PhaseResult
	m.record(ctx, model.TapeEntry{Expr: expr, Outcome: model.OutcomeOK, Offset: offset, Result: v.String()})
	m.announce.Announce(phraseEquals(v.String()))
	return m.result(), nil
}

func (m *Machine) record(ctx context.Context, e model.TapeEntry) {
	if m.recorder == nil {
		return
	}
	if _, err := m.recorder.Record(ctx, e); err != nil {
		m.logger.Warn("record tape entry", "expr", e.Expr, "error", err)
	}
}
