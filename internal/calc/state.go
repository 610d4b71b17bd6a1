package calc

import "strings"

// Phase is where the expression stands relative to the last key.
type Phase int

const (
	// PhaseEditing: digits append to the expression.
	PhaseEditing Phase = iota
	// PhaseOperator: an operator was just pressed; F arms a recall.
	PhaseOperator
	// PhaseResult: the display shows a computed value; a digit starts over.
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseOperator:
		return "operator"
	case PhaseResult:
		return "result"
	}
	return "editing"
}

// Pending is a single-use command waiting for a digit as slot index.
type Pending int

const (
	PendingNone Pending = iota
	PendingRecall
	PendingDelete
)

func (p Pending) String() string {
	switch p {
	case PendingRecall:
		return "recall"
	case PendingDelete:
		return "delete"
	}
	return "none"
}

// State is everything the machine knows between key presses.
type State struct {
	Expr    string  `json:"expr"`
	Phase   Phase   `json:"phase"`
	Pending Pending `json:"pending"`
}

// HasResult reports whether the display shows a just-computed value.
func (s State) HasResult() bool { return s.Phase == PhaseResult }

// WaitingForF reports whether the next F press recalls instead of saves.
func (s State) WaitingForF() bool { return s.Phase == PhaseOperator }

const operators = "+-*/"

// lastOperand returns the trailing numeric token of expr.
func lastOperand(expr string) string {
	i := strings.LastIndexAny(expr, operators)
	return expr[i+1:]
}
