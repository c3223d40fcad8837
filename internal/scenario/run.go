package scenario

import (
	"context"
	"fmt"

	"github.com/inoxlang/seqwatch/internal/core"
	"github.com/rs/zerolog"
)

type RunOptions struct {
	// makes the index map the identity after each step, like a consumer would do after having processed it.
	ResetBetweenSteps bool

	// overrides the comparator of the scenario.
	Comparator string

	// defaults to a disabled logger.
	Logger *zerolog.Logger
}

// A Report is the result of the execution of a scenario.
type Report struct {
	Initial []any  `json:"initial"`
	Steps   []Step `json:"steps"`
}

// A Step is the state of the sequence after an operation.
type Step struct {
	Index         int            `json:"index"`
	Operation     string         `json:"op"`
	Result        any            `json:"result"`
	Elements      []any          `json:"elements"`
	IndexMap      []int          `json:"indexMap"`
	Notifications []Notification `json:"notifications"`
}

type Notification struct {
	Kind        core.MutationKind `json:"kind"`
	Items       []any             `json:"items,omitempty"`
	Start       *int              `json:"start,omitempty"`
	DeleteCount *int              `json:"deleteCount,omitempty"`
}

func NotificationFromMutation(m core.Mutation[any]) Notification {
	n := Notification{
		Kind:  m.Kind,
		Items: m.Items,
	}

	if m.Kind == core.SpliceReplaceMutation {
		start := m.Start
		n.Start = &start
		if !m.DeleteCountOmitted {
			deleteCount := m.DeleteCount
			n.DeleteCount = &deleteCount
		}
	}
	return n
}

func (n Notification) String() string {
	m := core.Mutation[any]{Kind: n.Kind, Items: n.Items}
	if n.Start != nil {
		m.Start = *n.Start
	}
	if n.DeleteCount != nil {
		m.DeleteCount = *n.DeleteCount
	} else {
		m.DeleteCountOmitted = true
	}
	return m.String()
}

// Run applies the operations of the scenario to an observed sequence and records the state after each operation.
// The context is checked between operations.
func Run(ctx context.Context, scenario *Scenario, opts RunOptions) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	comparatorName := scenario.Comparator
	if opts.Comparator != "" {
		comparatorName = opts.Comparator
	}
	comparator, err := ComparatorByName(comparatorName)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	seq := core.NewObservableSequence(append([]any{}, scenario.Initial...))
	observer := core.Attach(seq)

	var notifications []Notification
	observer.OnMutation(func(m core.Mutation[any]) bool {
		notifications = append(notifications, NotificationFromMutation(m))
		return true
	})

	report := &Report{
		Initial: append([]any{}, scenario.Initial...),
		Steps:   []Step{},
	}

	for i, op := range scenario.Operations {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("scenario interrupted before operation %d: %w", i, err)
		}

		notifications = nil
		result := apply(seq, observer, op, comparator)

		step := Step{
			Index:         i,
			Operation:     op.String(),
			Result:        result,
			Elements:      seq.Elements(),
			IndexMap:      observer.IndexMap().Encode(),
			Notifications: append([]Notification{}, notifications...),
		}
		report.Steps = append(report.Steps, step)

		logger.Debug().
			Int("step", i).
			Str("op", step.Operation).
			Stringer("index-map", observer.IndexMap()).
			Msg("operation applied")

		if opts.ResetBetweenSteps {
			observer.ResetIndices()
		}
	}

	return report, nil
}

func apply(seq *core.ObservableSequence[any], observer *core.Observer[any], op Operation, comparator core.Comparator[any]) any {
	switch op.Name() {
	case APPEND_OP:
		return seq.Append(op.Items...)
	case PREPEND_OP:
		return seq.Prepend(op.Items...)
	case REMOVE_LAST_OP:
		elem, _ := seq.RemoveLast()
		return elem
	case REMOVE_FIRST_OP:
		elem, _ := seq.RemoveFirst()
		return elem
	case SPLICE_OP:
		if len(op.Args) == 1 {
			return seq.SpliceTail(core.SaturatedInt(core.ToIntegerOrInfinity(op.Args[0])))
		}
		return seq.SpliceLoose(op.Args[0], op.Args[1], op.Items...)
	case REVERSE_OP:
		seq.Reverse()
		return nil
	case SORT_OP:
		seq.Sort(comparator)
		return nil
	case RESET_OP:
		observer.ResetIndices()
		return nil
	default:
		panic(fmt.Errorf("%w: %s", ErrUnknownOperation, op.Op))
	}
}

func ComparatorByName(name string) (core.Comparator[any], error) {
	switch name {
	case "", NATIVE_COMPARATOR:
		return core.DefaultCompare[any], nil
	case NATURAL_COMPARATOR:
		return core.NaturalCompare[any], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparator, name)
	}
}
