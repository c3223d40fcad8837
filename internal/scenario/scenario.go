package scenario

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/inoxlang/seqwatch/internal/utils"
)

const (
	APPEND_OP       = "append"
	PREPEND_OP      = "prepend"
	REMOVE_LAST_OP  = "remove-last"
	REMOVE_FIRST_OP = "remove-first"
	SPLICE_OP       = "splice"
	REVERSE_OP      = "reverse"
	SORT_OP         = "sort"
	RESET_OP        = "reset"

	NATIVE_COMPARATOR  = "native"
	NATURAL_COMPARATOR = "natural"

	MAX_SPLICE_ARG_COUNT = 2
)

var (
	OPERATION_NAMES = []string{
		APPEND_OP, PREPEND_OP, REMOVE_LAST_OP, REMOVE_FIRST_OP, SPLICE_OP, REVERSE_OP, SORT_OP, RESET_OP,
	}

	COMPARATOR_NAMES = []string{NATIVE_COMPARATOR, NATURAL_COMPARATOR}

	//names of the native operations of other languages.
	OPERATION_ALIASES = map[string]string{
		"push":    APPEND_OP,
		"unshift": PREPEND_OP,
		"pop":     REMOVE_LAST_OP,
		"shift":   REMOVE_FIRST_OP,
	}

	ErrUnknownOperation   = errors.New("unknown operation")
	ErrUnknownComparator  = errors.New("unknown comparator")
	ErrMissingArgument    = errors.New("missing argument")
	ErrTooManyArguments   = errors.New("too many arguments")
	ErrUnexpectedArgument = errors.New("unexpected arguments or items")
)

// A Scenario is a sequence of mutating operations applied to an observed sequence, it is usually loaded from
// a YAML file:
//
//	initial: [0, 1, 2, 3, 4]
//	comparator: native
//	operations:
//	  - op: splice
//	    args: [4, 1]
//	    items: [4]
//	  - op: reverse
type Scenario struct {
	Initial    []any       `yaml:"initial" json:"initial"`
	Comparator string      `yaml:"comparator,omitempty" json:"comparator,omitempty"`
	Operations []Operation `yaml:"operations" json:"operations"`
}

type Operation struct {
	Op string `yaml:"op" json:"op"`

	// start and delete count for splice, the values are coerced like native numeric arguments.
	Args []any `yaml:"args,omitempty" json:"args,omitempty"`

	Items []any `yaml:"items,omitempty" json:"items,omitempty"`
}

func (op Operation) Name() string {
	if name, ok := OPERATION_ALIASES[op.Op]; ok {
		return name
	}
	return op.Op
}

func (op Operation) String() string {
	s := op.Name()
	if len(op.Args) > 0 || len(op.Items) > 0 {
		s += fmt.Sprint(append(slices.Clone(op.Args), op.Items...))
	}
	return s
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

func Parse(data []byte) (*Scenario, error) {
	scenario := &Scenario{}

	if err := yaml.UnmarshalWithOptions(data, scenario, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("invalid scenario: %s", yaml.FormatError(err, false, true))
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Validate checks the comparator and the operations, all errors are reported.
func (s *Scenario) Validate() error {
	var errs []error

	if s.Comparator != "" && !slices.Contains(COMPARATOR_NAMES, s.Comparator) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownComparator, s.Comparator))
	}

	for i, op := range s.Operations {
		if err := op.validate(); err != nil {
			errs = append(errs, fmt.Errorf("operation %d (%s): %w", i, op.Op, err))
		}
	}

	return utils.CombineErrorsWithPrefixMessage("invalid scenario", errs...)
}

func (op Operation) validate() error {
	name := op.Name()

	switch name {
	case APPEND_OP, PREPEND_OP:
		if len(op.Args) > 0 {
			return ErrUnexpectedArgument
		}
	case SPLICE_OP:
		if len(op.Args) == 0 {
			return fmt.Errorf("%w: start is required", ErrMissingArgument)
		}
		if len(op.Args) > MAX_SPLICE_ARG_COUNT {
			return ErrTooManyArguments
		}
		if len(op.Args) == 1 && len(op.Items) > 0 {
			return fmt.Errorf("%w: delete count is required when items are inserted", ErrMissingArgument)
		}
	case REMOVE_LAST_OP, REMOVE_FIRST_OP, REVERSE_OP, SORT_OP, RESET_OP:
		if len(op.Args) > 0 || len(op.Items) > 0 {
			return ErrUnexpectedArgument
		}
	default:
		return ErrUnknownOperation
	}
	return nil
}
