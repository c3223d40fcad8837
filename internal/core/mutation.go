package core

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	MUTATION_KIND_NAMES = [...]string{
		AppendMutation:        "append",
		PrependMutation:       "prepend",
		RemoveLastMutation:    "remove-last",
		RemoveFirstMutation:   "remove-first",
		SpliceReplaceMutation: "splice-replace",
		ReverseMutation:       "reverse",
		SortMutation:          "sort",
	}
)

type MutationKind int

const (
	AppendMutation MutationKind = iota
	PrependMutation
	RemoveLastMutation
	RemoveFirstMutation
	SpliceReplaceMutation
	ReverseMutation
	SortMutation
)

func (k MutationKind) String() string {
	if k < 0 || int(k) >= len(MUTATION_KIND_NAMES) {
		return "mutation(" + strconv.Itoa(int(k)) + ")"
	}
	return MUTATION_KIND_NAMES[k]
}

func (k MutationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MutationKind) UnmarshalText(text []byte) error {
	kind, ok := MutationKindFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown mutation kind: %q", text)
	}
	*k = kind
	return nil
}

func MutationKindFromString(s string) (MutationKind, bool) {
	for i := 0; i < len(MUTATION_KIND_NAMES); i++ {
		if MUTATION_KIND_NAMES[i] == s {
			return MutationKind(i), true
		}
	}
	return 0, false
}

// A Mutation is the notification sent to the callbacks of an observer after a mutating operation has been
// fully applied to the sequence and its IndexMap. It carries the arguments of the call as they were passed,
// Start and DeleteCount are not clamped.
type Mutation[T any] struct {
	Kind MutationKind

	// elements passed to append, prepend & splice-replace.
	Items []T

	// set only for splice-replace.
	Start              int
	DeleteCount        int
	DeleteCountOmitted bool
}

func (m Mutation[T]) String() string {
	buf := strings.Builder{}
	buf.WriteByte('(')
	buf.WriteString(m.Kind.String())

	switch m.Kind {
	case AppendMutation, PrependMutation:
		fmt.Fprintf(&buf, ", %v", m.Items)
	case SpliceReplaceMutation:
		buf.WriteString(", ")
		buf.WriteString(strconv.Itoa(m.Start))
		if !m.DeleteCountOmitted {
			buf.WriteString(", ")
			buf.WriteString(strconv.Itoa(m.DeleteCount))
		}
		if len(m.Items) > 0 {
			fmt.Fprintf(&buf, ", %v", m.Items)
		}
	}

	buf.WriteByte(')')
	return buf.String()
}
