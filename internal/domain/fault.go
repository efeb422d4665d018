package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fault is an unexpected error captured while an attempt ran.
// It is domain data: it forces the attempt into the exception status and
// is shown to recipients, it is never propagated as a failure of the core.
type Fault struct {
	// Kind is the classification name of the fault (for example "DiskFullError").
	Kind string `json:"kind" yaml:"kind"`

	// Message is the human-readable fault text.
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return f.Message
}

// FaultClassifier is implemented by errors that know their own classification name.
type FaultClassifier interface {
	FaultKind() string
}

// NewFault converts err into a Fault. A Fault already in the chain is copied;
// otherwise the kind comes from a FaultClassifier in the chain, falling back to
// the dynamic type name of err. Returns nil for a nil error.
func NewFault(err error) *Fault {
	if err == nil {
		return nil
	}

	var existing *Fault
	if errors.As(err, &existing) && existing != nil {
		return &Fault{Kind: existing.Kind, Message: err.Error()}
	}

	var classifier FaultClassifier
	if errors.As(err, &classifier) {
		return &Fault{Kind: classifier.FaultKind(), Message: err.Error()}
	}

	return &Fault{Kind: typeName(err), Message: err.Error()}
}

// typeName returns the unqualified type name of v without pointer markers.
func typeName(v any) string {
	name := strings.TrimLeft(fmt.Sprintf("%T", v), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
