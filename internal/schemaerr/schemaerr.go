// Package schemaerr models schema and engine construction diagnostics as a
// single tagged variant: an enumerated kind plus a structured payload, with
// the human message rendered as a pure function of both. This replaces a
// one-type-per-message error catalogue.
package schemaerr

import (
	"fmt"
	"strings"
)

// Kind enumerates the diagnostic categories.
type Kind int

const (
	KindUnsupportedType Kind = iota
	KindUnresolvedFieldType
	KindFieldWithResolverAndDefaultValue
	KindFieldWithResolverAndDefaultFactory
	KindWrongNumberOfResults
	KindInvalidFieldArgument
	KindWrongReturnTypeForUnion
	KindUnallowedReturnTypeForUnion
	KindDuplicateOperation
	KindUnnamedOperation
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedType:
		return "unsupported-type"
	case KindUnresolvedFieldType:
		return "unresolved-field-type"
	case KindFieldWithResolverAndDefaultValue:
		return "field-with-resolver-and-default-value"
	case KindFieldWithResolverAndDefaultFactory:
		return "field-with-resolver-and-default-factory"
	case KindWrongNumberOfResults:
		return "wrong-number-of-results"
	case KindInvalidFieldArgument:
		return "invalid-field-argument"
	case KindWrongReturnTypeForUnion:
		return "wrong-return-type-for-union"
	case KindUnallowedReturnTypeForUnion:
		return "unallowed-return-type-for-union"
	case KindDuplicateOperation:
		return "duplicate-operation"
	case KindUnnamedOperation:
		return "unnamed-operation"
	default:
		return "unknown"
	}
}

// Diagnostic is one schema diagnostic. Only the payload fields relevant to
// its Kind are set.
type Diagnostic struct {
	Kind     Kind
	Field    string
	Type     string
	Argument string
	Name     string
	Expected int
	Received int
	Allowed  []string
}

// Message renders the diagnostic text. It depends on nothing but the kind
// and payload, so identical diagnostics always render identically.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case KindUnsupportedType:
		return fmt.Sprintf("%s conversion is not supported", d.Type)
	case KindUnresolvedFieldType:
		return fmt.Sprintf("Could not resolve the type of %q. Check that the type is reachable from the schema root.", d.Field)
	case KindFieldWithResolverAndDefaultValue:
		return fmt.Sprintf("Field %q on type %q cannot define a default value and a resolver.", d.Field, d.Type)
	case KindFieldWithResolverAndDefaultFactory:
		return fmt.Sprintf("Field %q on type %q cannot define a default factory and a resolver.", d.Field, d.Type)
	case KindWrongNumberOfResults:
		return fmt.Sprintf("Received wrong number of results in dataloader, expected: %d, received: %d", d.Expected, d.Received)
	case KindInvalidFieldArgument:
		return fmt.Sprintf("Argument %q on field %q cannot be of type %q", d.Argument, d.Field, d.Type)
	case KindWrongReturnTypeForUnion:
		return fmt.Sprintf("The type %q cannot be resolved for the field %q", d.Type, d.Field)
	case KindUnallowedReturnTypeForUnion:
		return fmt.Sprintf("The type %q of the field %q is not in the list of the types of the union: [%s]",
			d.Type, d.Field, strings.Join(d.Allowed, ", "))
	case KindDuplicateOperation:
		return fmt.Sprintf("Operation %q is defined more than once", d.Name)
	case KindUnnamedOperation:
		return "Operation fixtures must define a name"
	default:
		return "unknown schema diagnostic"
	}
}

func (d Diagnostic) Error() string { return d.Message() }
