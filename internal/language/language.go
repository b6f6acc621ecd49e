package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type QueryDocument = ast.QueryDocument

// ParseQuery parses GraphQL query text. Only syntax is checked; validation
// against a schema is the engine's job.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// OperationType reports the type of the operation that would be selected for
// name ("query", "mutation" or "subscription"). When name is empty and the
// document holds a single operation, that one is used. Returns "" when no
// operation can be determined.
func OperationType(doc *QueryDocument, name string) string {
	op := doc.Operations.ForName(name)
	if op == nil && name == "" && len(doc.Operations) == 1 {
		op = doc.Operations[0]
	}
	if op == nil {
		return ""
	}
	return string(op.Operation)
}
