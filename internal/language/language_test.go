package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	doc, err := ParseQuery(`query Greet { hello }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)

	_, err = ParseQuery(`query {`)
	require.Error(t, err)
}

func TestOperationType(t *testing.T) {
	doc, err := ParseQuery(`
		query GetUser { user { id } }
		mutation UpdateUser { updateUser { id } }
	`)
	require.NoError(t, err)

	require.Equal(t, "query", OperationType(doc, "GetUser"))
	require.Equal(t, "mutation", OperationType(doc, "UpdateUser"))
	require.Equal(t, "", OperationType(doc, "Missing"))
	// Ambiguous without a name when the document has several operations.
	require.Equal(t, "", OperationType(doc, ""))

	single, err := ParseQuery(`{ hello }`)
	require.NoError(t, err)
	require.Equal(t, "query", OperationType(single, ""))
}
