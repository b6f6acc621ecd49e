package schemaerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageRendering(t *testing.T) {
	cases := []struct {
		diag Diagnostic
		want string
	}{
		{
			Diagnostic{Kind: KindUnsupportedType, Type: "chan int"},
			"chan int conversion is not supported",
		},
		{
			Diagnostic{Kind: KindFieldWithResolverAndDefaultValue, Field: "name", Type: "User"},
			`Field "name" on type "User" cannot define a default value and a resolver.`,
		},
		{
			Diagnostic{Kind: KindWrongNumberOfResults, Expected: 3, Received: 1},
			"Received wrong number of results in dataloader, expected: 3, received: 1",
		},
		{
			Diagnostic{Kind: KindInvalidFieldArgument, Argument: "id", Field: "user", Type: "User"},
			`Argument "id" on field "user" cannot be of type "User"`,
		},
		{
			Diagnostic{Kind: KindUnallowedReturnTypeForUnion, Type: "Dog", Field: "pet", Allowed: []string{"Cat", "Fish"}},
			`The type "Dog" of the field "pet" is not in the list of the types of the union: [Cat, Fish]`,
		},
		{
			Diagnostic{Kind: KindDuplicateOperation, Name: "GetUser"},
			`Operation "GetUser" is defined more than once`,
		},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.diag.Message())
		require.Equal(t, tc.want, tc.diag.Error())
	}
}

func TestRenderingIsPure(t *testing.T) {
	d := Diagnostic{Kind: KindUnresolvedFieldType, Field: "friends"}
	require.Equal(t, d.Message(), d.Message())
}

func TestPlainFormatter(t *testing.T) {
	d := Diagnostic{Kind: KindUnnamedOperation}
	require.Equal(t, d.Message(), PlainFormatter{}.Format(d))
}

func TestDecoratedFormatter(t *testing.T) {
	d := Diagnostic{Kind: KindDuplicateOperation, Name: "X"}
	got := DecoratedFormatter{DocsBase: "https://example.com/errors/"}.Format(d)
	require.Equal(t,
		"error[duplicate-operation]: Operation \"X\" is defined more than once\n"+
			"  see: https://example.com/errors/duplicate-operation",
		got)

	bare := DecoratedFormatter{}.Format(d)
	require.NotContains(t, bare, "see:")
}

func TestFormatAll(t *testing.T) {
	ds := []Diagnostic{
		{Kind: KindUnnamedOperation},
		{Kind: KindDuplicateOperation, Name: "A"},
	}
	got := FormatAll(PlainFormatter{}, ds)
	require.Equal(t, ds[0].Message()+"\n"+ds[1].Message(), got)
}
