// Package graphiql carries the static in-browser exploration page served to
// clients that ask for HTML on a bare GET.
package graphiql

import _ "embed"

//go:embed graphiql.html
var page []byte

// Page returns the exploration page. The bytes are embedded at build time,
// so repeated calls return identical content.
func Page() []byte { return page }
