// Package debug holds contract assertions that are compiled in only with
// the drawdebug build tag. Release builds skip the checks entirely.
package debug

import "fmt"

// Assert panics with the formatted message when cond is false and
// assertions are enabled.
func Assert(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("drawpack: contract violation: "+format, args...))
	}
}
