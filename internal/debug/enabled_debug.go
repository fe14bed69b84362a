//go:build drawdebug

package debug

// Enabled reports whether contract assertions are active.
const Enabled = true
