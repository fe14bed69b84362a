package vertex

import _ "embed"

// UnpackWGSL is a WGSL vertex stage that decodes the vertex format. The
// bit constants at its top mirror the classification fields of this
// package.
//
//go:embed unpack.wgsl
var UnpackWGSL string
