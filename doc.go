// Package drawpack assembles GPU draw commands for 2D vector graphics.
//
// # Overview
//
// drawpack sits between path tessellation and the GPU backend. It turns
// stroked contours, triangulated fills and positioned glyphs into packed
// vertices, splits them into independently drawable chunks, deduplicates
// per-draw state (transforms, clip equations, shader data) and emits draw
// records carrying a batching key.
//
// # Quick Start
//
//	ctx := drawpack.NewContext()
//
//	st := draw.State{
//	    ItemShader: strokeShader,
//	    Blend:      draw.BlendSourceOver,
//	    ItemMatrix: ctx.Acquire(pool.IdentityItemMatrix()),
//	    Clip:       ctx.Acquire(pool.NoClip()),
//	}
//	records := ctx.Stroke(pathID, contours, stroke.Style{Radius: 2, Cap: stroke.CapRound}, st)
//	// upload ctx.Store().Bytes() and the records' geometry, issue draws
//	ctx.EndFrame()
//
// # Architecture
//
// The pipeline is organized into:
//   - clip: convex polygon clipping against half-planes
//   - lod: arc segment counts for a flatness tolerance
//   - stroke: stroke vertex generation for edges, joins and caps
//   - vertex: the 48-byte vertex encoding shared with the shaders
//   - chunk: partitioning of encoded geometry with depth ranges
//   - pool: deduplicated, reference-counted packed values
//   - draw: data store placement, headers and batch keys
//   - upload: frame merging and GPU buffer creation through wgpu's HAL
//
// # Concurrency
//
// Nothing in drawpack blocks. A [Context] and everything it owns is
// confined to one goroutine; run one Context per worker. A [Group] does
// that on a worker pool and hands each job the Context of the worker
// running it. [SetLogger] and [Logger] are safe for concurrent use.
//
// # Logging
//
// drawpack logs through log/slog and is silent by default. See
// [SetLogger].
package drawpack
