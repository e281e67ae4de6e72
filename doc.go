// Package vexel provides the shared vocabulary for the vexel rendering
// stack: a packed 8-bit-per-channel color, an axis-aligned rectangle, a
// texture identity key, and the package logger.
//
// The real work happens in the subpackages:
//
//   - batch: the per-frame vertex model and draw-batch pool. A frame of
//     UI drawing is recorded into an ordered sequence of batches, each
//     holding one GPU draw call's worth of vertex and index data.
//   - texture: the texture cache. Population strategies (solid colors,
//     encoded images, procedural pixels) are deduplicated by content key
//     and resolved to GPU textures at most once per process.
//   - draw: the draw-state surface. draw.Params accumulates transform,
//     tint, texture binding, shader mode and clip-mask state; the
//     state differ turns consecutive Params values into the minimal
//     set of GPU state changes.
//   - render: the frame renderer. Consumes a finished batch pool and
//     issues the actual buffer uploads and indexed draw calls.
//
// Widget trees, layout, event dispatch and window plumbing are external
// collaborators; this module begins at the recorded draw stream and ends
// at GPU submission.
package vexel
