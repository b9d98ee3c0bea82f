// Package flickgl provides a minimal, predictable software renderer for the
// flick panels.
//
// FlickGL draws meshes and simple scenes into a caller-provided Target. The
// pipeline is fixed:
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// The renderer is software-only and avoids allocations in the render hot
// path. Panels that draw flat 2D content use the exported screen-space
// primitives (DrawLine, FillTriangle) together with Mat3 transforms instead
// of the 3D pipeline.
//
// Numeric backend:
//
// By default FlickGL uses float32 math. A fixed-point backend can be selected
// at build time with the build tag `flickgl_fixed` (currently minimal/stubbed;
// float is recommended).
package flickgl
