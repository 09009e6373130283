// Package snapshot renders a built scene to a fixed-size raster image
// for embedding in documents and previews.
//
// Rendering is a plain software rasterizer: triangles are projected
// with a fixed orbit camera, depth-sorted, flat-shaded, and painted
// back to front. The output is always 1280x800 (16:10); consumers that
// embed the image scale it by width and derive the height from the
// aspect ratio.
//
// A snapshot that cannot be produced is an absent result, not a
// program error: [PNG] returns nil on any failure and the caller shows
// a placeholder instead.
package snapshot
