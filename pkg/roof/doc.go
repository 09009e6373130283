// Package roof builds roof meshes from a small closed taxonomy of roof
// shapes and resolves covering tags to display colors.
//
// The factory is a lookup table from [Type] to a builder function; an
// unknown tag falls back to a flat roof with a logged warning rather
// than an error, because the surrounding application feeds us loosely
// validated form input.
package roof
