// Package export writes a built scene to portable mesh formats: binary
// STL (a plain triangle list) and GLB (the glTF scene-graph binary).
//
// Exporters never fail a download: if anything goes wrong while
// assembling a document, the caller receives a minimal valid
// placeholder file instead of an error. Whether the structural meshes
// (walls, roof, ground) join the PV modules in the output is the
// caller's choice.
package export
