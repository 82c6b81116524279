// Package compose executes seam plans against a pixel buffer.
//
// [Compositor.Crop] removes the selected ranges in two orthogonal
// passes: rows first, drawn strip by strip between the grid's vertical
// lines, then columns over the intermediate raster using strips derived
// from the already-remapped horizontal lines. Squished bands are scaled
// with golang.org/x/image/draw interpolation; plain keeps are byte
// copies, so an image folded without squish is reproduced losslessly.
//
// The grid travels with the raster: line positions and spans are pushed
// through the cumulative shift of each pass, and lines that stood inside
// a removed range are dropped. The result's grid is therefore valid
// input for further detection-free editing, so repeated folds compose.
package compose
