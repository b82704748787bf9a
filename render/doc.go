// Package render exports a mesh for inspection.
//
//   - SVG draws the region, the faces inside it (obtuse ones highlighted),
//     constrained edges and Steiner points with github.com/ajstarks/svgo/float.
//   - GeoJSON builds a github.com/paulmach/orb/geojson FeatureCollection with
//     the region, every inside face and every Steiner point as features.
//
// Coordinates are converted to float64 for output only; the mesh itself stays
// exact.
package render
