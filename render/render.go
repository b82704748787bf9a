package render

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/region"
)

// ErrNilMesh indicates a nil triangulation or region.
var ErrNilMesh = errors.New("render: mesh or region is nil")

// Drawing styles.
const (
	styleRegion  = "fill:none;stroke:black;stroke-width:2"
	styleFace    = "fill:#e8f0fe;stroke:#5f6368;stroke-width:0.5"
	styleObtuse  = "fill:#f4c7c3;stroke:#5f6368;stroke-width:0.5"
	styleConstr  = "stroke:#1a73e8;stroke-width:1.5"
	styleInput   = "fill:black"
	styleSteiner = "fill:#d93025"
)

// DefaultSize is the width in pixels of the longer side of an SVG drawing.
const DefaultSize = 800.0

// toOrb converts an exact point for output.
func toOrb(p geom.Point) orb.Point {
	x, y := p.Float64()

	return orb.Point{x, y}
}

// Bound returns the bounding box of the region.
func Bound(poly *region.Polygon) orb.Bound {
	ring := make(orb.MultiPoint, 0, poly.Len())
	for _, p := range poly.Points() {
		ring = append(ring, toOrb(p))
	}

	return ring.Bound()
}

// SVG draws the mesh inside poly. size is the pixel length of the longer side
// of the drawing; non-positive values select DefaultSize.
func SVG(w io.Writer, tr *cdt.Triangulation, poly *region.Polygon, size float64) error {
	if tr == nil || poly == nil {
		return ErrNilMesh
	}
	if size <= 0 {
		size = DefaultSize
	}
	box := Bound(poly)
	span := box.Max[0] - box.Min[0]
	if dy := box.Max[1] - box.Min[1]; dy > span {
		span = dy
	}
	if span == 0 {
		span = 1
	}
	var (
		margin = 0.05 * size
		scale  = size / span
		width  = (box.Max[0]-box.Min[0])*scale + 2*margin
		height = (box.Max[1]-box.Min[1])*scale + 2*margin
	)
	tx := func(x float64) float64 { return (x-box.Min[0])*scale + margin }
	ty := func(y float64) float64 { return height - ((y-box.Min[1])*scale + margin) }
	project := func(pts ...geom.Point) ([]float64, []float64) {
		xs, ys := make([]float64, len(pts)), make([]float64, len(pts))
		for i, p := range pts {
			x, y := p.Float64()
			xs[i], ys[i] = tx(x), ty(y)
		}
		return xs, ys
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("%d vertices, %d Steiner, %d obtuse",
		tr.CountVertices(), tr.SteinerCount(), tr.CountObtuseTriangles(poly)))

	for _, f := range tr.InsideFaces(poly) {
		a, b, c := tr.Triangle(f)
		xs, ys := project(a, b, c)
		style := styleFace
		if tr.IsObtuseFace(f) {
			style = styleObtuse
		}
		canvas.Polygon(xs, ys, style)
	}
	for _, e := range tr.Constraints() {
		xs, ys := project(tr.Vertex(e.U), tr.Vertex(e.V))
		canvas.Line(xs[0], ys[0], xs[1], ys[1], styleConstr)
	}
	xs, ys := project(poly.Points()...)
	canvas.Polygon(xs, ys, styleRegion)

	r := size / 200
	for _, v := range tr.Vertices() {
		style := styleInput
		if tr.IsSteinerPoint(v) {
			style = styleSteiner
		}
		px, py := project(tr.Vertex(v))
		canvas.Circle(px[0], py[0], r, style)
	}
	canvas.End()

	return nil
}

// GeoJSON returns the region, the inside faces and the Steiner points as a
// feature collection. Faces carry "face" and "obtuse" properties; every
// feature has a "kind" of "region", "face" or "steiner".
func GeoJSON(tr *cdt.Triangulation, poly *region.Polygon) (*geojson.FeatureCollection, error) {
	if tr == nil || poly == nil {
		return nil, ErrNilMesh
	}
	fc := geojson.NewFeatureCollection()

	ring := make(orb.Ring, 0, poly.Len()+1)
	for _, p := range poly.Points() {
		ring = append(ring, toOrb(p))
	}
	ring = append(ring, ring[0])
	boundary := geojson.NewFeature(orb.Polygon{ring})
	boundary.Properties["kind"] = "region"
	boundary.Properties["obtuse_count"] = tr.CountObtuseTriangles(poly)
	fc.Append(boundary)

	for _, f := range tr.InsideFaces(poly) {
		a, b, c := tr.Triangle(f)
		tri := orb.Ring{toOrb(a), toOrb(b), toOrb(c), toOrb(a)}
		feat := geojson.NewFeature(orb.Polygon{tri})
		feat.Properties["kind"] = "face"
		feat.Properties["face"] = f
		feat.Properties["obtuse"] = tr.IsObtuseFace(f)
		fc.Append(feat)
	}
	for _, v := range tr.SteinerPoints() {
		p := tr.Vertex(v)
		feat := geojson.NewFeature(toOrb(p))
		feat.Properties["kind"] = "steiner"
		feat.Properties["x"] = p.X.RatString()
		feat.Properties["y"] = p.Y.RatString()
		fc.Append(feat)
	}

	return fc, nil
}

// WriteGeoJSON encodes GeoJSON(tr, poly) to w.
func WriteGeoJSON(w io.Writer, tr *cdt.Triangulation, poly *region.Polygon) error {
	fc, err := GeoJSON(tr, poly)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("render: encode geojson: %w", err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("render: write geojson: %w", err)
	}

	return nil
}
