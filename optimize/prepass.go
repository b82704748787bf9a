package optimize

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/region"
	"github.com/katalvlaran/lvmesh/steiner"
)

// prepassMethods are tried in order for every face during Prepass.
var prepassMethods = []steiner.Method{steiner.Projection, steiner.Midpoint}

// Prepass makes one sweep over the obtuse faces present at the start and,
// for each face still obtuse, applies the first of projection and midpoint
// that strictly lowers the obtuse count, then the centroid when
// steiner.WorthInsertCentroid holds. It returns the number of insertions.
//
// Complexity: O(k · S) for k initial obtuse faces.
func Prepass(tr *cdt.Triangulation, poly *region.Polygon, opts Options) (int, error) {
	if err := validateAll(tr, poly, opts); err != nil {
		return 0, err
	}
	var (
		log      = opts.logger()
		inserted int
		targets  [][3]int
	)
	for _, f := range tr.ObtuseFaces(poly) {
		targets = append(targets, tr.Face(f).V)
	}

	for _, v := range targets {
		f, ok := tr.FindFace(v[0], v[1], v[2])
		if !ok || !tr.IsObtuseFace(f) {
			continue
		}
		count := tr.CountObtuseTriangles(poly)
		applied := false
		for _, m := range prepassMethods {
			cand, err := steiner.Propose(tr, poly, f, m)
			if errors.Is(err, steiner.ErrNotApplicable) {
				continue
			}
			if err != nil {
				return inserted, err
			}
			o, err := steiner.Evaluate(tr, poly, cand)
			if errors.Is(err, steiner.ErrNotApplicable) {
				continue
			}
			if err != nil {
				return inserted, err
			}
			if o.Obtuse < count {
				tr.Adopt(o.Mesh)
				poly.Adopt(o.Region)
				inserted++
				applied = true
				break
			}
		}
		if applied || !steiner.WorthInsertCentroid(tr, poly, f) {
			continue
		}
		cand, err := steiner.Propose(tr, poly, f, steiner.Centroid)
		if err != nil {
			continue
		}
		if _, err = steiner.Apply(tr, poly, cand); err == nil {
			inserted++
		} else if !errors.Is(err, steiner.ErrNotApplicable) {
			return inserted, err
		}
	}
	log.Debug("prepass finished", zap.Int("inserted", inserted), zap.Int("obtuse", tr.CountObtuseTriangles(poly)))

	return inserted, nil
}
