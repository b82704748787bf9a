package instance

import (
	"fmt"
	"io"
	"os"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/katalvlaran/lvmesh/cdt"
	"github.com/katalvlaran/lvmesh/optimize"
	"github.com/katalvlaran/lvmesh/region"
)

// ContentType identifies solution documents.
const ContentType = "CG_SHOP_2025_Solution"

// Solution is the output document.
type Solution struct {
	ContentType    string     `json:"content_type"`
	UID            string     `json:"instance_uid"`
	SteinerPointsX []string   `json:"steiner_points_x"`
	SteinerPointsY []string   `json:"steiner_points_y"`
	Edges          [][2]int   `json:"edges"`
	ObtuseCount    int        `json:"obtuse_count"`
	Method         string     `json:"method"`
	Parameters     Parameters `json:"parameters"`
}

// NewSolution describes the final mesh. Input points keep their instance
// indices; Steiner points follow in insertion order. A missing instance_uid
// is replaced by a random UUID.
func NewSolution(inst *Instance, tr *cdt.Triangulation, poly *region.Polygon, method optimize.Method) (*Solution, error) {
	pts := inst.Points()
	index := make(map[int]int, tr.CountVertices())
	for i, p := range pts {
		v, ok := tr.VertexID(p)
		if !ok {
			return nil, fmt.Errorf("instance: input point %d %s missing from mesh", i, p)
		}
		if _, dup := index[v]; !dup {
			index[v] = i
		}
	}

	sol := &Solution{
		ContentType:    ContentType,
		UID:            inst.UID,
		SteinerPointsX: []string{},
		SteinerPointsY: []string{},
		Edges:          [][2]int{},
		ObtuseCount:    tr.CountObtuseTriangles(poly),
		Method:         method.String(),
		Parameters:     inst.Parameters,
	}
	if sol.UID == "" {
		sol.UID = uuid.NewString()
	}
	next := len(pts)
	for _, v := range tr.SteinerPoints() {
		p := tr.Vertex(v)
		index[v] = next
		next++
		sol.SteinerPointsX = append(sol.SteinerPointsX, p.X.RatString())
		sol.SteinerPointsY = append(sol.SteinerPointsY, p.Y.RatString())
	}

	for _, e := range tr.Edges(poly) {
		u, okU := index[e.U]
		w, okW := index[e.V]
		if !okU || !okW {
			return nil, fmt.Errorf("instance: edge %d-%d has an unmapped vertex", e.U, e.V)
		}
		if u > w {
			u, w = w, u
		}
		sol.Edges = append(sol.Edges, [2]int{u, w})
	}
	sort.Slice(sol.Edges, func(i, j int) bool {
		if sol.Edges[i][0] != sol.Edges[j][0] {
			return sol.Edges[i][0] < sol.Edges[j][0]
		}
		return sol.Edges[i][1] < sol.Edges[j][1]
	})

	return sol, nil
}

// WriteSolution encodes sol as indented JSON.
func WriteSolution(w io.Writer, sol *Solution) error {
	data, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return fmt.Errorf("instance: encode solution: %w", err)
	}
	data = append(data, '\n')
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("instance: write solution: %w", err)
	}

	return nil
}

// SaveSolution writes sol to path.
func SaveSolution(path string, sol *Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instance: create %s: %w", path, err)
	}
	if err = WriteSolution(f, sol); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// ReadSolution decodes a solution document.
func ReadSolution(r io.Reader) (*Solution, error) {
	sol := new(Solution)
	if err := json.NewDecoder(r).Decode(sol); err != nil {
		return nil, fmt.Errorf("instance: decode solution: %w", err)
	}

	return sol, nil
}
