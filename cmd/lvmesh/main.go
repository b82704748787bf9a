// Command lvmesh reduces the obtuse triangles of a constrained planar mesh.
//
// Usage:
//
//	lvmesh -i instance.json -o solution.json [-svg mesh.svg] [-geojson mesh.geojson] [-seed n] [-v]
//
// The instance selects the driver (local, sa or ant) and its parameters; the
// solution lists the Steiner points and the final edges.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmesh/instance"
	"github.com/katalvlaran/lvmesh/optimize"
	"github.com/katalvlaran/lvmesh/render"
)

// errUsage reports missing required flags.
var errUsage = errors.New("both -i and -o are required")

type config struct {
	input   string
	output  string
	svg     string
	geojson string
	seed    int64
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("lvmesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.input, "i", "", "instance file (.json, .yaml, .yml)")
	fs.StringVar(&cfg.output, "o", "", "solution file (.json)")
	fs.StringVar(&cfg.svg, "svg", "", "optional SVG drawing of the final mesh")
	fs.StringVar(&cfg.geojson, "geojson", "", "optional GeoJSON export of the final mesh")
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed for sa and ant (0 = fixed default)")
	fs.BoolVar(&cfg.verbose, "v", false, "development logging at debug level")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.input == "" || cfg.output == "" {
		fs.Usage()
		return cfg, errUsage
	}

	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	log, err := newLogger(cfg.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lvmesh:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err = run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

// run loads the instance, optimizes it and writes every requested output.
func run(cfg config, log *zap.Logger) error {
	log = log.With(zap.String("run", uuid.NewString()))

	inst, err := instance.Load(cfg.input)
	if err != nil {
		return err
	}
	tr, poly, err := instance.Build(inst)
	if err != nil {
		return err
	}
	opts, err := instance.Options(inst, optimize.DefaultOptions())
	if err != nil {
		return err
	}
	opts.Seed = cfg.seed
	opts.Logger = log
	log.Info("instance loaded",
		zap.String("instance", inst.UID),
		zap.Int("points", tr.CountVertices()),
		zap.Stringer("method", opts.Method),
		zap.Bool("delaunay", opts.Delaunay),
	)

	res, err := optimize.SolveWithOptions(tr, poly, opts)
	if err != nil {
		return err
	}
	log.Info("optimization finished",
		zap.Int("obtuse_before", res.ObtuseBefore),
		zap.Int("obtuse_after", res.ObtuseAfter),
		zap.Int("steiner", res.Steiner),
		zap.Float64("reduction_pct", res.Reduction()),
	)

	sol, err := instance.NewSolution(inst, tr, poly, opts.Method)
	if err != nil {
		return err
	}
	if err = instance.SaveSolution(cfg.output, sol); err != nil {
		return err
	}
	if cfg.svg != "" {
		if err = writeFile(cfg.svg, func(w io.Writer) error { return render.SVG(w, tr, poly, render.DefaultSize) }); err != nil {
			return err
		}
	}
	if cfg.geojson != "" {
		if err = writeFile(cfg.geojson, func(w io.Writer) error { return render.WriteGeoJSON(w, tr, poly) }); err != nil {
			return err
		}
	}
	log.Info("outputs written", zap.String("solution", cfg.output), zap.String("svg", cfg.svg), zap.String("geojson", cfg.geojson))

	return nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
