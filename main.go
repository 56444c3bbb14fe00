// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/fem"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/beamdefl/out"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// options holds command-line values; only flags set by the user override the problem file
type options struct {
	config  string
	maxh    float64
	degree  int
	solver  string
	force   float64
	pstress bool
	mesh    string
	dirout  string
	key     string
	show    bool
	verbose bool
	summary bool
	line    int
	plot    bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "beamdefl",
		Short:         "beamdefl -- tip deflection of a cantilever with plane finite elements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(runCmd(), convergeCmd(), meshCmd(), versionCmd())
	return cmd
}

func addProblemFlags(c *cobra.Command, opt *options) {
	c.Flags().StringVarP(&opt.config, "config", "c", "", "problem file (.yaml); defaults are used when omitted")
	c.Flags().Float64Var(&opt.maxh, "maxh", 0, "maximum element size [m]")
	c.Flags().IntVar(&opt.degree, "degree", 2, "polynomial degree: 1 or 2")
	c.Flags().StringVar(&opt.solver, "solver", "sparsecholesky", "linear solver: sparsecholesky or dense")
	c.Flags().Float64Var(&opt.force, "force", 0, "total vertical force at the free end [N]")
	c.Flags().BoolVar(&opt.pstress, "pstress", false, "plane-stress instead of plane-strain")
	c.Flags().StringVar(&opt.dirout, "dirout", "", "directory for output")
	c.Flags().StringVar(&opt.key, "key", "", "simulation key; used in output filenames")
	c.Flags().BoolVarP(&opt.verbose, "verbose", "v", false, "show messages")
}

// problem reads the problem file, if any, and applies the flags changed by the user
func (o *options) problem(c *cobra.Command) (prob inp.Problem, err error) {
	prob = inp.DefaultProblem()
	if o.config != "" {
		prob, err = inp.ReadProblem(o.config)
		if err != nil {
			return
		}
	}
	f := c.Flags()
	if f.Changed("maxh") {
		prob.Mesh.Maxh = o.maxh
	}
	if f.Changed("degree") {
		prob.Mesh.Degree = o.degree
	}
	if f.Changed("solver") {
		prob.LinSol.Name = o.solver
	}
	if f.Changed("force") {
		prob.Beam.Force = o.force
	}
	if f.Changed("pstress") {
		prob.Pstress = o.pstress
	}
	if f.Changed("mesh") {
		prob.Mesh.File = o.mesh
	}
	if f.Changed("dirout") {
		prob.DirOut = o.dirout
	}
	if f.Changed("key") {
		prob.Key = o.key
	}
	if f.Changed("show") {
		prob.Show = o.show
	}
	if f.Changed("verbose") {
		prob.Verbose = o.verbose
	}
	err = prob.Validate()
	return
}

func runCmd() *cobra.Command {
	var opt options
	c := &cobra.Command{
		Use:   "run",
		Short: "Compute the mean vertical deflection of the free end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prob, err := opt.problem(cmd)
			if err != nil {
				return err
			}
			res, err := fem.Run(prob)
			if err != nil {
				return err
			}

			// result line first
			io.Pf("%s\n", out.ResultLine(res.Deflection))
			if prob.Verbose {
				if e := out.Report(os.Stdout, res); e != nil {
					io.PfYel("WARNING: %v\n", e)
				}
			}

			// deflection line
			if opt.line > 0 {
				if err = deflectionLine(prob, res, opt.line, opt.plot); err != nil {
					return err
				}
			}

			// summary
			if opt.summary {
				if err = res.Sum.Save(prob.DirOut); err != nil {
					io.PfYel("WARNING: %v\n", err)
				}
			}

			// visualisation failures do not change the result
			if prob.Show {
				r := &out.VtuRenderer{Dirout: prob.DirOut, Key: prob.Key}
				handle, e := r.Render(res)
				if e == nil {
					e = out.Display(handle)
				}
				if e != nil {
					io.PfYel("WARNING: %v\n", e)
				}
			}
			return nil
		},
	}
	addProblemFlags(c, &opt)
	c.Flags().StringVar(&opt.mesh, "mesh", "", "mesh file (.msh); the structured generator is used when omitted")
	c.Flags().BoolVar(&opt.show, "show", false, "write a .vtu file and open it")
	c.Flags().BoolVar(&opt.summary, "summary", false, "save a summary file (.json) in the output directory")
	c.Flags().IntVar(&opt.line, "line", 0, "number of points of the deflection line along the axis of the beam; 0 means none")
	c.Flags().BoolVar(&opt.plot, "plot", false, "save a plot (.png) of the deflection line in the output directory")
	return c
}

// deflectionLine writes the deflection along the axis of the beam and, optionally, its plot
func deflectionLine(prob inp.Problem, res *fem.Result, npts int, plot bool) (err error) {
	fe, eb, err := out.LineEntities(res, npts)
	if err != nil {
		return
	}
	err = out.LineTable(os.Stdout, fe, eb)
	if err != nil || !plot {
		return
	}
	fn := prob.Key + "_line.png"
	err = out.Draw(prob.DirOut, fn, "deflection line", "x [m]", "uy [m]", []*out.PltEntity{fe, eb}, nil)
	if err != nil {
		io.PfYel("WARNING: %v\n", err)
		return nil
	}
	io.Pf("file <%s/%s> written\n", prob.DirOut, fn)
	return
}

func convergeCmd() *cobra.Command {
	var opt options
	var sizes string
	c := &cobra.Command{
		Use:   "converge",
		Short: "Run a refinement study over a list of element sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prob, err := opt.problem(cmd)
			if err != nil {
				return err
			}
			maxhs, err := parseSizes(sizes)
			if err != nil {
				return err
			}
			res, err := fem.Refine(prob, maxhs)
			if err != nil {
				return err
			}
			io.Pf("%s\n", out.ResultLine(out.Finest(res).Deflection))
			if err = out.ConvTable(os.Stdout, res); err != nil {
				return err
			}
			if !opt.plot {
				return nil
			}

			// plot
			refs := make(map[string]float64)
			if sol, e := out.Analytic(res[0]); e == nil {
				refs["Euler-Bernoulli"] = sol.EulerBernoulli()
				refs["Timoshenko"] = sol.Timoshenko()
			}
			fn := prob.Key + "_conv.png"
			err = out.Draw(prob.DirOut, fn, "deflection vs element size", "maxh [m]", "deflection [m]", []*out.PltEntity{out.ConvEntities(res)}, refs)
			if err != nil {
				io.PfYel("WARNING: %v\n", err)
				return nil
			}
			io.Pf("file <%s/%s> written\n", prob.DirOut, fn)
			return nil
		},
	}
	addProblemFlags(c, &opt)
	c.Flags().StringVar(&sizes, "sizes", "0.02,0.01,0.005,0.0025", "comma-separated element sizes [m]")
	c.Flags().BoolVar(&opt.plot, "plot", false, "save a plot (.png) of the study in the output directory")
	return c
}

func meshCmd() *cobra.Command {
	var opt options
	c := &cobra.Command{
		Use:   "mesh",
		Short: "Generate the mesh and write it as .msh and .vtu files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prob, err := opt.problem(cmd)
			if err != nil {
				return err
			}
			a, err := fem.NewFEM(prob)
			if err != nil {
				return err
			}
			msh, err := a.Gen.Generate(a.Geo, prob.Mesh.Maxh)
			if err != nil {
				return errs.Wrap(errs.MeshGeneration, "main.mesh", err)
			}
			io.Pf("mesh: %d vertices, %d cells, max edge = %g m\n", len(msh.Verts), len(msh.Cells), msh.MaxEdge())
			err = msh.WriteMsh(prob.DirOut, prob.Key+".msh")
			if err != nil {
				return err
			}
			fn, err := out.MeshVtu(prob.DirOut, prob.Key+"_mesh", msh)
			if err != nil {
				return err
			}
			io.Pf("files <%s/%s.msh> and <%s> written\n", prob.DirOut, prob.Key, fn)
			return nil
		},
	}
	addProblemFlags(c, &opt)
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			io.Pf("beamdefl v%s\n", version)
			io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
			io.Pf("Use of this source code is governed by a BSD-style\n")
			io.Pf("license that can be found in the LICENSE file.\n")
		},
	}
}

// parseSizes parses a comma-separated list of positive numbers
func parseSizes(s string) (maxhs []float64, err error) {
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, e := strconv.ParseFloat(f, 64)
		if e != nil || v <= 0 {
			return nil, errs.New(errs.Config, "main.parseSizes", "invalid element size %q", f)
		}
		maxhs = append(maxhs, v)
	}
	if len(maxhs) == 0 {
		return nil, errs.New(errs.Config, "main.parseSizes", "at least one element size is required")
	}
	return
}
