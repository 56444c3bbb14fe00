// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of a deflection analysis: problem
// files (.yaml), geometry and meshes
package inp

import (
	"bytes"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// BeamData holds the dimensions of the cantilever and its load
type BeamData struct {
	Length float64 // length along x [m]
	Height float64 // height along y [m]
	Width  float64 // out-of-plane width [m]
	Force  float64 // total vertical force at the free end [N]
}

// MatData holds material data
type MatData struct {
	Model string  // model name; e.g. "lin-elast"
	E     float64 // Young's modulus [Pa]
	Nu    float64 // Poisson's coefficient
}

// Prms returns the material parameters as a list
func (o MatData) Prms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "E", V: o.E},
		&dbf.P{N: "nu", V: o.Nu},
	}
}

// MeshData holds discretisation data
type MeshData struct {
	Maxh   float64 // maximum element size
	File   string  // mesh file (JSON); empty => structured generator
	Degree int     // polynomial degree of the approximation: 1 or 2
	Nip    int     // number of integration points; 0 => use default
	Nipf   int     // number of integration points on face; 0 => use default
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name string // "sparsecholesky" or "dense"
}

// Problem holds all data of a deflection analysis. It is an immutable value
type Problem struct {
	Desc    string     // description of simulation
	Beam    BeamData   // geometry and load
	Mat     MatData    // material
	Mesh    MeshData   // discretisation
	LinSol  LinSolData // linear solver
	Pstress bool       // plane-stress instead of plane-strain
	DirOut  string     // directory for output; e.g. /tmp/beamdefl
	Key     string     // simulation key; e.g. "cantilever" => cantilever.vtu
	Show    bool       // open visualisation when done
	Verbose bool       // show messages
}

// DefaultProblem returns the aluminium cantilever: 0.2 m × 0.02 m × 0.03 m with -100 N
func DefaultProblem() Problem {
	return Problem{
		Desc:   "aluminium cantilever under tip load",
		Beam:   BeamData{Length: 0.2, Height: 0.02, Width: 0.03, Force: -100},
		Mat:    MatData{Model: "lin-elast", E: 70e9, Nu: 0.35},
		Mesh:   MeshData{Maxh: 0.02 / 5.0, Degree: 2},
		LinSol: LinSolData{Name: "sparsecholesky"},
		DirOut: "/tmp/beamdefl",
		Key:    "cantilever",
	}
}

// yaml data transfer objects; nil pointers keep default values
type yamlProblem struct {
	Desc    *string     `yaml:"desc"`
	Beam    *yamlBeam   `yaml:"beam"`
	Mat     *yamlMat    `yaml:"material"`
	Mesh    *yamlMesh   `yaml:"mesh"`
	LinSol  *yamlLinSol `yaml:"linsol"`
	Pstress *bool       `yaml:"pstress"`
	DirOut  *string     `yaml:"dirout"`
	Key     *string     `yaml:"key"`
	Show    *bool       `yaml:"show"`
	Verbose *bool       `yaml:"verbose"`
}

type yamlBeam struct {
	Length *float64 `yaml:"length"`
	Height *float64 `yaml:"height"`
	Width  *float64 `yaml:"width"`
	Force  *float64 `yaml:"force"`
}

type yamlMat struct {
	Model *string  `yaml:"model"`
	E     *float64 `yaml:"E"`
	Nu    *float64 `yaml:"nu"`
}

type yamlMesh struct {
	Maxh   *float64 `yaml:"maxh"`
	File   *string  `yaml:"file"`
	Degree *int     `yaml:"degree"`
	Nip    *int     `yaml:"nip"`
	Nipf   *int     `yaml:"nipf"`
}

type yamlLinSol struct {
	Name *string `yaml:"name"`
}

// ReadProblem reads a problem file. Missing entries take the values of DefaultProblem.
// A relative mesh file is taken from the directory of the problem file
func ReadProblem(path string) (o Problem, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return o, errs.Wrap(errs.Config, "inp.ReadProblem", err)
	}
	o, err = DecodeProblem(b)
	if err != nil {
		return
	}
	if o.Mesh.File != "" && !filepath.IsAbs(o.Mesh.File) {
		o.Mesh.File = filepath.Join(filepath.Dir(path), o.Mesh.File)
	}
	return
}

// DecodeProblem decodes a problem from yaml text
func DecodeProblem(b []byte) (o Problem, err error) {
	var dto yamlProblem
	if err = yaml.Unmarshal(b, &dto); err != nil {
		return o, errs.Wrap(errs.Config, "inp.DecodeProblem", err)
	}
	o = DefaultProblem()
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setf := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	seti := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setb := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&o.Desc, dto.Desc)
	if dto.Beam != nil {
		setf(&o.Beam.Length, dto.Beam.Length)
		setf(&o.Beam.Height, dto.Beam.Height)
		setf(&o.Beam.Width, dto.Beam.Width)
		setf(&o.Beam.Force, dto.Beam.Force)
		if dto.Mesh == nil || dto.Mesh.Maxh == nil {
			o.Mesh.Maxh = o.Beam.Height / 5.0
		}
	}
	if dto.Mat != nil {
		set(&o.Mat.Model, dto.Mat.Model)
		setf(&o.Mat.E, dto.Mat.E)
		setf(&o.Mat.Nu, dto.Mat.Nu)
	}
	if dto.Mesh != nil {
		setf(&o.Mesh.Maxh, dto.Mesh.Maxh)
		set(&o.Mesh.File, dto.Mesh.File)
		seti(&o.Mesh.Degree, dto.Mesh.Degree)
		seti(&o.Mesh.Nip, dto.Mesh.Nip)
		seti(&o.Mesh.Nipf, dto.Mesh.Nipf)
	}
	if dto.LinSol != nil {
		set(&o.LinSol.Name, dto.LinSol.Name)
	}
	setb(&o.Pstress, dto.Pstress)
	set(&o.DirOut, dto.DirOut)
	set(&o.Key, dto.Key)
	setb(&o.Show, dto.Show)
	setb(&o.Verbose, dto.Verbose)
	err = o.Validate()
	return
}

// Validate checks problem data. Material constants are checked by the material model
func (o Problem) Validate() error {
	op := "inp.Problem"
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	if !positive(o.Beam.Length) || !positive(o.Beam.Height) {
		return errs.New(errs.Geometry, op, "length and height must be positive; %g and %g are invalid", o.Beam.Length, o.Beam.Height)
	}
	if !positive(o.Beam.Width) {
		return errs.New(errs.InvalidParameter, op, "width must be positive; %g is invalid", o.Beam.Width)
	}
	if math.IsNaN(o.Beam.Force) || math.IsInf(o.Beam.Force, 0) {
		return errs.New(errs.InvalidParameter, op, "force must be finite; %g is invalid", o.Beam.Force)
	}
	if o.Mesh.Degree != 1 && o.Mesh.Degree != 2 {
		return errs.New(errs.Config, op, "polynomial degree must be 1 or 2; %d is invalid", o.Mesh.Degree)
	}
	if o.Mesh.File == "" && !positive(o.Mesh.Maxh) {
		return errs.New(errs.Config, op, "maximum element size must be positive; %g is invalid", o.Mesh.Maxh)
	}
	if o.Mesh.Nip < 0 || o.Mesh.Nipf < 0 {
		return errs.New(errs.Config, op, "numbers of integration points must not be negative")
	}
	return nil
}

// Traction returns the surface traction applied on the loaded edge: F/(width·height).
// The total force is divided by the cross-section area, not by the loaded edge area
func (o Problem) Traction() float64 {
	return o.Beam.Force / (o.Beam.Width * o.Beam.Height)
}

// GetInfo writes formatted information
func (o Problem) GetInfo(w goio.Writer) (err error) {
	var b bytes.Buffer
	io.Ff(&b, "problem: %s\n", o.Desc)
	io.Ff(&b, "  beam     : L = %g m  H = %g m  W = %g m  F = %g N\n", o.Beam.Length, o.Beam.Height, o.Beam.Width, o.Beam.Force)
	io.Ff(&b, "  material : %s  E = %g Pa  ν = %g  pstress = %v\n", o.Mat.Model, o.Mat.E, o.Mat.Nu, o.Pstress)
	if o.Mesh.File != "" {
		io.Ff(&b, "  mesh     : file = %s  degree = %d\n", o.Mesh.File, o.Mesh.Degree)
	} else {
		io.Ff(&b, "  mesh     : maxh = %g m  degree = %d\n", o.Mesh.Maxh, o.Mesh.Degree)
	}
	io.Ff(&b, "  linsol   : %s\n", o.LinSol.Name)
	_, err = w.Write(b.Bytes())
	return
}
