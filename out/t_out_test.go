// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/beamdefl/fem"
	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// coarse returns the result of a small analysis
func coarse(tst *testing.T, degree int) *fem.Result {
	prob := inp.DefaultProblem()
	prob.Mesh.Maxh = 0.01
	prob.Mesh.Degree = degree
	prob.DirOut = tst.TempDir()
	res, err := fem.Run(prob)
	require.NoError(tst, err)
	return res
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. result line and report")

	assert.Equal(tst, "Numerical Y deflection:  -0.000123457 m", ResultLine(-0.000123456789))
	assert.Equal(tst, "Numerical Y deflection:  0.000000000 m", ResultLine(0))

	res := coarse(tst, 2)
	var b bytes.Buffer
	require.NoError(tst, Report(&b, res))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(tst, lines, 2)
	assert.NotContains(tst, b.String(), "Numerical Y deflection")
	assert.True(tst, strings.HasPrefix(lines[0], "Euler-Bernoulli"))
	assert.True(tst, strings.HasPrefix(lines[1], "Timoshenko"))
	io.Pf("%s", b.String())

	sol, err := Analytic(res)
	require.NoError(tst, err)
	assert.InDelta(tst, 1.0, res.Deflection/sol.Timoshenko(), 0.1)
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. refinement table and plot")

	prob := inp.DefaultProblem()
	prob.DirOut = tst.TempDir()
	res, err := fem.Refine(prob, []float64{0.02, 0.01})
	require.NoError(tst, err)

	var b bytes.Buffer
	require.NoError(tst, ConvTable(&b, res))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(tst, lines, 3)
	assert.Contains(tst, lines[0], "deflection")
	assert.Contains(tst, lines[2], "e-")
	io.Pf("%s", b.String())

	ent := ConvEntities(res)
	assert.Equal(tst, []float64{0.02, 0.01}, ent.X)
	assert.Equal(tst, res[1].Deflection, ent.Y[1])

	refs := map[string]float64{"reference": res[1].Deflection}
	require.NoError(tst, Draw(prob.DirOut, "conv.png", "deflection", "maxh", "uy", []*PltEntity{ent}, refs))
	info, err := os.Stat(filepath.Join(prob.DirOut, "conv.png"))
	require.NoError(tst, err)
	assert.True(tst, info.Size() > 0)

	bad := &PltEntity{Alias: "bad", X: []float64{1, 2}, Y: []float64{1}}
	assert.Error(tst, Draw(prob.DirOut, "bad.png", "", "", "", []*PltEntity{bad}, nil))
}

func Test_vtu01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vtu01. quadratic and linear cells")

	for _, degree := range []int{1, 2} {
		res := coarse(tst, degree)
		r := &VtuRenderer{Dirout: res.Prob.DirOut, Key: io.Sf("beam%d", degree)}
		handle, err := r.Render(res)
		require.NoError(tst, err)
		assert.Equal(tst, filepath.Join(res.Prob.DirOut, io.Sf("beam%d.vtu", degree)), handle)

		b, err := os.ReadFile(handle)
		require.NoError(tst, err)
		txt := string(b)
		assert.Contains(tst, txt, io.Sf("<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">", len(res.Sp.Nodes), len(res.Sp.Cell2node)))
		assert.Contains(tst, txt, "Name=\"u\"")
		assert.Contains(tst, txt, "Name=\"sig\"")
		assert.True(tst, strings.HasSuffix(txt, "</VTKFile>\n"))

		// cell types
		code := "5 "
		if degree == 2 {
			code = "22 "
		}
		i := strings.Index(txt, "Name=\"types\"")
		require.True(tst, i > 0)
		types := txt[i:]
		types = types[strings.Index(types, "\n")+1:]
		types = types[:strings.Index(types, "\n")]
		assert.Equal(tst, strings.Repeat(code, len(res.Sp.Cell2node)), types)
	}

	// incomplete result
	r := &VtuRenderer{Dirout: tst.TempDir(), Key: "none"}
	_, err := r.Render(&fem.Result{})
	assert.Error(tst, err)
}

func Test_display01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("display01. failures")

	dir := tst.TempDir()
	assert.Error(tst, Display(filepath.Join(dir, "missing.vtu")))

	fn := filepath.Join(dir, "exists.vtu")
	require.NoError(tst, os.WriteFile(fn, []byte("x"), 0644))
	err := DisplayWith("beamdefl-viewer-that-does-not-exist", nil, fn)
	require.Error(tst, err)
	assert.Contains(tst, err.Error(), "not available")

	cmd, _ := Viewer()
	assert.NotEmpty(tst, cmd)
}

func Test_mshvtu01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mshvtu01. boundary flags")

	res := coarse(tst, 1)
	fn, err := MeshVtu(res.Prob.DirOut, "mesh", res.Msh)
	require.NoError(tst, err)
	b, err := os.ReadFile(fn)
	require.NoError(tst, err)
	txt := string(b)
	assert.Contains(tst, txt, io.Sf("<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">", len(res.Msh.Verts), len(res.Msh.Cells)))
	assert.Contains(tst, txt, "Name=\"fix\"")
	assert.Contains(tst, txt, "Name=\"force\"")

	_, err = MeshVtu(res.Prob.DirOut, "empty", &inp.Mesh{})
	assert.Error(tst, err)
}

func Test_out03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out03. deflection line and finest result")

	res := coarse(tst, 2)
	fe, eb, err := LineEntities(res, 11)
	require.NoError(tst, err)
	require.Len(tst, fe.X, 11)
	assert.InDelta(tst, 0.0, fe.X[0], 1e-15)
	assert.InDelta(tst, res.Prob.Beam.Length, fe.X[10], 1e-15)
	assert.InDelta(tst, 0.0, fe.Y[0], 1e-15)
	assert.InDelta(tst, 0.0, eb.Y[0], 1e-15)
	for i := 1; i < 11; i++ {
		assert.Less(tst, fe.Y[i], fe.Y[i-1], "deflection must grow along the beam")
	}
	assert.InDelta(tst, 1.0, fe.Y[10]/eb.Y[10], 0.1)

	var b bytes.Buffer
	require.NoError(tst, LineTable(&b, fe, eb))
	assert.Len(tst, strings.Split(strings.TrimSpace(b.String()), "\n"), 12)
	io.Pf("%s", b.String())

	_, _, err = LineEntities(res, 1)
	assert.True(tst, errs.Is(err, errs.Config))

	// finest
	prob := inp.DefaultProblem()
	rs, err := fem.Refine(prob, []float64{0.01, 0.02, 0.015})
	require.NoError(tst, err)
	assert.Equal(tst, 0.01, Finest(rs).Prob.Mesh.Maxh)
	assert.Nil(tst, Finest(nil))
}

func Test_out04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out04. reference lines are drawn in a fixed order")

	dir := tst.TempDir()
	ent := &PltEntity{Alias: "FE", X: []float64{1, 2, 3}, Y: []float64{-1, -2, -3}}
	refs := map[string]float64{"a": -1, "b": -1.5, "c": -2, "d": -2.5, "e": -3, "f": -3.5}
	var first []byte
	for i := 0; i < 5; i++ {
		fn := io.Sf("refs%d.svg", i)
		require.NoError(tst, Draw(dir, fn, "refs", "x", "y", []*PltEntity{ent}, refs))
		b, err := os.ReadFile(filepath.Join(dir, fn))
		require.NoError(tst, err)
		if i == 0 {
			first = b
			continue
		}
		assert.Equal(tst, first, b, "plot %d differs from the first one", i)
	}
}
