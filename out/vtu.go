// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"path/filepath"

	"github.com/cpmech/beamdefl/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// VtuRenderer writes results to a VTK unstructured grid file (.vtu) with the nodes of
// the space as points: quadratic triangles are kept as such. Points carry the
// displacements; cells carry the stresses at their centroids
type VtuRenderer struct {
	Dirout string // directory for output
	Key    string // filename key; e.g. "cantilever" => cantilever.vtu
}

// interfaces
var _ Renderer = (*VtuRenderer)(nil)

// Render writes the file and returns its full path
func (o *VtuRenderer) Render(res *fem.Result) (handle string, err error) {

	// check
	if res == nil || res.Sp == nil || res.Field == nil {
		return "", chk.Err("VtuRenderer: result is incomplete")
	}

	// buffers
	geo := new(bytes.Buffer)
	dat := new(bytes.Buffer)
	o.topology(geo, res.Sp)
	o.pdata_write(dat, res)
	err = o.cdata_write(dat, res)
	if err != nil {
		return
	}

	// write vtu file
	fn := o.Key + ".vtu"
	err = vtu_write(o.Dirout, fn, len(res.Sp.Nodes), len(res.Sp.Cell2node), geo, dat)
	if err != nil {
		return
	}
	return filepath.Join(o.Dirout, fn), nil
}

// headers and footers ///////////////////////////////////////////////////////////////////////////////

// vtu_write writes header, geometry, data and footer to dir/fn
func vtu_write(dir, fn string, np, nc int, geo, dat *bytes.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("cannot write %q: %v", fn, r)
		}
	}()
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", np, nc)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileD(dir, fn, &hdr, geo, dat, &foo)
	return
}

// topology ////////////////////////////////////////////////////////////////////////////////////////

func (o *VtuRenderer) topology(buf *bytes.Buffer, sp *fem.Space) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, n := range sp.Nodes {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", n.X[0], n.X[1], 0.0)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, nodes := range sp.Cell2node {
		for _, nid := range nodes {
			io.Ff(buf, "%d ", nid)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, nodes := range sp.Cell2node {
		offset += len(nodes)
		io.Ff(buf, "%d ", offset)
	}

	// types
	vtkcode := sp.NewShape().VtkCode
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range sp.Cell2node {
		io.Ff(buf, "%d ", vtkcode)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// points data /////////////////////////////////////////////////////////////////////////////////////

func (o *VtuRenderer) pdata_write(buf *bytes.Buffer, res *fem.Result) {

	// open
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, n := range res.Sp.Nodes {
		io.Ff(buf, "%d ", n.Id)
	}

	// displacements
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Float64\" Name=\"u\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, n := range res.Sp.Nodes {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", res.Field.U[n.Eqs[0]], res.Field.U[n.Eqs[1]], 0.0)
	}

	// close
	io.Ff(buf, "\n</DataArray>\n</PointData>\n")
}

// cells data //////////////////////////////////////////////////////////////////////////////////////

func (o *VtuRenderer) cdata_write(buf *bytes.Buffer, res *fem.Result) (err error) {

	// open
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for cid := range res.Sp.Cell2node {
		io.Ff(buf, "%d ", cid)
	}

	// stresses at centroids: xx, yy, zz, xy
	if res.Mdl != nil {
		io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Float64\" Name=\"sig\" NumberOfComponents=\"4\" format=\"ascii\">\n")
		centroid := []float64{1.0 / 3.0, 1.0 / 3.0}
		for cid := range res.Sp.Cell2node {
			_, σ, e := res.Field.CellStress(res.Mdl, cid, centroid)
			if e != nil {
				return chk.Err("VtuRenderer: cannot compute stresses in cell %d: %v", cid, e)
			}
			io.Ff(buf, "%23.15e %23.15e %23.15e %23.15e ", σ[0], σ[1], σ[2], σ[3]/utl.SQ2)
		}
	}

	// close
	io.Ff(buf, "\n</DataArray>\n</CellData>\n")
	return
}
