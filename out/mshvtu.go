// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"path/filepath"

	"github.com/cpmech/beamdefl/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// MeshVtu writes the mesh to dirout/key.vtu for inspection of boundary conditions.
// Points carry flags marking vertices on the fixed and loaded edges
func MeshVtu(dirout, key string, msh *inp.Mesh) (fn string, err error) {
	if msh == nil || len(msh.Cells) == 0 {
		return "", chk.Err("MeshVtu: mesh is empty")
	}
	geo := new(bytes.Buffer)
	dat := new(bytes.Buffer)
	msh_topology(geo, msh)
	msh_pdata_write(dat, msh)
	msh_cdata_write(dat, msh)
	err = vtu_write(dirout, key+".vtu", len(msh.Verts), len(msh.Cells), geo, dat)
	if err != nil {
		return
	}
	return filepath.Join(dirout, key+".vtu"), nil
}

func msh_topology(buf *bytes.Buffer, msh *inp.Mesh) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", v.C[0], v.C[1], 0.0)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		for _, v := range c.Verts {
			io.Ff(buf, "%d ", v)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range msh.Cells {
		offset += len(c.Verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(buf, "%d ", c.Shp.VtkCode)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

func msh_pdata_write(buf *bytes.Buffer, msh *inp.Mesh) {

	// open
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(buf, "%d ", v.Id)
	}

	// boundary flags
	for _, tag := range []inp.Btag{inp.Fixed, inp.Loaded} {
		flags := make([]int, len(msh.Verts))
		for _, vid := range msh.FaceTag2verts[tag] {
			flags[vid] = 1
		}
		io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"%s\" NumberOfComponents=\"1\" format=\"ascii\">\n", tag.Label())
		for _, f := range flags {
			io.Ff(buf, "%d ", f)
		}
	}

	// close
	io.Ff(buf, "\n</DataArray>\n</PointData>\n")
}

func msh_cdata_write(buf *bytes.Buffer, msh *inp.Mesh) {

	// open
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(buf, "%d ", c.Id)
	}

	// tags
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(buf, "%d ", c.Tag)
	}

	// close
	io.Ff(buf, "\n</DataArray>\n</CellData>\n")
}
