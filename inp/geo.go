// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"

	"github.com/cpmech/beamdefl/errs"
	"github.com/cpmech/gosl/io"
)

// Btag is a boundary tag attached to edges of the geometry and to mesh facets
type Btag int

// boundary tags
const (
	Free   Btag = iota // no condition
	Fixed              // homogeneous Dirichlet: ux = uy = 0
	Loaded             // surface traction
)

// labels of boundary tags
var btaglabels = map[Btag]string{Free: "", Fixed: "fix", Loaded: "force"}

// ParseBtag converts a boundary label into a tag
func ParseBtag(label string) (Btag, error) {
	for tag, l := range btaglabels {
		if l == label {
			return tag, nil
		}
	}
	return Free, errs.New(errs.Geometry, "inp.ParseBtag", "boundary label %q is invalid; use \"\", \"fix\" or \"force\"", label)
}

// Label returns the boundary label corresponding to this tag
func (o Btag) Label() string {
	return btaglabels[o]
}

// String returns a readable name
func (o Btag) String() string {
	switch o {
	case Free:
		return "free"
	case Fixed:
		return "fix"
	case Loaded:
		return "force"
	}
	return io.Sf("btag(%d)", int(o))
}

// MarshalJSON writes the tag as its label
func (o Btag) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Label())
}

// UnmarshalJSON reads the tag from its label
func (o *Btag) UnmarshalJSON(b []byte) (err error) {
	var label string
	if err = json.Unmarshal(b, &label); err != nil {
		return
	}
	*o, err = ParseBtag(label)
	return
}

// Geometry holds a polygonal 2D domain with labelled edges.
// Edge k goes from P[k] to P[(k+1)%n]
type Geometry struct {
	P      [][]float64 // [nverts][2] vertices, counter-clockwise
	Labels []string    // [nverts] edge labels
	Tags   []Btag      // [nverts] edge tags (derived from Labels)
}

// NewGeometry validates and returns a new geometry. Clockwise input is reversed
// so that vertices run counter-clockwise; labels follow their edges
func NewGeometry(pts [][]float64, labels []string) (o *Geometry, err error) {

	// check sizes
	op := "inp.NewGeometry"
	n := len(pts)
	if n < 3 {
		return nil, errs.New(errs.Geometry, op, "at least 3 vertices are required; %d is invalid", n)
	}
	if len(labels) != n {
		return nil, errs.New(errs.Geometry, op, "number of edge labels (%d) must equal number of vertices (%d)", len(labels), n)
	}
	for i, p := range pts {
		if len(p) != 2 {
			return nil, errs.New(errs.Geometry, op, "vertex %d must have 2 coordinates; %d is invalid", i, len(p))
		}
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return nil, errs.New(errs.Geometry, op, "vertex %d has non-finite coordinates %v", i, p)
		}
	}

	// copy
	o = new(Geometry)
	o.P = make([][]float64, n)
	o.Labels = make([]string, n)
	for i := 0; i < n; i++ {
		o.P[i] = []float64{pts[i][0], pts[i][1]}
		o.Labels[i] = labels[i]
	}

	// closed boundary without degenerate edges
	size := o.size()
	for k := 0; k < n; k++ {
		a, b := o.P[k], o.P[(k+1)%n]
		if math.Hypot(b[0]-a[0], b[1]-a[1]) <= Ztol*size {
			return nil, errs.New(errs.Geometry, op, "edge %d has zero length; the boundary is not closed properly", k)
		}
	}

	// simple polygon
	for k := 0; k < n; k++ {
		for m := k + 1; m < n; m++ {
			if m == k+1 || (k == 0 && m == n-1) {
				continue // adjacent
			}
			if segmentsIntersect(o.P[k], o.P[(k+1)%n], o.P[m], o.P[(m+1)%n]) {
				return nil, errs.New(errs.Geometry, op, "edges %d and %d intersect", k, m)
			}
		}
	}

	// orientation
	area := o.Area()
	if math.Abs(area) <= Ztol*size*size {
		return nil, errs.New(errs.Geometry, op, "polygon has zero area")
	}
	if area < 0 {
		P := make([][]float64, n)
		L := make([]string, n)
		for k := 0; k < n; k++ {
			P[k] = o.P[n-1-k]
			L[k] = o.Labels[(2*n-2-k)%n]
		}
		o.P, o.Labels = P, L
	}

	// tags
	o.Tags = make([]Btag, n)
	count := make(map[Btag]int)
	for k, l := range o.Labels {
		o.Tags[k], err = ParseBtag(l)
		if err != nil {
			return nil, errs.Wrap(errs.Geometry, op, err)
		}
		count[o.Tags[k]]++
	}
	if count[Fixed] > 1 || count[Loaded] > 1 {
		return nil, errs.New(errs.Geometry, op, "at most one \"fix\" and one \"force\" edge are allowed; found %d and %d", count[Fixed], count[Loaded])
	}
	return
}

// Rectangle returns the cantilever domain [0,length]×[0,height], clamped at x=0 and loaded at x=length
func Rectangle(length, height float64) (*Geometry, error) {
	if !(length > 0) || !(height > 0) {
		return nil, errs.New(errs.Geometry, "inp.Rectangle", "length and height must be positive; %g and %g are invalid", length, height)
	}
	return NewGeometry(
		[][]float64{{0, 0}, {length, 0}, {length, height}, {0, height}},
		[]string{"", "force", "", "fix"},
	)
}

// Nverts returns the number of vertices (and edges)
func (o *Geometry) Nverts() int { return len(o.P) }

// Edge returns the end points of edge k
func (o *Geometry) Edge(k int) (a, b []float64) {
	return o.P[k], o.P[(k+1)%len(o.P)]
}

// EdgeLen returns the length of edge k
func (o *Geometry) EdgeLen(k int) float64 {
	a, b := o.Edge(k)
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// HasTag tells whether any edge carries the given tag
func (o *Geometry) HasTag(tag Btag) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Area returns the signed area (positive if counter-clockwise)
func (o *Geometry) Area() (a float64) {
	n := len(o.P)
	for k := 0; k < n; k++ {
		p, q := o.P[k], o.P[(k+1)%n]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}

// Limits returns the bounding box
func (o *Geometry) Limits() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = o.P[0][0], o.P[0][0]
	ymin, ymax = o.P[0][1], o.P[0][1]
	for _, p := range o.P[1:] {
		xmin, xmax = math.Min(xmin, p[0]), math.Max(xmax, p[0])
		ymin, ymax = math.Min(ymin, p[1]), math.Max(ymax, p[1])
	}
	return
}

// size returns the diagonal of the bounding box
func (o *Geometry) size() float64 {
	xmin, xmax, ymin, ymax := o.Limits()
	return math.Hypot(xmax-xmin, ymax-ymin)
}

// cross returns (b-a) × (c-a)
func cross(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// segmentsIntersect tells whether the closed segments pq and rs intersect
func segmentsIntersect(p, q, r, s []float64) bool {
	d1 := cross(r, s, p)
	d2 := cross(r, s, q)
	d3 := cross(p, q, r)
	d4 := cross(p, q, s)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	onseg := func(a, b, c []float64) bool {
		return math.Min(a[0], b[0]) <= c[0] && c[0] <= math.Max(a[0], b[0]) &&
			math.Min(a[1], b[1]) <= c[1] && c[1] <= math.Max(a[1], b[1])
	}
	return (d1 == 0 && onseg(r, s, p)) || (d2 == 0 && onseg(r, s, q)) ||
		(d3 == 0 && onseg(p, q, r)) || (d4 == 0 && onseg(p, q, s))
}
