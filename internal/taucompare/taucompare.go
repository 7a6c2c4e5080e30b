// Package taucompare compares an inverted basal yield stress field
// against the synthetic truth it was recovered from.
package taucompare

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"

	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/units"
)

// Cells with basal speed components below this (m year-1) are treated as
// not sliding and excluded from the comparison.
const slidingThreshold = 10.0

// maskTolerance picks out grounded-ice cells from the float-valued cell
// type mask.
const maskTolerance = 0.01

type Options struct {
	InputFile string
	// TaucCap bounds the side-by-side comparison color scale (Pa).
	TaucCap float64
	// RelCap bounds the relative difference color scale.
	RelCap float64
}

func DefaultOptions() Options {
	return Options{TaucCap: 2e5, RelCap: 1.0}
}

// Stats summarizes the difference field over active cells, i.e. grounded
// ice that is also sliding.
type Stats struct {
	IceCells     int
	SlidingCells int
	MeanAbsDiff  float64
	MaxAbsDiff   float64
	RMSRelError  float64
	MaxSpeed     float64
}

// Result holds the masked comparison fields. All arrays share one 2-D
// shape; masked-out cells are zero.
type Result struct {
	Options Options

	Tauc     *sparse.DenseArray
	TaucTrue *sparse.DenseArray
	Diff     *sparse.DenseArray
	RelDiff  *sparse.DenseArray
	Speed    *sparse.DenseArray

	Stats Stats
}

// Run reads the inversion output named by opts.InputFile and computes the
// comparison fields and summary statistics.
func Run(opts Options) (*Result, error) {
	f, err := ncio.Open(opts.InputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	read := func(name string) (*sparse.DenseArray, error) {
		a, err := f.ReadArray(name)
		if err != nil {
			return nil, err
		}
		if len(a.Shape) != 2 {
			return nil, fmt.Errorf("taucompare: variable %q in %s is %d-dimensional, want 2",
				name, opts.InputFile, len(a.Shape))
		}
		return a, nil
	}

	tauc, err := read("tauc")
	if err != nil {
		return nil, err
	}
	taucTrue, err := read("tauc_true")
	if err != nil {
		return nil, err
	}
	mask, err := read("mask")
	if err != nil {
		return nil, err
	}
	u, err := read("u_computed")
	if err != nil {
		return nil, err
	}
	v, err := read("v_computed")
	if err != nil {
		return nil, err
	}

	for _, a := range []*sparse.DenseArray{taucTrue, mask, u, v} {
		if a.Shape[0] != tauc.Shape[0] || a.Shape[1] != tauc.Shape[1] {
			return nil, fmt.Errorf("taucompare: variable shapes in %s disagree", opts.InputFile)
		}
	}

	return compare(opts, tauc, taucTrue, mask, u, v), nil
}

func compare(opts Options, tauc, taucTrue, mask, u, v *sparse.DenseArray) *Result {
	res := &Result{
		Options:  opts,
		Tauc:     tauc,
		TaucTrue: taucTrue,
		Diff:     sparse.ZerosDense(tauc.Shape...),
		RelDiff:  sparse.ZerosDense(tauc.Shape...),
		Speed:    sparse.ZerosDense(tauc.Shape...),
	}

	var sumAbs, sumRelSq float64
	for k := range tauc.Elements {
		uk := units.Secpera(u.Elements[k])
		vk := units.Secpera(v.Elements[k])
		speed := math.Hypot(uk, vk)
		res.Speed.Elements[k] = speed
		if speed > res.Stats.MaxSpeed {
			res.Stats.MaxSpeed = speed
		}

		grounded := math.Abs(mask.Elements[k]-geometry.CellGrounded) <= maskTolerance
		if !grounded {
			tauc.Elements[k] = 0
			taucTrue.Elements[k] = 0
			continue
		}
		res.Stats.IceCells++

		if math.Abs(uk) < slidingThreshold && math.Abs(vk) < slidingThreshold {
			continue
		}
		res.Stats.SlidingCells++

		d := tauc.Elements[k] - taucTrue.Elements[k]
		res.Diff.Elements[k] = d

		ad := math.Abs(d)
		sumAbs += ad
		if ad > res.Stats.MaxAbsDiff {
			res.Stats.MaxAbsDiff = ad
		}

		if taucTrue.Elements[k] != 0 {
			rel := d / taucTrue.Elements[k]
			res.RelDiff.Elements[k] = rel
			sumRelSq += rel * rel
		}
	}

	if res.Stats.SlidingCells > 0 {
		n := float64(res.Stats.SlidingCells)
		res.Stats.MeanAbsDiff = sumAbs / n
		res.Stats.RMSRelError = math.Sqrt(sumRelSq / n)
	}
	return res
}
