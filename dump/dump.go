/*package dump writes diagnostic views of fields: text tables of the field
sampled on a regular grid and heat maps of field magnitude over a slice.
*/
package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/vec"
)

// ErrSpec is returned (wrapped) when a sampling grid is malformed.
var ErrSpec = errors.New("invalid sampling grid")

// Sampler is anything which can be queried for fields at a position and
// time. field.Field and *config.Registry are both Samplers.
type Sampler interface {
	Sample(pos r3.Vec, t float64) (b, e vec.Vec3)
}

// Header is the first line written by WriteGrid.
const Header = "# x y z t Bx By Bz Ex Ey Ez"

// Spec is a regular sampling grid over (x, y, z, t). An axis with N = 1 is
// sampled only at Min.
type Spec struct {
	Min, Max [4]float64
	N        [4]int
}

// Validate returns an error if the grid has an empty or non-finite axis.
func (s *Spec) Validate() error {
	for d := 0; d < 4; d++ {
		if s.N[d] < 1 {
			return fmt.Errorf("%w: axis %d has %d points", ErrSpec, d, s.N[d])
		}
		lo, hi := s.Min[d], s.Max[d]
		if math.IsNaN(lo) || math.IsInf(lo, 0) ||
			math.IsNaN(hi) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: axis %d has range [%g, %g]", ErrSpec, d, lo, hi)
		} else if s.N[d] > 1 && !(hi > lo) {
			return fmt.Errorf("%w: axis %d has range [%g, %g], but the maximum "+
				"must be larger than the minimum", ErrSpec, d, lo, hi)
		}
	}
	return nil
}

// Coord returns the i-th sampled coordinate of axis d.
func (s *Spec) Coord(d, i int) float64 {
	if s.N[d] == 1 {
		return s.Min[d]
	}
	return s.Min[d] + float64(i)*(s.Max[d]-s.Min[d])/float64(s.N[d]-1)
}

// Len returns the number of points in the grid.
func (s *Spec) Len() int { return s.N[0] * s.N[1] * s.N[2] * s.N[3] }

// WriteGrid samples f at every point of s and writes one row per point,
// x varying fastest. It returns the number of rows written.
func WriteGrid(w io.Writer, f Sampler, s Spec) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)

	rows := 0
	for it := 0; it < s.N[3]; it++ {
		t := s.Coord(3, it)
		for iz := 0; iz < s.N[2]; iz++ {
			for iy := 0; iy < s.N[1]; iy++ {
				for ix := 0; ix < s.N[0]; ix++ {
					p := r3.Vec{X: s.Coord(0, ix), Y: s.Coord(1, iy), Z: s.Coord(2, iz)}
					b, e := f.Sample(p, t)
					fmt.Fprintf(bw, "%.8g %.8g %.8g %.8g "+
						"%.8g %.8g %.8g %.8g %.8g %.8g\n",
						p.X, p.Y, p.Z, t, b.X, b.Y, b.Z, e.X, e.Y, e.Z)
					rows++
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return rows, fmt.Errorf("I couldn't write the field grid: %w", err)
	}

	logging.Log.WithFields(logrus.Fields{
		"rows": rows,
	}).Info("Wrote field grid.")

	return rows, nil
}
