package dump

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/fieldmap/field"
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/interpolate"
	"github.com/phil-mansfield/fieldmap/synth"
	"github.com/phil-mansfield/fieldmap/vec"
)

type funcSampler func(p r3.Vec, t float64) (b, e vec.Vec3)

func (f funcSampler) Sample(p r3.Vec, t float64) (b, e vec.Vec3) { return f(p, t) }

var coordSampler = funcSampler(func(p r3.Vec, t float64) (b, e vec.Vec3) {
	return vec.Vec3{X: p.X, Y: p.Y, Z: p.Z}, vec.Vec3{X: t}
})

func parseRows(t *testing.T, text string) [][]float64 {
	t.Helper()
	sc := bufio.NewScanner(strings.NewReader(text))
	require.True(t, sc.Scan())
	require.Equal(t, Header, sc.Text())

	var rows [][]float64
	for sc.Scan() {
		tok := strings.Fields(sc.Text())
		require.Len(t, tok, 10)
		row := make([]float64, len(tok))
		for i := range tok {
			x, err := strconv.ParseFloat(tok[i], 64)
			require.NoError(t, err)
			row[i] = x
		}
		rows = append(rows, row)
	}
	return rows
}

func TestSpecCoord(t *testing.T) {
	s := Spec{Min: [4]float64{-1, 0, 5, 0}, Max: [4]float64{1, 0, 5, 2}, N: [4]int{5, 1, 1, 3}}
	require.NoError(t, s.Validate())
	assert.Equal(t, 15, s.Len())
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1},
		[]float64{s.Coord(0, 0), s.Coord(0, 1), s.Coord(0, 2), s.Coord(0, 3), s.Coord(0, 4)})
	assert.Equal(t, 5.0, s.Coord(2, 0))
	assert.Equal(t, 1.0, s.Coord(3, 1))
}

func TestSpecErrors(t *testing.T) {
	table := []Spec{
		{N: [4]int{1, 1, 1, 0}},
		{Min: [4]float64{0, 1}, Max: [4]float64{1, 1}, N: [4]int{2, 2, 1, 1}},
		{Min: [4]float64{math.NaN()}, N: [4]int{1, 1, 1, 1}},
		{Max: [4]float64{0, 0, math.Inf(1)}, N: [4]int{1, 1, 1, 1}},
	}
	for i := range table {
		assert.ErrorIs(t, table[i].Validate(), ErrSpec, "%d", i+1)
		_, err := WriteGrid(&bytes.Buffer{}, coordSampler, table[i])
		assert.ErrorIs(t, err, ErrSpec, "%d", i+1)
	}
}

func TestWriteGrid(t *testing.T) {
	s := Spec{
		Min: [4]float64{0, 0, 0, 0},
		Max: [4]float64{1, 2, 0, 3},
		N:   [4]int{2, 3, 1, 2},
	}
	buf := &bytes.Buffer{}
	n, err := WriteGrid(buf, coordSampler, s)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	rows := parseRows(t, buf.String())
	require.Len(t, rows, 12)

	// x varies fastest and t slowest.
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 0, 0}, rows[1])
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 1, 0, 0, 0, 0}, rows[2])
	assert.Equal(t, []float64{1, 2, 0, 3, 1, 2, 0, 3, 0, 0}, rows[11])
}

func TestWriteGridField(t *testing.T) {
	axes := []grid.Axis{{-1, 0.5, 5}, {-1, 0.5, 5}, {-1, 0.5, 5}}
	a, err := synth.Sample(synth.Quadrupole(2), axes)
	require.NoError(t, err)
	in, err := interpolate.New[vec.Vec3](a, interpolate.Linear)
	require.NoError(t, err)
	m, err := field.NewMagnetic(in, field.DefaultOptions())
	require.NoError(t, err)

	s := Spec{
		Min: [4]float64{-0.75, -0.25, 0, 0},
		Max: [4]float64{0.75, 0.25, 0, 0},
		N:   [4]int{4, 3, 1, 1},
	}
	buf := &bytes.Buffer{}
	_, err = WriteGrid(buf, m, s)
	require.NoError(t, err)

	for i, row := range parseRows(t, buf.String()) {
		assert.InDelta(t, 2*row[1], row[4], 1e-6, "row %d", i)
		assert.InDelta(t, 2*row[0], row[5], 1e-6, "row %d", i)
		assert.Equal(t, 0.0, row[6])
		assert.Equal(t, []float64{0, 0, 0}, row[7:])
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteGridWriterError(t *testing.T) {
	s := Spec{N: [4]int{1, 1, 1, 1}}
	_, err := WriteGrid(failWriter{}, coordSampler, s)
	assert.Error(t, err)
}

func TestParseComponent(t *testing.T) {
	c, err := ParseComponent("E")
	require.NoError(t, err)
	assert.Equal(t, Electric, c)
	c, err = ParseComponent("b")
	require.NoError(t, err)
	assert.Equal(t, Magnetic, c)
	assert.Equal(t, "B", c.String())

	_, err = ParseComponent("H")
	assert.ErrorIs(t, err, ErrSpec)
}

func TestSampleNorm(t *testing.T) {
	s := Slice{Min: [2]float64{-1, -1}, Max: [2]float64{1, 1}, N: [2]int{3, 5}, T: 2}
	g, err := sampleNorm(coordSampler, &s)
	require.NoError(t, err)

	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 5, r)
	assert.InDelta(t, math.Sqrt2, g.Z(2, 4), 1e-12)
	assert.InDelta(t, 0.5, g.Z(1, 3), 1e-12)

	lo, hi := g.minMax()
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, math.Sqrt2, hi, 1e-12)

	s.Component = Electric
	g, err = sampleNorm(coordSampler, &s)
	require.NoError(t, err)
	assert.Equal(t, 2.0, g.Z(0, 0))

	s.N = [2]int{1, 5}
	_, err = sampleNorm(coordSampler, &s)
	assert.ErrorIs(t, err, ErrSpec)
}

func TestPlot(t *testing.T) {
	s := Slice{Min: [2]float64{-1, -1}, Max: [2]float64{1, 1}, N: [2]int{8, 8}}
	p, err := Plot(coordSampler, s, "|B|")
	require.NoError(t, err)
	assert.Equal(t, "|B|", p.Title.Text)

	w, err := p.WriterTo(4*vg.Centimeter, 4*vg.Centimeter, "svg")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	_, err = w.WriteTo(buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")

	// A constant field still plots.
	flat := funcSampler(func(r3.Vec, float64) (b, e vec.Vec3) {
		return vec.Vec3{Z: 1}, vec.Vec3{}
	})
	_, err = Plot(flat, s, "flat")
	assert.NoError(t, err)
}
