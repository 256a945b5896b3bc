package gcode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = &Config{SafeZ: 5, CutZ: -1.5, FeedRate: 600, PlungeRate: 100}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	gw := NewWriter(&buf, testConfig)
	gw.Preamble()
	gw.Move(0, 0)
	gw.Line(10, 0)
	gw.Arc(10, 10, 10, 5, false)
	gw.Line(0, 10)
	gw.Move(20, 20)
	gw.Arc(20, 20, 22, 20, true)
	gw.Postamble()
	require.NoError(t, gw.Flush())

	want := `G21
G90
G0 Z5.000
G0 X0.000 Y0.000
G1 Z-1.500 F100
G1 X10.000 Y0.000 F600
G3 X10.000 Y10.000 I0.000 J5.000 F600
G1 X0.000 Y10.000 F600
G0 Z5.000
G0 X20.000 Y20.000
G1 Z-1.500 F100
G2 X20.000 Y20.000 I2.000 J0.000 F600
G0 Z5.000
M2
`
	assert.Equal(t, want, buf.String())
}

func TestWriterLineWithoutMove(t *testing.T) {
	var buf bytes.Buffer
	gw := NewWriter(&buf, testConfig)
	gw.Line(1, 2)
	gw.Line(3, 4)
	require.NoError(t, gw.Flush())
	assert.Equal(t, "G1 Z-1.500 F100\nG1 X1.000 Y2.000 F600\nG1 X3.000 Y4.000 F600\n", buf.String())
}

type failWriter struct{ n int }

var errFull = errors.New("disk full")

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errFull
}

func TestWriterStickyError(t *testing.T) {
	fw := &failWriter{}
	gw := NewWriter(fw, testConfig)
	gw.Preamble()
	for i := 0; i < 10000; i++ {
		gw.Line(float64(i), 0)
	}
	gw.Postamble()
	assert.ErrorIs(t, gw.Flush(), errFull)
	assert.Equal(t, 1, fw.n)
}
