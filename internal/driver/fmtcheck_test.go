package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svfmt/internal/driver"
	"svfmt/internal/source"
)

func TestCheckRoundTrip(t *testing.T) {
	srcs := []string{
		messySrc,
		"module m(input wire [3:0] a, output logic b);\n// comment   \nassign b = a[0] & ~a[1];\nendmodule\n",
		"package p;\nimport q::*;\nendpackage\n",
		"`define W 8\nmodule m;\nalways_comb begin\ncase (s)\n1: y = a;\ndefault: y = b;\nendcase\nend\nendmodule\n",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual("rt.sv", []byte(src)))
		assert.NoError(t, driver.CheckRoundTrip(sf, 0), src)
	}
}

func TestCheckRoundTripParseFailure(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("bad.sv", []byte(brokenSrc)))
	err := driver.CheckRoundTrip(sf, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrParseFailed)
}
