package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odisea/pkg/apperr"
)

func TestNormalizePolygon(t *testing.T) {
	got, err := Normalize("POLYGON((0 0,0 1,1 1,1 0,0 0))")
	require.NoError(t, err)
	assert.Equal(t, "POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))", got)

	// Already-normalized input round-trips unchanged.
	again, err := Normalize(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestNormalizeAcceptsMessyInput(t *testing.T) {
	got, err := Normalize("  polygon ( ( 0 0 , 0 2.50 , 2.5 2.5 , 2.5 0 , 0 0 ) )  ")
	require.NoError(t, err)
	assert.Equal(t, "POLYGON ((0 0, 0 2.5, 2.5 2.5, 2.5 0, 0 0))", got)
}

func TestNormalizePoint(t *testing.T) {
	got, err := Normalize("POINT(-3.70 40.41)")
	require.NoError(t, err)
	assert.Equal(t, "POINT (-3.7 40.41)", got)
}

func TestNormalizeMultiPolygon(t *testing.T) {
	got, err := Normalize("MULTIPOLYGON(((0 0,0 1,1 1,0 0)),((2 2,2 3,3 3,2 2)))")
	require.NoError(t, err)
	assert.Equal(t, "MULTIPOLYGON (((0 0, 0 1, 1 1, 0 0)), ((2 2, 2 3, 3 3, 2 2)))", got)
}

func TestNormalizeSRIDPrefix(t *testing.T) {
	got, err := Normalize("SRID=4326;POINT(1 2)")
	require.NoError(t, err)
	assert.Equal(t, "POINT (1 2)", got)

	_, err = Normalize("SRID=25830;POINT(1 2)")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestNormalizeRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"POLYGON",
		"POLYGON(0 0,0 1,1 1,0 0)",              // missing ring parens
		"POLYGON((0 0,0 1,1 1,1 0,0 0)",         // unbalanced
		"POLYGON((0 0,0 1,0 0))",                // too few points
		"POLYGON((0 0,0 1,1 1,1 0))",            // unclosed ring
		"POLYGON((a b,0 1,1 1,a b))",            // not numbers
		"TRIANGLE((0 0,0 1,1 1,0 0))",           // unsupported keyword
		"POINT(1 2) garbage",                    // trailing input
		"SRID=nope;POINT(1 2)",                  // malformed prefix
		"POLYGON((0 0,0 1,1 1,1 0,0 0)) extras", // trailing input
	}
	for _, c := range cases {
		_, err := Normalize(c)
		assert.Errorf(t, err, "input %q", c)
		assert.True(t, apperr.Is(err, apperr.ValidationError), "input %q", c)
	}
}

func TestNormalizeEmptyGeometry(t *testing.T) {
	got, err := Normalize("polygon empty")
	require.NoError(t, err)
	assert.Equal(t, "POLYGON EMPTY", got)
}
