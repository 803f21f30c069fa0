package curve

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, parameter, x string) string {
	c, err := Parse("power", parameter)
	require.NoError(t, err)
	return c.Evaluate(decimal.RequireFromString(x)).StringFixed(Precision)
}

func TestPowerCurve(t *testing.T) {
	assert.Equal(t, "10.0000000000", eval(t, "1", "10"))
	assert.Equal(t, "3.1622776601", eval(t, "0.5", "10"))
	assert.Equal(t, "10.0000000000", eval(t, "0.5", "100"))
	assert.Equal(t, "100.0000000000", eval(t, "2", "10"))
	assert.Equal(t, "0.0100000000", eval(t, "2", "0.1"))
	assert.Equal(t, "1.0000000000", eval(t, "1.5", "1"))
}

func TestPowerCurveNonPositive(t *testing.T) {
	assert.Equal(t, "0.0000000000", eval(t, "1", "0"))
	assert.Equal(t, "0.0000000000", eval(t, "0.5", "-4"))
}

func TestPowerCurveMonotonic(t *testing.T) {
	c, err := Parse("power", "0.75")
	require.NoError(t, err)
	prev := decimal.Zero
	for _, x := range []string{"0.0000000001", "1", "2", "10.5", "1000", "123456789.0123456789"} {
		v := c.Evaluate(decimal.RequireFromString(x))
		assert.True(t, v.GreaterThan(prev), "f(%s)=%s not above %s", x, v, prev)
		prev = v
	}
}

func TestParseRejectsUnknownCurve(t *testing.T) {
	_, err := Parse("linear", "1")
	require.Error(t, err)
	_, err = Parse("power", "abc")
	require.Error(t, err)
}
