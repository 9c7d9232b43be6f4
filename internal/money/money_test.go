package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name    string
		gross   int64
		rate    float64
		wantFee int64
		wantNet int64
	}{
		{"typical price at default rate", 19900, 0.18, 3582, 16318},
		{"zero gross", 0, 0.18, 0, 0},
		{"one paisa", 1, 0.18, 0, 1},
		{"rounds half up", 50, 0.15, 8, 42}, // 7.5 -> 8
		{"rate below min clamps to 0.15", 10000, 0.05, 1500, 8500},
		{"rate above max clamps to 0.20", 10000, 0.99, 2000, 8000},
		{"nan rate falls back to default", 10000, math.NaN(), 1800, 8200},
		{"large gross", 1_000_000_00, 0.18, 18_000_000, 82_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, net, err := ComputeFee(tt.gross, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantNet, net)
			assert.Equal(t, tt.gross, fee+net, "split must sum back to gross")
		})
	}
}

func TestComputeFee_NegativeGross(t *testing.T) {
	_, _, err := ComputeFee(-1, 0.18)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestComputeFee_SplitAlwaysSums(t *testing.T) {
	for gross := int64(0); gross <= 5000; gross++ {
		for _, rate := range []float64{0.15, 0.17, 0.18, 0.1999, 0.20} {
			fee, net, err := ComputeFee(gross, rate)
			require.NoError(t, err)
			require.Equal(t, gross, fee+net, "gross=%d rate=%v", gross, rate)
			require.GreaterOrEqual(t, fee, int64(0))
			require.GreaterOrEqual(t, net, int64(0))
		}
	}
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.18, ClampRate(0.18))
	assert.Equal(t, MinRate, ClampRate(0.0))
	assert.Equal(t, MinRate, ClampRate(-1))
	assert.Equal(t, MaxRate, ClampRate(0.5))
	assert.Equal(t, DefaultRate, ClampRate(math.NaN()))
	assert.Equal(t, DefaultRate, ClampRate(math.Inf(1)))
	assert.Equal(t, DefaultRate, ClampRate(math.Inf(-1)))
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, DefaultRate, ParseRate(""))
	assert.Equal(t, DefaultRate, ParseRate("abc"))
	assert.Equal(t, 0.17, ParseRate("0.17"))
	assert.Equal(t, MaxRate, ParseRate("0.9"))
	assert.Equal(t, MinRate, ParseRate("0.01"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹199.00", Format(19900, "INR"))
	assert.Equal(t, "₹0.05", Format(5, "INR"))
	assert.Equal(t, "-₹12.34", Format(-1234, "INR"))
	assert.Equal(t, "$10.00", Format(1000, "USD"))
	assert.Equal(t, "XYZ 1.00", Format(100, "XYZ"))
}
