package num

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"nil", nil, 7, 7},
		{"empty string", "", 3, 3},
		{"blank string", "   ", 3, 3},
		{"float", 1.5, 0, 1.5},
		{"int", 12, 0, 12},
		{"int64", int64(-4), 0, -4},
		{"numeric string", " 2.75 ", 0, 2.75},
		{"json number", json.Number("0.012"), 0, 0.012},
		{"garbage", "abc", 9, 9},
		{"comma decimal is not numeric here", "1,25", 0, 0},
		{"bool", true, 5, 5},
		{"nan", math.NaN(), 1, 1},
		{"inf string", "Inf", 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SafeNumber(tc.in, tc.def))
		})
	}
}

func TestDecimalComma(t *testing.T) {
	t.Parallel()

	f, ok := DecimalComma("1,25")
	assert.True(t, ok)
	assert.InDelta(t, 1.25, f, 1e-12)

	f, ok = DecimalComma("0,012")
	assert.True(t, ok)
	assert.InDelta(t, 0.012, f, 1e-12)

	f, ok = DecimalComma(150)
	assert.True(t, ok)
	assert.Equal(t, 150.0, f)

	_, ok = DecimalComma("n/a")
	assert.False(t, ok)

	_, ok = DecimalComma(nil)
	assert.False(t, ok)
}

func TestPositive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.0, Positive("3", 1))
	assert.Equal(t, 1.0, Positive(0, 1))
	assert.Equal(t, 1.0, Positive(-2, 1))
	assert.Equal(t, 1.0, Positive("", 1))
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "101", FormatKey(101))
	assert.Equal(t, "101", FormatKey(101.0))
	assert.Equal(t, "101", FormatKey(" 101 "))
	assert.Equal(t, "10.5", FormatKey(10.5))
	assert.Equal(t, "T1", FormatKey("T1"))
	assert.Equal(t, "", FormatKey(nil))
}
