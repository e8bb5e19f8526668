package frontmatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatText(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{0.5, "0.5"},
		{-2.5, "-2.5"},
		{123456789, "123456789.0"},
		{1e16, "1e+16"},
		{1e-5, "1e-05"},
		{0.0001, "0.0001"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Float(tt.in).Text(), "Float(%v)", tt.in)
	}
}

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Absent(), false},
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"zero", Int(0), false},
		{"non-zero", Int(7), true},
		{"zero float", Float(0), false},
		{"empty string", String(""), false},
		{"string", String("no"), true},
		{"empty list", List(nil), false},
		{"list", List([]string{"a"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "None", Absent().Text())
	assert.Equal(t, "false", Bool(false).Text())
	assert.Equal(t, "42", Int(42).Text())
	assert.Equal(t, `["a", "b"]`, List([]string{"a", "b"}).Text())
	assert.Equal(t, "[]", List(nil).Text())
}

func TestListIsCopied(t *testing.T) {
	items := []string{"a"}
	v := List(items)
	items[0] = "changed"
	assert.Equal(t, []string{"a"}, v.Items())

	out := v.Items()
	out[0] = "changed"
	assert.Equal(t, []string{"a"}, v.Items())
}
