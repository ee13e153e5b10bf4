package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"teaspoon", "tsp"},
		{"Teaspoons", "tsp"},
		{"tsp.", "tsp"},
		{"tablespoon", "tbsp"},
		{"TBSP", "tbsp"},
		{"Cup", "cup"},
		{"cups", "cups"},
		{"ounce", "oz"},
		{"ounces", "oz"},
		{"oz.", "oz"},
		{"pound", "lb"},
		{"lbs", "lb"},
		{"gram", "g"},
		{"grams", "g"},
		{"kilogram", "kg"},
		{"milliliter", "ml"},
		{"liters", "l"},
		{"cloves", "clove"},
		{"pinches", "pinch"},
		{"dashes", "dash"},
		{"can", "can"},
		{"cans", "cans"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeUnit(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeUnitUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "bunch", NormalizeUnit("bunch"))
	assert.Equal(t, "Slices", NormalizeUnit("Slices"))
}

func TestNormalizeUnitIdempotent(t *testing.T) {
	inputs := []string{"teaspoons", "OZ.", "pound", "bunch", "", "cups"}
	for _, in := range inputs {
		once := NormalizeUnit(in)
		assert.Equal(t, once, NormalizeUnit(once), "input %q", in)
	}
}

func TestIsCanonicalUnit(t *testing.T) {
	for _, u := range CanonicalUnits() {
		assert.True(t, IsCanonicalUnit(u), "unit %q", u)
	}
	// 空字串是合法單位
	assert.True(t, IsCanonicalUnit(""))

	assert.False(t, IsCanonicalUnit("bunch"))
	assert.False(t, IsCanonicalUnit("ounce"))
	assert.False(t, IsCanonicalUnit("(8 oz cans)"))
}
