package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	v := ParseCurrency("$1,234,567")
	assert.NotNil(t, v)
	assert.Equal(t, int64(1234567), *v)

	assert.Nil(t, ParseCurrency(""))
	assert.Nil(t, ParseCurrency("N/A"))
	assert.Nil(t, ParseCurrency("unknown"))

	v = ParseCurrency("  $57,300,000 ")
	assert.NotNil(t, v)
	assert.Equal(t, int64(57300000), *v)
}

func TestParsePercent(t *testing.T) {
	v := ParsePercent("87%")
	assert.NotNil(t, v)
	assert.Equal(t, 87, *v)

	assert.Nil(t, ParsePercent("N/A"))
	assert.Nil(t, ParsePercent(""))
}

func TestParseFraction(t *testing.T) {
	v := ParseFraction("74/100")
	assert.NotNil(t, v)
	assert.Equal(t, 74, *v)

	assert.Nil(t, ParseFraction("N/A"))
}

func TestAdjustForInflation(t *testing.T) {
	// Reference-year amounts pass through unchanged.
	assert.Equal(t, int64(100), AdjustForInflation(100, "2024"))

	// Ten years back at 3% per year.
	assert.Equal(t, int64(130), AdjustForInflation(100, "2014"))

	// Years outside the supported range get a factor of 1.0.
	assert.Equal(t, int64(100), AdjustForInflation(100, "1900"))
	assert.Equal(t, int64(100), AdjustForInflation(100, "2050"))
	assert.Equal(t, int64(100), AdjustForInflation(100, ""))
	assert.Equal(t, int64(100), AdjustForInflation(100, "19xx"))
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "1995", releaseYear("1995-12-15"))
	assert.Equal(t, "", releaseYear(""))
	assert.Equal(t, "", releaseYear("199"))
	assert.Equal(t, "", releaseYear("19-5-12"))
}
