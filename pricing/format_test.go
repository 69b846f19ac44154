package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "12.50", FormatPrice(12.5))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "109.95", FormatPrice(109.95))
	assert.Equal(t, "0.30", FormatPrice(0.1+0.2))
	assert.Equal(t, "0.00", FormatPrice(math.NaN()))
}

func TestFormatDisplayPrice(t *testing.T) {
	assert.Equal(t, "$22.50", FormatDisplayPrice(22.5))
	assert.Equal(t, "$7.00", FormatDisplayPrice(7))
}

func TestFormatPriceDiff(t *testing.T) {
	assert.Equal(t, "+2.50", FormatPriceDiff(2.5))
	assert.Equal(t, "-3.00", FormatPriceDiff(-3))
	assert.Equal(t, "", FormatPriceDiff(0))
}
