package pricefmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplay(t *testing.T) {
	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	assert.True(t, ok)
	assert.Equal(t, "1.5", ToDisplay(wei))
	assert.Equal(t, "0", ToDisplay(nil))
	assert.Equal(t, "0", ToDisplay(big.NewInt(0)))
}

func TestToDisplayFromString(t *testing.T) {
	assert.Equal(t, "2", ToDisplayFromString("2000000000000000000"))
	assert.Equal(t, "0.000000000000000001", ToDisplayFromString("1"))
	assert.Equal(t, "0", ToDisplayFromString("not-a-number"))
	assert.Equal(t, "0", ToDisplayFromString(""))
}
