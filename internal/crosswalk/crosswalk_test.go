package crosswalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficialRoundTrip(t *testing.T) {
	cw := New()
	for _, label := range cw.Official() {
		assert.Equal(t, label, cw.ToDisplay(cw.ToInternal(label)), label)
	}
}

func TestAliasRoundTrip(t *testing.T) {
	cw := New()
	assert.Equal(t, "América do Norte", cw.ToDisplay("Falconi EUA"))
	assert.Equal(t, "Falconi EUA", cw.ToInternal("América do Norte"))
	assert.Equal(t, "Falconi EUA", cw.ToInternal(cw.ToDisplay("Falconi EUA")))
}

func TestUnmappedPassThrough(t *testing.T) {
	cw := New()
	assert.Equal(t, "Whatever", cw.ToDisplay("Whatever"))
	assert.Equal(t, "Whatever", cw.ToInternal("Whatever"))
	assert.Equal(t, "Whatever", cw.NormalizeSource("Whatever"))
}

func TestNormalizeSource(t *testing.T) {
	cw := New()
	assert.Equal(t, "Falconi EUA", cw.NormalizeSource("América do Norte"))
	assert.Equal(t, "Bens Não Duráveis", cw.NormalizeSource("Varejo e Bens de Consumo"))
}

func TestOfficialIsCopy(t *testing.T) {
	cw := New()
	list := cw.Official()
	require.NotEmpty(t, list)
	list[0] = "mutated"
	assert.NotEqual(t, "mutated", cw.Official()[0])
	assert.True(t, cw.IsOfficial("MID"))
	assert.False(t, cw.IsOfficial("mutated"))
}
