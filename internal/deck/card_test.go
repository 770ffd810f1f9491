package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardStrings(t *testing.T) {
	t.Parallel()

	c := NewCard(Ace, Spades)
	assert.Equal(t, "A♠", c.String())
	assert.Equal(t, "As", c.Compact())

	c = NewCard(Ten, Diamonds)
	assert.Equal(t, "T♦", c.String())
	assert.Equal(t, "Td", c.Compact())
	assert.True(t, c.IsRed())
}

func TestParseAcceptsBothSuitForms(t *testing.T) {
	t.Parallel()

	letter, err := Parse("Kh")
	require.NoError(t, err)
	symbol, err := Parse("K♥")
	require.NoError(t, err)
	assert.Equal(t, letter, symbol)
	assert.Equal(t, NewCard(King, Hearts), letter)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "A", "1s", "Xd", "Ax", "AsKs"} {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	cs, err := ParseAll("As", "Kd", "2c")
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, NewCard(Two, Clubs), cs[2])

	_, err = ParseAll("As", "bogus")
	assert.Error(t, err)
}

func TestMustParsePanicsOnBadInput(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("zz") })
}

func TestRankValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, Two.Value())
	assert.Equal(t, 10, Ten.Value())
	assert.Equal(t, 14, Ace.Value())
	assert.Equal(t, "A", Ace.String())
	assert.Equal(t, "T", Ten.String())
}
