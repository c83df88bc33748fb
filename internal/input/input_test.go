package input

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/numtheory"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "fixtures", name)
}

func strs(values []bigint.Int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func TestReadIntegers(t *testing.T) {
	values, err := ReadIntegers(fixture("integers.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"867017552311",
		"1018081",
		"255",
		"-12",
		"340282366920938463463374607431768211507",
	}, strs(values))

	values, err = ReadIntegers(fixture("integers.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"867017552311", "1018081", "255", "-12"}, strs(values))
}

func TestReadCongruences(t *testing.T) {
	for _, name := range []string{"congruences.json", "congruences.csv"} {
		t.Run(name, func(t *testing.T) {
			system, err := ReadCongruences(fixture(name))
			require.NoError(t, err)
			require.Len(t, system, 3)

			x, err := numtheory.Chinese(system)
			require.NoError(t, err)
			assert.Equal(t, "23", x.String())
		})
	}
}

func TestForFile(t *testing.T) {
	_, err := ForFile("values.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	p, err := ForFile("VALUES.JSON")
	require.NoError(t, err)
	assert.IsType(t, &JSONParser{}, p)

	_, err = ReadIntegers(fixture("missing.json"))
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"42", "42"},
		{"-42", "-42"},
		{" 7 ", "7"},
		{"0x10", "16"},
		{"0XfF", "255"},
		{"0xabc", "2748"},
		{"-0x10", "-16"},
		{json.Number("123456789012345678901234567890"), "123456789012345678901234567890"},
		{int64(-5), "-5"},
		{9, "9"},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		require.NoError(t, err, "ParseValue(%v)", tt.in)
		assert.Equal(t, tt.want, got.String(), "ParseValue(%v)", tt.in)
	}

	for _, bad := range []any{"", "12a", "0x", "0xzz", json.Number("1.5"), 2.5, nil} {
		_, err := ParseValue(bad)
		assert.Error(t, err, "ParseValue(%v)", bad)
	}
	_, err := ParseValue("1e9")
	assert.ErrorIs(t, err, bigint.ErrSyntax)
}

func TestParseCongruence(t *testing.T) {
	c, err := ParseCongruence("-4:9")
	require.NoError(t, err)
	assert.Equal(t, "-4", c.Residue.String())
	assert.Equal(t, "9", c.Modulus.String())

	_, err = ParseCongruence("4")
	assert.Error(t, err)
	_, err = ParseCongruence("4:x")
	assert.ErrorContains(t, err, "modulus")
}

func TestJSONParserCustomFields(t *testing.T) {
	p := &JSONParser{ResidueField: "r", ModulusField: "m"}
	system, err := p.ParseCongruences(strings.NewReader(`[{"r": "1", "m": "4"}, {"r": 2, "m": 9}]`))
	require.NoError(t, err)
	require.Len(t, system, 2)

	x, err := numtheory.Chinese(system)
	require.NoError(t, err)
	assert.Equal(t, "29", x.String())

	_, err = p.ParseCongruences(strings.NewReader(`[{"r": "1"}]`))
	assert.ErrorContains(t, err, "missing m field")
}

func TestCSVParserErrors(t *testing.T) {
	p := &CSVParser{}
	_, err := p.ParseIntegers(strings.NewReader("number\n5\n"))
	assert.ErrorContains(t, err, "missing required column: value")

	_, err = p.ParseIntegers(strings.NewReader("value\n5\nfive\n"))
	assert.ErrorContains(t, err, "line 3")

	_, err = p.ParseCongruences(strings.NewReader(""))
	assert.ErrorContains(t, err, "failed to read header")
}
