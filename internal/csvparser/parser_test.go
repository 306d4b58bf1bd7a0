package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "fecha,franja,producto,familia,unidades,precio_unitario"

func TestParse(t *testing.T) {
	text := header + "\n" +
		"2024-01-05,desayuno,Café,bebida,2,1.5\n" +
		"2024-01-06,Comida,Paella,Principal,1,12\n"

	data, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"fecha", "franja", "producto", "familia", "unidades", "precio_unitario"}, data.Headers)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, 6, data.ColumnCount)
	require.Len(t, data.Records, 2)

	first := data.Records[0]
	assert.Equal(t, 2, first.Line)
	value, ok := first.Get("producto")
	assert.True(t, ok)
	assert.Equal(t, "Café", value)

	value, _ = data.Records[1].Get("producto")
	assert.Equal(t, "Paella", value)
	assert.Equal(t, 3, data.Records[1].Line)
}

func TestParseMalformedLines(t *testing.T) {
	text := header + "\n" +
		"2024-01-05,Comida\n" +
		"2024-01-05,Comida,Sopa,Entrante,1,3,extra,values\n"

	data, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, data.Records, 2)

	short := data.Records[0]
	_, ok := short.Get("producto")
	assert.False(t, ok, "missing values are absent, not empty")
	value, ok := short.Get("franja")
	assert.True(t, ok)
	assert.Equal(t, "Comida", value)

	long := data.Records[1]
	assert.Len(t, long.Values, 6, "extra values are dropped")
	value, _ = long.Get("precio_unitario")
	assert.Equal(t, "3", value)
}

func TestParseTrimsInputAndCarriageReturns(t *testing.T) {
	text := "\n\n  " + header + "\r\n2024-01-05,Comida,Sopa,Entrante,1,3\r\n\n  "

	data, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, data.Records, 1)

	value, ok := data.Records[0].Get("precio_unitario")
	assert.True(t, ok)
	assert.Equal(t, "3", value)
}

func TestParseKeepsBlankInteriorLines(t *testing.T) {
	text := header + "\n2024-01-05,Comida,Sopa,Entrante,1,3\n\n2024-01-06,Comida,Sopa,Entrante,1,3"

	data, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, data.Records, 3)
}

func TestParseHeaderOnly(t *testing.T) {
	data, err := Parse(header)
	require.NoError(t, err)
	assert.Empty(t, data.Records)
	assert.Equal(t, 0, data.RowCount)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "empty input", input: "", expected: ErrEmptyInput},
		{name: "whitespace only", input: " \n\t\n ", expected: ErrEmptyInput},
		{name: "blank header cells", input: ",,\n1,2,3", expected: ErrMissingHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Parse(tt.input)
			assert.Nil(t, data)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseBlankHeaderCellGetsPlaceholder(t *testing.T) {
	data, err := Parse("fecha,,producto\n1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []string{"fecha", "Column_2", "producto"}, data.Headers)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ventas_raw.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\n2024-01-05,Comida,Sopa,Entrante,1,3\n"), 0644))

	data, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, data.SourceFile)
	assert.Len(t, data.Records, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ParseFile(empty)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestHeadAndColumn(t *testing.T) {
	data, err := Parse(header + "\n2024-01-05,Comida,Sopa\n2024-01-06,Comida,Flan\n2024-01-07,Comida")
	require.NoError(t, err)

	assert.Len(t, Head(data, 2), 2)
	assert.Len(t, Head(data, 10), 3)
	assert.Equal(t, []string{"Sopa", "Flan", ""}, GetColumnByHeader(data, "producto"))
}
