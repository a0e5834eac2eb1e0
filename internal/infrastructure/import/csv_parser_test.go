package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("valid UTF-8 file", func(t *testing.T) {
		csv := "code,first_name,last_name\nEMP-1,Jane,Doe\nEMP-2,Ali,Veliyev"
		parser, err := NewCSVParser(strings.NewReader(csv))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		csv := "\xEF\xBB\xBFcode,first_name\nEMP-1,Jane"
		parser, err := NewCSVParser(strings.NewReader(csv))

		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, "code", parser.Headers()[0])
	})

	t.Run("empty file", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader(""))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("code,name\n\xFF\xFE,bad"))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		csv := "code;first_name;last_name\nEMP-1;Jane;Doe"
		parser, err := NewCSVParser(strings.NewReader(csv), WithDelimiter(';'))

		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"code", "first_name", "last_name"}, parser.Headers())
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("header with spaces trimmed", func(t *testing.T) {
		csv := "  code , first_name , hire_date \nEMP-1,Jane,2024-01-15"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"code", "first_name", "hire_date"}, parser.Headers())
		assert.True(t, parser.HasHeader("hire_date"))
		assert.False(t, parser.HasHeader("salary"))
	})

	t.Run("missing headers reported", func(t *testing.T) {
		csv := "code,first_name\nEMP-1,Jane"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		missing := parser.MissingHeaders([]string{"first_name", "last_name", "hire_date"})
		assert.Equal(t, []string{"last_name", "hire_date"}, missing)
	})
}

func TestReadRow(t *testing.T) {
	csv := "code,first_name,last_name\nEMP-1, Jane ,Doe\nEMP-2,Ali\n"
	parser, err := NewCSVParser(strings.NewReader(csv))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Jane", row.Get("first_name"))
	assert.Equal(t, "Doe", row.Get("last_name"))

	// Short rows pad missing columns with empty strings.
	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("last_name"))
	assert.Equal(t, "unknown", row.GetOrDefault("last_name", "unknown"))

	_, err = parser.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestReadAllRows(t *testing.T) {
	csv := "code,first_name\nEMP-1,Jane\n,,\n\nEMP-2,Ali\n"
	parser, err := NewCSVParser(strings.NewReader(csv))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2, "empty rows are skipped")
	assert.Equal(t, "EMP-1", rows[0].Get("code"))
	assert.Equal(t, "EMP-2", rows[1].Get("code"))
}

func TestRowIsEmpty(t *testing.T) {
	empty := &Row{Data: map[string]string{"a": "", "b": ""}}
	assert.True(t, empty.IsEmpty())

	nonEmpty := &Row{Data: map[string]string{"a": "", "b": "x"}}
	assert.False(t, nonEmpty.IsEmpty())
}
