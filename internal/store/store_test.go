package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bundledit/internal/errors"
	"bundledit/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `index,file_type,source_text,translated_text
0,dialogue,Hello,Привет
1,menu,Settings,
2,dialogue,Goodbye,Пока
`

func loadSample(t *testing.T) *Table {
	t.Helper()
	table, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return table
}

func TestLoad(t *testing.T) {
	table := loadSample(t)

	assert.Equal(t, 3, table.Len())
	assert.False(t, table.Dirty())

	row, err := table.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "1", row.Index)
	assert.Equal(t, "menu", row.FileType)
	assert.Equal(t, "Settings", row.Source)
	assert.Equal(t, "", row.Translation)
	assert.True(t, row.Untranslated())
}

func TestLoadHeaderOnly(t *testing.T) {
	table, err := Load(strings.NewReader("index,file_type,source_text,translated_text\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLoadDisplayHeader(t *testing.T) {
	// Bundles exported with the display header load the same; the header
	// row content is discarded either way.
	csv := "Index,File Type,Source Text,Translation\n0,dialogue,Hello,\n"
	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{
			name:  "empty file",
			input: "",
			line:  0,
		},
		{
			name:  "short row",
			input: "index,file_type,source_text,translated_text\n0,dialogue,Hello\n",
			line:  2,
		},
		{
			name:  "long row",
			input: "index,file_type,source_text,translated_text\n0,dialogue,Hello,Привет\n1,menu,Settings,x,extra\n",
			line:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsFormatError(err))

			var formatErr *errors.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.line, formatErr.Line())
		})
	}
}

func TestQuotedFields(t *testing.T) {
	csv := "index,file_type,source_text,translated_text\n" +
		`0,dialogue,"Hello, world","С ""кавычками"""` + "\n"
	table, err := Load(strings.NewReader(csv))
	require.NoError(t, err)

	row, err := table.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", row.Source)
	assert.Equal(t, `С "кавычками"`, row.Translation)
}

func TestGetOutOfRange(t *testing.T) {
	table := loadSample(t)

	for _, position := range []int{-1, 3, 100} {
		_, err := table.Get(position)
		require.Error(t, err)
		assert.True(t, errors.IsIndexError(err))
	}
}

func TestSetTranslation(t *testing.T) {
	table := loadSample(t)

	require.NoError(t, table.SetTranslation(1, "Настройки"))
	assert.True(t, table.Dirty())

	row, err := table.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Настройки", row.Translation)
	assert.Equal(t, "Settings", row.Source)

	// Applying the same text again changes nothing observable.
	before, err := table.Serialize()
	require.NoError(t, err)
	require.NoError(t, table.SetTranslation(1, "Настройки"))
	after, err := table.Serialize()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, table.Dirty())

	err = table.SetTranslation(99, "x")
	require.Error(t, err)
	assert.True(t, errors.IsIndexError(err))
}

func TestSerializeOrderAndHeader(t *testing.T) {
	table := loadSample(t)
	require.NoError(t, table.SetTranslation(1, "Настройки"))

	data, err := table.Serialize()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "index,file_type,source_text,translated_text", lines[0])
	assert.Equal(t, "0,dialogue,Hello,Привет", lines[1])
	assert.Equal(t, "1,menu,Settings,Настройки", lines[2])
	assert.Equal(t, "2,dialogue,Goodbye,Пока", lines[3])
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	table, err := ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, table.SetTranslation(1, "Настройки"))
	assert.True(t, table.Dirty())

	require.NoError(t, table.WriteFile(path))
	assert.False(t, table.Dirty())

	reloaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, table.Len(), reloaded.Len())
	for i := 0; i < table.Len(); i++ {
		want, _ := table.Get(i)
		got, _ := reloaded.Get(i)
		assert.Equal(t, want, got)
	}
}

func TestRowFields(t *testing.T) {
	row := types.Row{Index: "7", FileType: "menu", Source: "Load", Translation: "Загрузить"}
	assert.Equal(t, []string{"7", "menu", "Load", "Загрузить"}, row.Fields())
	assert.False(t, row.Untranslated())
}
