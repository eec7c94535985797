package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func sample() []types.ShoppingItem {
	return []types.ShoppingItem{
		{ID: "1", Text: "apples"},
		{ID: "2", Text: "2 cups all-purpose flour"},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"list.txt", FormatText, false},
		{"list", FormatText, false},
		{"LIST.XLSX", FormatXLSX, false},
		{"list.pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0o644))

	require.NoError(t, Write(path, sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apples\n2 cups all-purpose flour\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteTextMissingDir(t *testing.T) {
	err := WriteText(filepath.Join(t.TempDir(), "no", "such", "list.txt"), sample())
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.xlsx")
	require.NoError(t, Write(path, sample()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"#", "item"},
		{"1", "apples"},
		{"2", "2 cups all-purpose flour"},
	}, rows)
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"#", "item"}}, rows)
}
