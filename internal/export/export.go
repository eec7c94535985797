// Package export writes the shopping list to a file.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Supported formats.
const (
	FormatText = "txt"
	FormatXLSX = "xlsx"
)

// SheetName is the worksheet holding the list in xlsx exports.
const SheetName = "Shopping"

// ErrUnsupportedFormat is returned for a file extension with no exporter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case FormatText, "":
		return FormatText, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Write exports items to path in the format implied by its extension.
func Write(path string, items []types.ShoppingItem) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return WriteXLSX(path, items)
	}
	return WriteText(path, items)
}

// WriteText writes one item per line using the temp-file, fsync, rename
// pattern so a reader never sees a partial file.
func WriteText(path string, items []types.ShoppingItem) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".shopping-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, it := range items {
		if _, err := w.WriteString(it.Text); err != nil {
			return fail("writing item: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with a header row and one row per item:
// its position and its text.
func WriteXLSX(path string, items []types.ShoppingItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(2, 2, 40); err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"#", "item"}); err != nil {
		return err
	}
	for i, it := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{i + 1, it.Text}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
