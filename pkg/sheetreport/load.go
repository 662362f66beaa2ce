package sheetreport

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
	"github.com/xuri/excelize/v2"
)

// Source is a grid loaded from one sheet of a workbook.
type Source struct {
	// Path is the resolved workbook path.
	Path string
	// Sheet is the sheet the grid was read from.
	Sheet string
	// Grid holds the sheet cells.
	Grid *models.Grid
}

// ResolveSource maps path to a workbook file. A directory resolves to its
// first workbook by name; a missing file does too when fallback is set.
func ResolveSource(path string, fallback bool) (string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return firstWorkbook(path)
	case err == nil:
		return path, nil
	case errors.Is(err, fs.ErrNotExist) && fallback:
		return firstWorkbook(filepath.Dir(path))
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return "", err
}

// firstWorkbook returns the first *.xlsx in dir, skipping Excel lock files.
func firstWorkbook(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, dir)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("%w: no .xlsx file in %s", ErrFileNotFound, dir)
}

// Load opens the workbook at path and reads one sheet as an untyped grid.
func Load(path string, opts Options) (*Source, error) {
	log := opts.logger()

	resolved, err := ResolveSource(path, opts.FallbackToDirectory)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		log.Info("resolved workbook", slog.String("requested", path), slog.String("path", resolved))
	}

	f, err := excelize.OpenFile(resolved)
	if err != nil {
		return nil, NewExtractionError(opts.Sheet, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheetName, err := selectSheet(f, opts.Sheet)
	if err != nil {
		return nil, NewExtractionError(opts.Sheet, "sheet", err)
	}

	grid, err := parser.LoadGrid(f, sheetName, opts.RawValues)
	if err != nil {
		return nil, NewExtractionError(sheetName, "cells", err)
	}

	log.Debug("loaded sheet",
		slog.String("path", resolved),
		slog.String("sheet", sheetName),
		slog.Int("rows", grid.Rows()),
		slog.Int("cols", grid.Cols()))

	return &Source{Path: resolved, Sheet: sheetName, Grid: grid}, nil
}

// selectSheet returns want if the workbook has it, or the first sheet when want is empty.
func selectSheet(f *excelize.File, want string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, want)
}
