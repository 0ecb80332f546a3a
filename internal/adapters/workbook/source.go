// Package workbook reads planning sheets from .xlsx files and writes
// assignment results back out.
package workbook

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"trip-assignment-service/internal/domain"
)

// Source is a SheetSource over one workbook. The first row of each sheet is
// its header.
type Source struct {
	mu   sync.Mutex
	file *excelize.File
}

func OpenSource(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return &Source{file: f}, nil
}

func NewSourceFromReader(r io.Reader) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Source{file: f}, nil
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Sheets lists the workbook's sheet names in tab order.
func (s *Source) Sheets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.GetSheetList()
}

// ListRows reads one sheet. Sheet names match case-insensitively; a missing
// sheet yields no rows. Blank cells are left out of the row.
func (s *Source) ListRows(ctx context.Context, sheet string) ([]domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// excelize.File is not safe for concurrent reads.
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.resolveSheet(sheet)
	if !ok {
		return []domain.Row{}, nil
	}

	// Raw values: a number format must not round coordinates or volumes.
	cells, err := s.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(cells) == 0 {
		return []domain.Row{}, nil
	}

	header := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		header[i] = normalizeHeader(h)
	}

	rows := make([]domain.Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := domain.Row{}
		for i, v := range line {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if strings.TrimSpace(v) == "" {
				continue
			}
			row[header[i]] = v
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Source) resolveSheet(sheet string) (string, bool) {
	want := strings.TrimSpace(sheet)
	for _, name := range s.file.GetSheetList() {
		if name == want {
			return name, true
		}
	}
	for _, name := range s.file.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return name, true
		}
	}
	return "", false
}

// normalizeHeader trims a header cell and puts it in NFC form, so headers
// typed on different systems compare equal.
func normalizeHeader(h string) string {
	return norm.NFC.String(strings.TrimSpace(h))
}
