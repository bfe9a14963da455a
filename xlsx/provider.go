// Package xlsx serves one worksheet of an Excel workbook as grid records.
//
// The first row holds column headers. Data rows are read in pages through
// excelize's streaming row iterator, so large sheets appear progressively as
// the grid asks for more.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/go-theft-auto/grid"
)

// DefaultPageSize is the number of rows read per LoadMore call.
const DefaultPageSize = 500

// ErrClosed is returned when the workbook has been closed.
var ErrClosed = errors.New("xlsx: workbook closed")

// Provider is a grid.DataProvider, grid.Loader and grid.Editor over a sheet.
type Provider struct {
	*grid.SliceProvider

	file     *excelize.File
	sheet    string
	pageSize int
	logger   *slog.Logger

	columns []grid.Column
	rows    *excelize.Rows
	nextRow int            // Excel row number of the next row the iterator yields
	cellRow map[string]int // record id -> Excel row number
	done    bool
	closed  bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithSheet selects the sheet by name. The first sheet is used otherwise.
func WithSheet(name string) Option {
	return func(p *Provider) { p.sheet = name }
}

// WithPageSize sets how many rows LoadMore reads.
func WithPageSize(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithLogger sets the logger for page loads and edits.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// Open opens the workbook at path and reads the header and first page.
func Open(ctx context.Context, path string, opts ...Option) (*Provider, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	p, err := New(ctx, f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return p, nil
}

// New wraps an open workbook. The provider owns f from here on.
func New(ctx context.Context, f *excelize.File, opts ...Option) (*Provider, error) {
	p := &Provider{
		SliceProvider: grid.NewSliceProvider(nil),
		file:          f,
		pageSize:      DefaultPageSize,
		logger:        slog.Default(),
		cellRow:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sheet == "" {
		p.sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(p.sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", p.sheet)
	}

	rows, err := f.Rows(p.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", p.sheet, err)
	}
	p.rows = rows
	p.nextRow = 1

	header, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		p.done = true
		return p, nil
	}

	if err := p.LoadMore(ctx); err != nil {
		return nil, err
	}
	p.columns = p.inferColumns(header)
	p.convertLoaded()
	return p, nil
}

// next advances the row iterator.
func (p *Provider) next() (cells []string, ok bool, err error) {
	if !p.rows.Next() {
		if err := p.rows.Error(); err != nil {
			return nil, false, fmt.Errorf("iterate sheet %q: %w", p.sheet, err)
		}
		return nil, false, nil
	}
	cells, err = p.rows.Columns()
	if err != nil {
		return nil, false, fmt.Errorf("read row %d of %q: %w", p.nextRow, p.sheet, err)
	}
	p.nextRow++
	return cells, true, nil
}

// Sheet returns the sheet name.
func (p *Provider) Sheet() string { return p.sheet }

// Columns returns the columns derived from the header row.
func (p *Provider) Columns() []grid.Column { return p.columns }

// Exhausted reports whether every row of the sheet has been read.
func (p *Provider) Exhausted() bool { return p.done }

// LoadMore appends the next page of rows. It returns nil once the sheet is
// exhausted.
func (p *Provider) LoadMore(ctx context.Context) error {
	if p.closed {
		return ErrClosed
	}
	if p.done {
		return nil
	}
	before := p.RecordCount()
	batch := make([]grid.Record, 0, p.pageSize)
	for len(batch) < p.pageSize {
		if err := ctx.Err(); err != nil {
			p.SliceProvider.Append(batch...)
			return err
		}
		excelRow := p.nextRow
		cells, ok, err := p.next()
		if err != nil {
			p.SliceProvider.Append(batch...)
			return err
		}
		if !ok {
			p.done = true
			p.rows.Close()
			break
		}
		if isBlank(cells) {
			continue
		}
		rec := p.record(excelRow, cells)
		p.cellRow[rec.RecordID] = excelRow
		batch = append(batch, rec)
	}
	p.SliceProvider.Append(batch...)
	p.logger.Debug("xlsx page loaded", "sheet", p.sheet, "from", before, "rows", len(batch), "done", p.done)
	return nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (p *Provider) record(excelRow int, cells []string) *grid.MapRecord {
	rec := &grid.MapRecord{
		RecordID: "row-" + strconv.Itoa(excelRow),
		Values:   make(map[string]any, len(cells)),
	}
	if p.columns == nil {
		// Header types are not known yet during the first page; keep raw
		// strings under the positional keys and convert afterwards.
		for i, c := range cells {
			rec.Values[strconv.Itoa(i)] = c
		}
		return rec
	}
	for i, col := range p.columns {
		if i < len(cells) {
			rec.Values[col.Key] = parseValue(col.Type, cells[i])
		}
	}
	return rec
}

// convertLoaded rewrites first-page records from positional keys to column
// keys once the columns are known.
func (p *Provider) convertLoaded() {
	for i := 0; i < p.RecordCount(); i++ {
		r, _ := p.RecordByIndex(i)
		rec := r.(*grid.MapRecord)
		values := make(map[string]any, len(p.columns))
		for j, col := range p.columns {
			if raw, ok := rec.Values[strconv.Itoa(j)].(string); ok {
				values[col.Key] = parseValue(col.Type, raw)
			}
		}
		rec.Values = values
	}
}

// inferColumns names columns from the header and guesses types from the
// first page.
func (p *Provider) inferColumns(header []string) []grid.Column {
	width := len(header)
	for i := 0; i < p.RecordCount(); i++ {
		r, _ := p.RecordByIndex(i)
		width = max(width, len(r.(*grid.MapRecord).Values))
	}

	cols := make([]grid.Column, width)
	seen := make(map[string]int)
	for i := range cols {
		letter, _ := excelize.ColumnNumberToName(i + 1)
		name := letter
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			name = strings.TrimSpace(header[i])
		}
		key := columnKey(name)
		if n := seen[key]; n > 0 {
			key = key + "_" + strconv.Itoa(n+1)
		}
		seen[columnKey(name)]++

		samples := make([]string, 0, p.RecordCount())
		for r := 0; r < p.RecordCount(); r++ {
			rec, _ := p.RecordByIndex(r)
			if s, ok := rec.(*grid.MapRecord).Values[strconv.Itoa(i)].(string); ok && s != "" {
				samples = append(samples, s)
			}
		}
		typ := inferType(samples)

		cols[i] = grid.Column{
			Key:      key,
			Name:     name,
			Type:     typ,
			Width:    p.columnWidth(letter, typ),
			Frozen:   i == 0,
			Editable: true,
		}
	}
	return cols
}

// columnWidth converts the sheet's character width to pixels.
func (p *Provider) columnWidth(letter string, typ grid.ColumnType) float32 {
	w, err := p.file.GetColWidth(p.sheet, letter)
	if err != nil {
		w = 9
	}
	px := float32(w) * 9
	if typ == grid.ColumnLongText {
		px = max(px, 220)
	}
	return min(max(px, 80), 400)
}

func columnKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// longTextRunes is the length from which a text column counts as long text.
const longTextRunes = 60

func inferType(samples []string) grid.ColumnType {
	if len(samples) == 0 {
		return grid.ColumnText
	}
	match := func(pred func(string) bool) bool {
		for _, s := range samples {
			if !pred(s) {
				return false
			}
		}
		return true
	}
	switch {
	case match(isBool):
		return grid.ColumnCheckbox
	case match(isNumber):
		return grid.ColumnNumber
	case match(isDate):
		return grid.ColumnDate
	case match(isEmail):
		return grid.ColumnEmail
	case match(isURL):
		return grid.ColumnURL
	}
	for _, s := range samples {
		if utf8.RuneCountInString(s) >= longTextRunes || strings.Contains(s, "\n") {
			return grid.ColumnLongText
		}
	}
	return grid.ColumnText
}

func isBool(s string) bool {
	switch strings.ToUpper(s) {
	case "TRUE", "FALSE":
		return true
	}
	return false
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

var dateLayouts = []string{time.DateOnly, "01-02-06", "1/2/06", "1/2/2006"}

func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func parseValue(typ grid.ColumnType, s string) any {
	switch typ {
	case grid.ColumnNumber:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	case grid.ColumnCheckbox:
		return strings.EqualFold(s, "TRUE")
	}
	return s
}

// ModifyRecord updates the record and writes the value into its cell.
// Call Save to persist.
func (p *Provider) ModifyRecord(_ context.Context, id, key string, value any) error {
	if p.closed {
		return ErrClosed
	}
	row, ok := p.cellRow[id]
	if !ok {
		return fmt.Errorf("%w: %s", grid.ErrRecordNotFound, id)
	}
	col := -1
	for i, c := range p.columns {
		if c.Key == key {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("%w: unknown column %q", grid.ErrNotEditable, key)
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if err := p.file.SetCellValue(p.sheet, cell, cellValue(value)); err != nil {
		return fmt.Errorf("write %s!%s: %w", p.sheet, cell, err)
	}

	rec, _ := p.RecordByID(id)
	rec.(*grid.MapRecord).Values[key] = value
	p.logger.Debug("xlsx cell written", "sheet", p.sheet, "cell", cell)
	return nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ", ")
	case nil:
		return ""
	default:
		return x
	}
}

// Save writes the workbook back to the file it was opened from.
func (p *Provider) Save() error {
	if p.closed {
		return ErrClosed
	}
	return p.file.Save()
}

// SaveAs writes the workbook to path.
func (p *Provider) SaveAs(path string) error {
	if p.closed {
		return ErrClosed
	}
	return p.file.SaveAs(path)
}

// Close releases the row iterator and the workbook.
func (p *Provider) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if !p.done && p.rows != nil {
		p.rows.Close()
	}
	return p.file.Close()
}
