// Package sample generates synthetic tables for the demo hosts.
package sample

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-theft-auto/grid"
)

// columnCycle is the type rotation for generated columns after the frozen
// name column.
var columnCycle = []struct {
	typ   grid.ColumnType
	width float32
}{
	{grid.ColumnDate, 120},
	{grid.ColumnSingleSelect, 130},
	{grid.ColumnNumber, 90},
	{grid.ColumnLongText, 220},
	{grid.ColumnCheckbox, 80},
	{grid.ColumnTags, 160},
	{grid.ColumnCreatedTime, 150},
	{grid.ColumnEmail, 180},
	{grid.ColumnRate, 90},
}

// Columns returns n columns: a frozen name column followed by a repeating
// mix of types.
func Columns(n int) []grid.Column {
	if n <= 0 {
		return nil
	}
	cols := make([]grid.Column, 0, n)
	cols = append(cols, grid.Column{Key: "name", Name: "Name", Type: grid.ColumnText, Width: 160, Frozen: true, Editable: true})
	for i := 1; i < n; i++ {
		c := columnCycle[(i-1)%len(columnCycle)]
		cols = append(cols, grid.Column{
			Key:      "c" + strconv.Itoa(i),
			Name:     fmt.Sprintf("%s %d", c.typ, i),
			Type:     c.typ,
			Width:    c.width,
			Editable: true,
		})
	}
	return cols
}

var (
	statuses = []string{"open", "in progress", "blocked", "done"}
	epoch    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Value computes the deterministic value of a generated cell.
func Value(row int, col grid.Column) any {
	if col.Key == "name" {
		return fmt.Sprintf("record %d", row)
	}
	n, _ := strconv.Atoi(col.Key[1:])
	seed := row*31 + n*17
	switch col.Type {
	case grid.ColumnDate:
		return epoch.AddDate(0, 0, seed%365).Format(time.DateOnly)
	case grid.ColumnSingleSelect:
		return statuses[seed%len(statuses)]
	case grid.ColumnNumber:
		return seed % 1000
	case grid.ColumnLongText:
		return fmt.Sprintf("note for row %d, column %d", row, n)
	case grid.ColumnCheckbox:
		return seed%3 == 0
	case grid.ColumnTags:
		return []string{statuses[seed%4], statuses[(seed+1)%4]}
	case grid.ColumnCreatedTime:
		return epoch.Add(time.Duration(seed) * time.Minute).Format(time.DateTime)
	case grid.ColumnEmail:
		return fmt.Sprintf("user%d@example.com", seed%500)
	case grid.ColumnRate:
		return seed % 6
	default:
		return ""
	}
}

// Provider is a lazy grid.DataProvider over a generated table. Cells are
// computed on read; edits are kept in an overlay.
type Provider struct {
	rows    int
	columns map[string]grid.Column
	edits   map[string]map[string]any
}

// NewProvider returns a provider of rows records over cols.
func NewProvider(rows int, cols []grid.Column) *Provider {
	p := &Provider{
		rows:    rows,
		columns: make(map[string]grid.Column, len(cols)),
		edits:   make(map[string]map[string]any),
	}
	for _, c := range cols {
		p.columns[c.Key] = c
	}
	return p
}

type record struct {
	p   *Provider
	row int
	id  string
}

func (r record) ID() string { return r.id }

func (r record) Value(key string) any {
	if e, ok := r.p.edits[r.id]; ok {
		if v, ok := e[key]; ok {
			return v
		}
	}
	col, ok := r.p.columns[key]
	if !ok {
		return nil
	}
	return Value(r.row, col)
}

func recordID(row int) string { return "rec" + strconv.Itoa(row) }

// RecordByIndex returns the generated record at i.
func (p *Provider) RecordByIndex(i int) (grid.Record, bool) {
	if i < 0 || i >= p.rows {
		return nil, false
	}
	return record{p: p, row: i, id: recordID(i)}, true
}

// RecordByID resolves ids of the form "rec<index>".
func (p *Provider) RecordByID(id string) (grid.Record, bool) {
	if len(id) < 4 || id[:3] != "rec" {
		return nil, false
	}
	i, err := strconv.Atoi(id[3:])
	if err != nil {
		return nil, false
	}
	return p.RecordByIndex(i)
}

// RecordCount returns the number of generated records.
func (p *Provider) RecordCount() int { return p.rows }

// ModifyRecord stores an edit in the overlay.
func (p *Provider) ModifyRecord(_ context.Context, id, key string, value any) error {
	if _, ok := p.RecordByID(id); !ok {
		return grid.ErrRecordNotFound
	}
	if _, ok := p.columns[key]; !ok {
		return fmt.Errorf("%w: unknown column %q", grid.ErrNotEditable, key)
	}
	e := p.edits[id]
	if e == nil {
		e = make(map[string]any)
		p.edits[id] = e
	}
	e[key] = value
	return nil
}
