package grid

import "context"

// Record is one row of externally owned data.
type Record interface {
	ID() string
	Value(key string) any
}

// MapRecord is a Record backed by a map of column key to value.
type MapRecord struct {
	RecordID string
	Values   map[string]any
}

// ID returns the record id.
func (r *MapRecord) ID() string { return r.RecordID }

// Value returns the value stored under key, or nil.
func (r *MapRecord) Value(key string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// DataProvider gives read access to records by index and by id.
// Both lookups must be O(1) or O(log n): the grid calls RecordByIndex once
// per materialized row per render cycle.
type DataProvider interface {
	RecordByIndex(i int) (Record, bool)
	RecordByID(id string) (Record, bool)
	RecordCount() int
}

// Loader is implemented by providers that can fetch further records.
// Errors are returned unchanged to the caller of Grid.LoadMore.
type Loader interface {
	LoadMore(ctx context.Context) error
}

// Editor is implemented by providers that accept cell edits.
type Editor interface {
	ModifyRecord(ctx context.Context, id, key string, value any) error
}

// SliceProvider is an in-memory DataProvider and Editor.
type SliceProvider struct {
	records []Record
	byID    map[string]int
}

// NewSliceProvider indexes records for O(1) lookups by index and id.
func NewSliceProvider(records []Record) *SliceProvider {
	p := &SliceProvider{}
	p.Reset(records)
	return p
}

// Reset replaces the record set.
func (p *SliceProvider) Reset(records []Record) {
	p.records = records
	p.byID = make(map[string]int, len(records))
	for i, r := range records {
		p.byID[r.ID()] = i
	}
}

// Append adds records at the end.
func (p *SliceProvider) Append(records ...Record) {
	for _, r := range records {
		p.byID[r.ID()] = len(p.records)
		p.records = append(p.records, r)
	}
}

// RecordByIndex returns the record at i.
func (p *SliceProvider) RecordByIndex(i int) (Record, bool) {
	if i < 0 || i >= len(p.records) {
		return nil, false
	}
	return p.records[i], true
}

// RecordByID returns the record with the given id.
func (p *SliceProvider) RecordByID(id string) (Record, bool) {
	i, ok := p.byID[id]
	if !ok {
		return nil, false
	}
	return p.records[i], true
}

// RecordCount returns the number of records.
func (p *SliceProvider) RecordCount() int { return len(p.records) }

// ModifyRecord sets key on a MapRecord. Other record types are rejected.
func (p *SliceProvider) ModifyRecord(_ context.Context, id, key string, value any) error {
	rec, ok := p.RecordByID(id)
	if !ok {
		return ErrRecordNotFound
	}
	mr, ok := rec.(*MapRecord)
	if !ok {
		return ErrNotEditable
	}
	if mr.Values == nil {
		mr.Values = make(map[string]any)
	}
	mr.Values[key] = value
	return nil
}
