package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/go-theft-auto/grid"
)

// writeWorkbook creates a workbook with a header row and n data rows.
func writeWorkbook(t *testing.T, n int) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Score", "Done", "Due", "Email", "Notes"}))
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		done := "FALSE"
		if i%2 == 0 {
			done = "TRUE"
		}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &[]any{
			fmt.Sprintf("item %d", i),
			i * 10,
			done,
			fmt.Sprintf("2024-03-%02d", i%28+1),
			fmt.Sprintf("user%d@example.com", i),
			"short note",
		}))
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpen_InfersColumns(t *testing.T) {
	p, err := Open(context.Background(), writeWorkbook(t, 3))
	require.NoError(t, err)
	defer p.Close()

	cols := p.Columns()
	require.Len(t, cols, 6)
	assert.Equal(t, "name", cols[0].Key)
	assert.True(t, cols[0].Frozen)
	assert.False(t, cols[1].Frozen)

	types := make([]grid.ColumnType, len(cols))
	for i, c := range cols {
		types[i] = c.Type
	}
	assert.Equal(t, []grid.ColumnType{
		grid.ColumnText, grid.ColumnNumber, grid.ColumnCheckbox,
		grid.ColumnDate, grid.ColumnEmail, grid.ColumnText,
	}, types)

	rec, ok := p.RecordByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "row-3", rec.ID())
	assert.Equal(t, "item 1", rec.Value("name"))
	assert.Equal(t, 10.0, rec.Value("score"))
	assert.Equal(t, false, rec.Value("done"))
}

func TestLoadMore_Pages(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, writeWorkbook(t, 12), WithPageSize(5))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, 5, p.RecordCount())
	assert.False(t, p.Exhausted())

	require.NoError(t, p.LoadMore(ctx))
	assert.Equal(t, 10, p.RecordCount())

	require.NoError(t, p.LoadMore(ctx))
	assert.Equal(t, 12, p.RecordCount())
	assert.True(t, p.Exhausted())

	// Later pages use the inferred types too.
	rec, ok := p.RecordByID("row-13")
	require.True(t, ok)
	assert.Equal(t, 110.0, rec.Value("score"))

	require.NoError(t, p.LoadMore(ctx))
	assert.Equal(t, 12, p.RecordCount())
}

func TestLoadMore_Canceled(t *testing.T) {
	p, err := Open(context.Background(), writeWorkbook(t, 8), WithPageSize(2))
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.LoadMore(ctx), context.Canceled)
	assert.Equal(t, 2, p.RecordCount())
}

func TestModifyRecord_Save(t *testing.T) {
	ctx := context.Background()
	path := writeWorkbook(t, 3)
	p, err := Open(ctx, path)
	require.NoError(t, err)

	require.NoError(t, p.ModifyRecord(ctx, "row-2", "notes", "edited"))
	rec, _ := p.RecordByID("row-2")
	assert.Equal(t, "edited", rec.Value("notes"))
	require.NoError(t, p.Save())
	require.NoError(t, p.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	rec, ok := reopened.RecordByID("row-2")
	require.True(t, ok)
	assert.Equal(t, "edited", rec.Value("notes"))
}

func TestModifyRecord_Errors(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, writeWorkbook(t, 2))
	require.NoError(t, err)

	assert.ErrorIs(t, p.ModifyRecord(ctx, "row-99", "name", "x"), grid.ErrRecordNotFound)
	assert.ErrorIs(t, p.ModifyRecord(ctx, "row-2", "nope", "x"), grid.ErrNotEditable)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.ModifyRecord(ctx, "row-2", "name", "x"), ErrClosed)
	assert.ErrorIs(t, p.LoadMore(ctx), ErrClosed)
	assert.NoError(t, p.Close())
}

func TestOpen_MissingSheet(t *testing.T) {
	_, err := Open(context.Background(), writeWorkbook(t, 1), WithSheet("Nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestOpen_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	p, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer p.Close()
	assert.Empty(t, p.Columns())
	assert.Zero(t, p.RecordCount())
	assert.True(t, p.Exhausted())
}

func TestProvider_DrivesGrid(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, writeWorkbook(t, 30), WithPageSize(10))
	require.NoError(t, err)
	defer p.Close()

	g, err := grid.New(p, p.Columns(),
		grid.WithSurface(grid.NewMemorySurface(grid.Rect{W: 600, H: 330})),
		grid.WithPermission(func(grid.Record) bool { return true }),
	)
	require.NoError(t, err)
	defer g.Dispose()

	assert.Equal(t, 10, g.RowCount())
	require.NoError(t, g.LoadMore(ctx))
	assert.Equal(t, 20, g.RowCount())

	// Edits go through the provider's Editor implementation.
	require.NoError(t, g.RequestEdit(ctx, grid.CellPosition{Row: 0, Column: 5}, "via grid"))
	rec, _ := p.RecordByIndex(0)
	assert.Equal(t, "via grid", rec.Value("notes"))
}
