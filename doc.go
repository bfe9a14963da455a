/*
Package grid provides the viewport core of a virtualized, selectable,
spreadsheet-like records body.

# Overview

A Grid shows a DataProvider of any size on a scrollable Surface while only
materializing the rows and columns near the viewport. It owns one selection
state machine, keeps an overlay scrollbar in sync with the surface, and
auto-scrolls while a range is dragged toward an edge. The host supplies
input events and draws whatever Rows and VisibleColumns report; everything
else is internal.

# Quick Start

	// Setup
	surface := grid.NewMemorySurface(grid.Rect{W: 1280, H: 720})
	overlay := grid.NewMemoryScrollbar()
	clock := grid.NewFrameClock()
	g, err := grid.New(provider, columns,
	    grid.WithSurface(surface),
	    grid.WithOverlay(overlay),
	    grid.WithScheduler(clock),
	    grid.WithPermission(func(grid.Record) bool { return true }),
	)
	if err != nil {
	    return err
	}
	defer g.Dispose()

	g.Subscribe(grid.TopicSelectionChanged, func(e grid.Event) {
	    ev := e.(grid.SelectionChanged)
	    log.Println(ev.Previous.Kind, "->", ev.Current.Kind)
	})

	// Frame loop
	for !window.ShouldClose() {
	    input := adapter.Update()
	    clock.Advance(frameDelta)
	    g.HandleInput(input)
	    g.Render(renderer)
	    window.SwapBuffers()
	}

# Windowing

Rows have a fixed height. The materialized band is the visible rows plus
Config.Overscan rows on each side. On scroll a bound only moves when it
drifted more than Config.Hysteresis rows, or when it is near the first or
last row; since the overscan exceeds the hysteresis no gap is ever visible.
The rows outside the band are represented by two spacers so the scrollable
height always equals rowCount * rowHeight:

	upper, lower := g.Spacers()

Columns have variable widths. A leading run of frozen columns is always
materialized; the rest are windowed by cumulative width.

# Selection

The selection is None, Cell or Range. A press selects a cell; dragging with
the button held, or a shift-press, grows an uncommitted Range that is
committed on release. Keyboard moves and extensions scroll the focused cell
into view; pointer changes never scroll. Every transition is published as
SelectionChanged on the grid's own Bus.

# Keyboard Shortcuts Reference

	Arrows / Tab     Move the focused cell
	Shift+Arrows     Extend the range from the anchor
	Shift+Tab        Move left
	PgUp / PgDn      Move one page of rows
	Home / End       First / last column
	Ctrl+Home/End    First / last row
	Shift+Home/End   Extend to first / last column
	Enter            Open the editor of the focused cell
	Esc              Select none
	Ctrl+A           Select all
	Ctrl+C           Copy the selection as TSV

# Lifecycle

Timers run on the Scheduler passed with WithScheduler, by default a
FrameClock the host advances once per frame, so every callback is a
synchronous step of the host loop. Dispose cancels them, closes the bus and
hands the scroll position to the WithScrollStore callback.
*/
package grid
