package grid

import (
	"fmt"
	"time"
)

// Config holds the tuned constants of the viewport. Changing them changes
// scroll smoothness, not correctness, as long as Validate passes.
type Config struct {
	RowHeight      float32 // Fixed row height in pixels
	Overscan       int     // Rows materialized beyond each viewport edge
	Hysteresis     int     // Rows a window bound may drift before it is moved
	ColumnOverscan int     // Columns materialized beyond each horizontal edge

	EdgeBand           float32       // Width of each auto-scroll edge zone
	HorizontalStep     float32       // Pixels per horizontal auto-scroll tick
	AutoScrollInterval time.Duration // Horizontal auto-scroll tick
	VerticalStep       float32       // Pixels per vertical auto-scroll move

	SettleDelay     time.Duration // Quiet time before the overlay counts as settled
	WheelStep       float32       // Pixels per wheel notch
	DoubleClickTime time.Duration // Max gap between clicks of a double click
}

// DefaultConfig returns the tuned records-body configuration.
func DefaultConfig() Config {
	return Config{
		RowHeight:      33,
		Overscan:       10,
		Hysteresis:     5,
		ColumnOverscan: 0, // Columns change rarely, no extra materialization

		EdgeBand:           100,
		HorizontalStep:     20,
		AutoScrollInterval: 10 * time.Millisecond,
		VerticalStep:       8,

		SettleDelay:     300 * time.Millisecond,
		WheelStep:       30,
		DoubleClickTime: 300 * time.Millisecond,
	}
}

// Validate reports the first unusable setting wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.RowHeight <= 0:
		return fmt.Errorf("%w: row height %v must be positive", ErrInvalidConfig, c.RowHeight)
	case c.Hysteresis < 0:
		return fmt.Errorf("%w: hysteresis %d is negative", ErrInvalidConfig, c.Hysteresis)
	case c.Overscan <= c.Hysteresis:
		return fmt.Errorf("%w: overscan %d must exceed hysteresis %d", ErrInvalidConfig, c.Overscan, c.Hysteresis)
	case c.ColumnOverscan < 0:
		return fmt.Errorf("%w: column overscan %d is negative", ErrInvalidConfig, c.ColumnOverscan)
	case c.EdgeBand < 0:
		return fmt.Errorf("%w: edge band %v is negative", ErrInvalidConfig, c.EdgeBand)
	case c.HorizontalStep <= 0 || c.VerticalStep <= 0:
		return fmt.Errorf("%w: auto-scroll steps must be positive", ErrInvalidConfig)
	case c.AutoScrollInterval <= 0 || c.SettleDelay <= 0:
		return fmt.Errorf("%w: timer intervals must be positive", ErrInvalidConfig)
	}
	return nil
}
