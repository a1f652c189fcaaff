package layout

import (
	"errors"
	"fmt"

	"github.com/pdiddy/notepacket/pkg/types"
)

// ErrOutOfRange is returned when a layout value falls outside its editor range.
var ErrOutOfRange = errors.New("layout value out of range")

type bound struct {
	key      string
	value    float64
	min, max float64
}

// Validate checks every layout field against the ranges the layout editor
// accepts. All violations are reported together.
func Validate(l types.Layout) error {
	bounds := []bound{
		{"target_w", l.TargetW, 100, 800},
		{"target_h", l.TargetH, 50, 600},
		{"h_margin", l.HMargin, -200, 200},
		{"v_margin", l.VMargin, -200, 200},
		{"x_offset1", l.XOffset1, -200, 200},
		{"y_offset1", l.YOffset1, -200, 200},
		{"x_offset2", l.XOffset2, -200, 200},
		{"y_offset2", l.YOffset2, -200, 200},
	}
	var errs []error
	for _, b := range bounds {
		if b.value < b.min || b.value > b.max {
			errs = append(errs, fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, b.key, b.value, b.min, b.max))
		}
	}
	return errors.Join(errs...)
}
