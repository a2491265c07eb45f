package refract

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/chewxy/math32"
)

// DebugPanel is a single keyboard-driven slider. F1 opens and closes it; while it is open
// Up and Down move the value by one step.
type DebugPanel struct {
	label        string
	value        float32
	lo, hi, step float32
	open         bool
	destroyed    bool

	onChange func(value float32)
	logger   *slog.Logger
}

// NewDebugPanel creates a closed panel. onChange runs after every value change.
//
// Parameters:
//   - label: name logged with each change
//   - value: initial value, clamped to [lo, hi]
//   - lo: lowest value
//   - hi: highest value
//   - step: amount one key press moves the value
//   - onChange: change callback, may be nil
//
// Returns:
//   - *DebugPanel: the panel
func NewDebugPanel(label string, value, lo, hi, step float32, onChange func(float32)) *DebugPanel {
	return &DebugPanel{
		label:    label,
		value:    common.Clamp(value, lo, hi),
		lo:       lo,
		hi:       hi,
		step:     step,
		onChange: onChange,
		logger:   slog.With("component", "debug", "control", label),
	}
}

// HandleKey applies a key press and reports whether the panel consumed it.
func (p *DebugPanel) HandleKey(keyCode uint32) bool {
	if p.destroyed {
		return false
	}
	switch keyCode {
	case common.KeyF1:
		p.open = !p.open
		p.logger.Info("panel", "open", p.open, "value", p.value)
		return true
	case common.KeyUp:
		return p.nudge(1)
	case common.KeyDown:
		return p.nudge(-1)
	}
	return false
}

func (p *DebugPanel) nudge(dir float32) bool {
	if !p.open {
		return false
	}
	v := common.Clamp(p.value+dir*p.step, p.lo, p.hi)
	if p.step > 0 {
		// snap to the step grid so repeated presses do not drift
		v = common.Clamp(math32.Round(v/p.step)*p.step, p.lo, p.hi)
	}
	if v == p.value {
		return true
	}
	p.value = v
	p.logger.Info("value changed", "value", v)
	if p.onChange != nil {
		p.onChange(v)
	}
	return true
}

func (p *DebugPanel) Label() string {
	return p.label
}

func (p *DebugPanel) Value() float32 {
	return p.value
}

func (p *DebugPanel) Open() bool {
	return p.open
}

// Destroy closes the panel and drops its callback. Later key presses are ignored.
func (p *DebugPanel) Destroy() {
	p.open = false
	p.destroyed = true
	p.onChange = nil
}
