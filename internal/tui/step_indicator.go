package tui

import "strings"

// Orientation controls how a step strip is laid out.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

const (
	stepGlyphDone    = "✔"
	stepGlyphPending = "◷"
)

// StepItem is one entry of a step strip. Steps only know done or not done.
type StepItem struct {
	ID        string
	Label     string
	Completed bool
}

// Glyph returns the check or schedule marker for the item.
func (i StepItem) Glyph() string {
	if i.Completed {
		return stepGlyphDone
	}
	return stepGlyphPending
}

// RenderedStep is a step item plus the control bound to it, if any.
type RenderedStep struct {
	StepItem
	Control *Control
}

// StepStrip is the output of RenderSteps.
type StepStrip struct {
	Orientation Orientation
	Items       []RenderedStep
}

// RenderSteps builds a step strip. When onItemClick is nil the items are inert;
// otherwise each item gets a step control that reports its id.
func RenderSteps(items []StepItem, orientation Orientation, onItemClick func(id string)) StepStrip {
	strip := StepStrip{Orientation: orientation, Items: make([]RenderedStep, 0, len(items))}
	for _, item := range items {
		rendered := RenderedStep{StepItem: item}
		if onItemClick != nil {
			id := item.ID
			rendered.Control = &Control{
				Kind:    ControlStep,
				ItemID:  id,
				Label:   item.Label,
				onPress: func() { onItemClick(id) },
			}
		}
		strip.Items = append(strip.Items, rendered)
	}
	return strip
}

// Controls returns the interactive items in order.
func (s StepStrip) Controls() []Control {
	var out []Control
	for _, item := range s.Items {
		if item.Control != nil {
			out = append(out, *item.Control)
		}
	}
	return out
}

// Render draws the strip, highlighting the control whose key matches focus.
func (s StepStrip) Render(focus string) string {
	return s.render(focus, nil)
}

func (s StepStrip) String() string {
	return s.Render("")
}

// render lets callers attach a suffix (such as a sub-step reason) per item.
func (s StepStrip) render(focus string, suffix func(RenderedStep) string) string {
	if len(s.Items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		style := stepPendingStyle
		if item.Completed {
			style = stepDoneStyle
		}
		text := style.Render(item.Glyph()) + " " + item.Label
		if item.Control != nil && focus != "" && item.Control.Key() == focus {
			text = focusMarkStyle.Render("›") + " " + text
		}
		if suffix != nil {
			if extra := suffix(item); extra != "" {
				text += " " + extra
			}
		}
		parts = append(parts, text)
	}
	if s.Orientation == Vertical {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, connectorStyle.Render(" ── "))
}
