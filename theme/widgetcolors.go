package theme

import "github.com/loomterm/loom/cell"

// WidgetColors centralizes the semantic-to-style resolution loom's
// demonstration widgets use, so a widget never looks up a raw semantic
// name itself.
type WidgetColors struct {
	SurfaceBg, SurfaceFg cell.Color
	BaseBg               cell.Color
	TextPrimary          cell.Color
	TextSecondary        cell.Color
	TextMuted            cell.Color
	TextInverse          cell.Color
	SelectionBg          cell.Color
	SelectionFg          cell.Color
	Accent               cell.Color
	BorderDefault        cell.Color
	BorderActive         cell.Color
	BorderFocus          cell.Color
	ActionPrimary        cell.Color
	Caret                cell.Color
}

// CurrentWidgetColors resolves WidgetColors from the active theme. Call
// it on demand (e.g. once per Render) rather than caching, so a Reload
// takes effect immediately.
func CurrentWidgetColors() WidgetColors {
	t := Get()
	return WidgetColors{
		SurfaceBg:     t.GetSemanticColor("bg.surface"),
		SurfaceFg:     t.GetSemanticColor("text.primary"),
		BaseBg:        t.GetSemanticColor("bg.base"),
		TextPrimary:   t.GetSemanticColor("text.primary"),
		TextSecondary: t.GetSemanticColor("text.secondary"),
		TextMuted:     t.GetSemanticColor("text.muted"),
		TextInverse:   t.GetSemanticColor("text.inverse"),
		SelectionBg:   t.GetSemanticColor("selection"),
		SelectionFg:   t.GetSemanticColor("text.primary"),
		Accent:        t.GetSemanticColor("accent"),
		BorderDefault: t.GetSemanticColor("border.default"),
		BorderActive:  t.GetSemanticColor("border.active"),
		BorderFocus:   t.GetSemanticColor("border.focus"),
		ActionPrimary: t.GetSemanticColor("action.primary"),
		Caret:         t.GetSemanticColor("caret"),
	}
}

// Style returns the default surface style: surface background and
// foreground, no attributes.
func (c WidgetColors) Style() cell.Style {
	return cell.DefaultStyle.WithFg(c.SurfaceFg).WithBg(c.SurfaceBg)
}

// SelectionStyle returns the style for a selected row/tab/item.
func (c WidgetColors) SelectionStyle() cell.Style {
	return cell.DefaultStyle.WithFg(c.SelectionFg).WithBg(c.SelectionBg)
}

// BorderStyle returns the style for an unfocused border.
func (c WidgetColors) BorderStyle() cell.Style {
	return cell.DefaultStyle.WithFg(c.BorderDefault).WithBg(c.SurfaceBg)
}

// FocusedBorderStyle returns the style for a focused border.
func (c WidgetColors) FocusedBorderStyle() cell.Style {
	return cell.DefaultStyle.WithFg(c.BorderFocus).WithBg(c.SurfaceBg)
}
