package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/tui/styles"
	"github.com/weblarek/larek/internal/util"
)

// focusSelector matches the elements the user can move focus to.
const focusSelector = "button, input"

// label returns the visible text of a control, falling back to its
// aria-label or name for icon-only buttons.
func label(el *dom.Element) string {
	if text := util.CollapseSpace(el.Text()); text != "" {
		return text
	}
	if v, ok := el.Attr("aria-label"); ok && v != "" {
		return v
	}
	v, _ := el.Attr("name")
	return v
}

// renderer turns a subtree of the document into terminal lines.
type renderer struct {
	focus   *dom.Element
	editing bool
	input   string // textinput view of the control being edited
	width   int    // columns available per line, 0 for no limit
}

func (r renderer) focused(el *dom.Element) bool {
	return r.focus != nil && r.focus.Same(el)
}

func (r renderer) control(el *dom.Element) string {
	switch el.Tag() {
	case "input":
		if r.editing && r.focused(el) {
			return styles.InputFocused.Render("> ") + r.input
		}
		value := el.Value()
		if value == "" {
			placeholder, _ := el.Attr("placeholder")
			value = styles.Muted.Render(placeholder)
		}
		field := "[ " + value + " ]"
		if r.focused(el) {
			return styles.ButtonFocused.Render(field)
		}
		return styles.Text.Render(field)
	default:
		text := "[ " + label(el) + " ]"
		switch {
		case r.focused(el):
			return styles.ButtonFocused.Render(text)
		case el.Disabled():
			return styles.ButtonDisabled.Render(text)
		case el.HasClass("button_alt-active"):
			return styles.ButtonActive.Render("● " + label(el))
		default:
			return styles.Button.Render(text)
		}
	}
}

// lines renders el depth-first. Leaf elements become one line of text;
// controls are drawn as bracketed buttons or fields. Rows of inline
// siblings are joined on one line.
func (r renderer) lines(el *dom.Element) []string {
	if el == nil {
		return nil
	}
	switch el.Tag() {
	case "button", "input":
		return []string{r.control(el)}
	case "img", "template":
		return nil
	}

	children := el.Children()
	if len(children) == 0 {
		text := util.CollapseSpace(el.Text())
		if text == "" {
			return nil
		}
		if strings.HasPrefix(el.Tag(), "h") {
			return []string{styles.Title.Render(text)}
		}
		if el.HasClass("form__errors") {
			return []string{styles.Error.Render(text)}
		}
		return []string{text}
	}

	var out []string
	if inlineRow(el) {
		var parts []string
		for _, c := range children {
			parts = append(parts, r.lines(c)...)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, "  "))
		}
		return out
	}
	for _, c := range children {
		out = append(out, r.lines(c)...)
	}
	return out
}

// inlineRow reports whether el's children are laid out on one line.
func inlineRow(el *dom.Element) bool {
	for _, class := range []string{"card__row", "modal__actions", "order__buttons", "basket__item"} {
		if el.HasClass(class) {
			return true
		}
	}
	return false
}

func (r renderer) render(el *dom.Element) string {
	lines := r.lines(el)
	for i, line := range lines {
		lines[i] = util.TruncateANSI(line, r.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
