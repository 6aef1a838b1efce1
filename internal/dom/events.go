package dom

import "golang.org/x/net/html/atom"

// Event types dispatched by the helpers below.
const (
	EventClick  = "click"
	EventInput  = "input"
	EventSubmit = "submit"
)

// Event is a DOM event travelling from its target towards the root.
type Event struct {
	Type string
	// Target is the element the event was dispatched on.
	Target *Element
	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the element's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles a DOM event.
type Listener func(*Event)

type listener struct {
	id        uint64
	eventType string
	fn        Listener
}

// Listen registers fn for events of eventType reaching e, either targeted
// at e or bubbling from a descendant. The returned function removes it.
func (e *Element) Listen(eventType string, fn Listener) (remove func()) {
	d := e.doc
	d.nextID++
	id := d.nextID
	d.listeners[e.node] = append(d.listeners[e.node], listener{id: id, eventType: eventType, fn: fn})

	return func() {
		ls := d.listeners[e.node]
		for i, l := range ls {
			if l.id == id {
				ls = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
		if len(ls) == 0 {
			delete(d.listeners, e.node)
		} else {
			d.listeners[e.node] = ls
		}
	}
}

// Dispatch delivers ev to listeners on e and then on each ancestor.
// It returns false when a listener called PreventDefault.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	for n := e.node; n != nil && !ev.stopped; n = n.Parent {
		ls := e.doc.listeners[n]
		if len(ls) == 0 {
			continue
		}
		ev.CurrentTarget = e.doc.wrap(n)
		for _, l := range append([]listener(nil), ls...) {
			if l.eventType == ev.Type {
				l.fn(ev)
			}
		}
	}
	return !ev.defaultPrevented
}

// Click simulates a user click. Disabled elements ignore clicks. Clicking a
// submit button whose click was not prevented submits its form.
func (e *Element) Click() bool {
	if e.Disabled() {
		return false
	}
	if !e.Dispatch(&Event{Type: EventClick}) {
		return false
	}
	if e.isSubmitButton() {
		if form := e.Closest("form"); form != nil {
			return form.Submit()
		}
	}
	return true
}

// Submit dispatches a submit event on a form element.
func (e *Element) Submit() bool {
	return e.Dispatch(&Event{Type: EventSubmit})
}

// Input simulates the user editing a control: the value is replaced and an
// input event is dispatched.
func (e *Element) Input(value string) bool {
	if e.Disabled() {
		return false
	}
	e.SetValue(value)
	return e.Dispatch(&Event{Type: EventInput})
}

func (e *Element) isSubmitButton() bool {
	switch e.node.DataAtom {
	case atom.Button:
		t, ok := e.Attr("type")
		return !ok || t == "submit"
	case atom.Input:
		t, _ := e.Attr("type")
		return t == "submit"
	}
	return false
}
