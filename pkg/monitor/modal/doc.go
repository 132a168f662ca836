// Package modal controls and renders dialogs over an element tree.
//
// A Controller owns one dialog element. Open records the focused element,
// shows the dialog, focuses it and activates a focus trap over its
// descendants; Close hides it and puts focus back. Escape closes the open
// dialog through a document-level listener that exists only while the
// dialog is open.
//
// # Quick Start
//
//	dialog := element.New(element.RoleDialog, "modal-ada").Append(
//	    element.New(element.RoleText, "").AddClass(modal.TitleClass).WithText("Ada"),
//	    element.New(element.RoleButton, "close-ada").AddClass(modal.CloseClass).WithText(" Close "),
//	)
//	root.Append(dialog)
//	doc := element.NewDocument(root)
//
//	registry := modal.NewRegistry()
//	c, err := modal.NewController(doc, dialog)
//	if err != nil {
//	    return err
//	}
//	registry.Register(c)
//	c.Open()
//
//	// In View():
//	r := modal.Render(doc, dialog, modal.RenderOptions{Width: 60, ShowHints: true})
//
// # Single open dialog
//
// Controllers registered with the same Registry are mutually exclusive:
// opening one closes whichever other dialog is open first.
//
// # Hover close
//
// HoverTimer schedules a delayed close with tea.Tick. Scheduling again or
// calling Cancel invalidates the earlier tick; only the latest one Fires.
//
// # Rendering
//
// Dialog children render top to bottom, separated by a blank line:
//
//   - text with class "title" or "subtitle" - headings
//   - text with class "markdown" - pre-rendered, pre-wrapped text
//   - a group with class "links" - one link per line, each a tab stop
//   - a group with class "buttons", or a lone button - a button row
//   - any other text - wrapped body text
//
// Regions in the Rendered result are measured from the output and are used
// to build the mouse hit map.
package modal
