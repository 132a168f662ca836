package modal

import "fmt"

// Registry keeps at most one dialog open. Opening a registered dialog while
// another is open closes the other one first. The new dialog remembers the
// element focused before the switch, or the closed dialog's focus target when
// focus was inside it.
type Registry struct {
	byID  map[string]*Controller
	order []*Controller
	open  *Controller
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Controller)}
}

// Register adds c. A controller may belong to one registry, and dialog IDs
// must be unique.
func (r *Registry) Register(c *Controller) error {
	if c.registry != nil && c.registry != r {
		return fmt.Errorf("modal %q already belongs to another registry", c.ID())
	}
	if existing, ok := r.byID[c.ID()]; ok {
		if existing == c {
			return nil
		}
		return fmt.Errorf("modal %q already registered", c.ID())
	}
	c.registry = r
	r.byID[c.ID()] = c
	r.order = append(r.order, c)
	if c.IsOpen() && r.open == nil {
		r.open = c
	}
	return nil
}

// Get returns the controller for a dialog ID, or nil.
func (r *Registry) Get(id string) *Controller {
	return r.byID[id]
}

// Controllers returns the registered controllers in registration order.
func (r *Registry) Controllers() []*Controller {
	return r.order
}

// Current returns the open controller, or nil.
func (r *Registry) Current() *Controller {
	return r.open
}

// CloseCurrent closes whichever dialog is open.
func (r *Registry) CloseCurrent() {
	if r.open != nil {
		r.open.Close()
	}
}

func (r *Registry) opening(c *Controller) {
	if r.open != nil && r.open != c {
		r.open.Close()
	}
	r.open = c
}

func (r *Registry) closed(c *Controller) {
	if r.open == c {
		r.open = nil
	}
}
