// FilePath: internal/navigation/controller.go
package navigation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// EventChanged is emitted with the session id and the new models.NavState
// after every change.
const EventChanged = "nav.changed"

// ChangeHandler receives state changes in the order they were applied.
// Handlers run synchronously and must not call back into the Controller.
type ChangeHandler func(session string, state models.NavState)

// Controller owns the NavState of one operator session. Events are applied
// one at a time in arrival order.
type Controller struct {
	mu sync.Mutex
	// emitMu is taken before mu is released so notifications keep the
	// order in which states were committed.
	emitMu  sync.Mutex
	state   models.NavState
	session string
	dir     Directory
	events  *nuts.EventEmitter
}

func NewController(dir Directory) *Controller {
	return &Controller{
		state:   models.InitialNavState(),
		session: uuid.NewString(),
		dir:     dir,
		events:  nuts.NewEventEmitter(),
	}
}

// Dispatch applies evt and returns the resulting state. A rejected event
// leaves the state untouched; an invariant violation is logged and the
// session falls back to the initial overview.
func (c *Controller) Dispatch(evt models.Event) (models.NavState, error) {
	c.mu.Lock()
	prev := c.state
	next, err := Transition(prev, evt, c.dir)
	if err != nil && !errors.IsInvalidState(err) {
		c.mu.Unlock()
		return prev, err
	}
	if err != nil {
		nuts.L.Warnf("[Navigation] Session %s: %v; resetting to %s", c.session, err, next.View)
	}
	c.state = next
	c.commit(next != prev, next, c.session)
	return next, err
}

// commit releases mu and notifies listeners when changed is set. It must be
// called with mu held.
func (c *Controller) commit(changed bool, next models.NavState, session string) {
	if !changed {
		c.mu.Unlock()
		return
	}
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if err := c.events.Emit(EventChanged, session, next); err != nil {
		nuts.L.Errorf("[Navigation] Session %s: failed to notify %s: %v", session, next.View, err)
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() models.NavState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID identifies the session this controller belongs to.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Reset tears the session down and starts a fresh one in the initial state.
// Listeners are always notified since the session id changes.
func (c *Controller) Reset() models.NavState {
	c.mu.Lock()
	c.state = models.InitialNavState()
	c.session = uuid.NewString()
	next, session := c.state, c.session
	nuts.L.Infof("[Navigation] Session reset, new session %s", session)
	c.commit(true, next, session)
	return next
}

// OnChange registers handler under name. Registering the same name again
// replaces the previous handler.
func (c *Controller) OnChange(name string, handler ChangeHandler) error {
	if _, err := c.events.On(EventChanged, name, (func(string, models.NavState))(handler)); err != nil {
		return fmt.Errorf("failed to register %s listener: %w", name, err)
	}
	return nil
}
