package session

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"shotwall/internal/models"
)

// PanelKind discriminates the single secondary-view slot.
type PanelKind int

const (
	PanelClosed PanelKind = iota
	PanelShot
	PanelForm
)

// FormKind selects which form the panel shows.
type FormKind string

const (
	FormCreate FormKind = "create"
	FormAuth   FormKind = "auth"
)

// PanelState is a tagged union: Closed, ShowingShot(snapshot) or
// ShowingForm(kind). It is derived from the URL query string, never the
// primary store.
type PanelState struct {
	Kind PanelKind
	Shot *models.Shot
	Form FormKind
}

func ClosedPanel() PanelState { return PanelState{Kind: PanelClosed} }

func ShotPanel(shot *models.Shot) PanelState { return PanelState{Kind: PanelShot, Shot: shot} }

func FormPanel(kind FormKind) PanelState { return PanelState{Kind: PanelForm, Form: kind} }

// equivalent compares states by discriminant and identity, not by snapshot
// contents, so reconciliation stays idempotent.
func (s PanelState) equivalent(other PanelState) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case PanelShot:
		return s.Shot != nil && other.Shot != nil && s.Shot.ShotID == other.Shot.ShotID
	case PanelForm:
		return s.Form == other.Form
	}
	return true
}

// PanelController owns the one secondary-view slot shared by every page
// component and keeps it bijective with the shot/modal query parameters.
// Exactly one writer mutates it; readers receive it as a collaborator.
type PanelController struct {
	gw     Gateway
	notify Notifier

	// OnURLChange receives the full query string after Open or Close
	// rewrites the shot/modal pair. Reconciliation never calls it: the URL
	// is its input, not its output.
	OnURLChange func(url.Values)

	mu        sync.Mutex
	state     PanelState
	params    url.Values
	pendingID int64
}

func NewPanelController(gw Gateway, notify Notifier) *PanelController {
	return &PanelController{
		gw:     gw,
		notify: notify,
		state:  ClosedPanel(),
		params: url.Values{},
	}
}

// Open shows a shot or a form and writes the corresponding query parameter,
// clearing the other one: at most one of shot/modal may be present.
func (c *PanelController) Open(state PanelState) {
	if state.Kind == PanelClosed {
		c.Close()
		return
	}

	c.mu.Lock()
	if c.state.equivalent(state) {
		c.mu.Unlock()
		return
	}
	c.state = state
	c.pendingID = 0

	c.params.Del(ParamShot)
	c.params.Del(ParamModal)
	switch state.Kind {
	case PanelShot:
		c.params.Set(ParamShot, strconv.FormatInt(state.Shot.ShotID, 10))
	case PanelForm:
		c.params.Set(ParamModal, string(state.Form))
	}
	params := cloneValues(c.params)
	c.mu.Unlock()

	c.emitURL(params)
}

// Close empties the slot and strips both parameters from the URL.
func (c *PanelController) Close() {
	c.mu.Lock()
	alreadyClosed := c.state.Kind == PanelClosed
	c.state = ClosedPanel()
	c.pendingID = 0
	c.params.Del(ParamShot)
	c.params.Del(ParamModal)
	params := cloneValues(c.params)
	c.mu.Unlock()

	if !alreadyClosed {
		c.emitURL(params)
	}
}

// ShotLookup resolves a shot id against the locally loaded feed buffer.
type ShotLookup func(shotID int64) (*models.Shot, bool)

// ReconcileFromURL is called on every route or query change and brings the
// panel in line with the URL. It is idempotent: repeated calls with the
// same parameters cause no transition and at most one fetch-by-id overall.
// Failures become notices and a Closed panel; nothing escapes this boundary.
func (c *PanelController) ReconcileFromURL(ctx context.Context, params url.Values, lookup ShotLookup, signedIn bool) {
	c.mu.Lock()
	c.params = cloneValues(params)
	c.mu.Unlock()

	if raw := params.Get(ParamShot); raw != "" {
		c.reconcileShot(ctx, raw, lookup)
		return
	}

	if raw := params.Get(ParamModal); raw != "" {
		c.reconcileForm(raw, signedIn)
		return
	}

	c.transitionTo(ClosedPanel())
}

func (c *PanelController) reconcileShot(ctx context.Context, raw string, lookup ShotLookup) {
	shotID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.transitionTo(ClosedPanel())
		c.notify.error(fmt.Sprintf("invalid shot reference %q", raw))
		return
	}

	c.mu.Lock()
	if c.state.Kind == PanelShot && c.state.Shot != nil && c.state.Shot.ShotID == shotID {
		// Returning to the shot already shown supersedes any fetch still
		// in flight for another id.
		c.pendingID = 0
		c.mu.Unlock()
		return
	}
	if c.pendingID == shotID {
		// A fetch for this id is already in flight.
		c.mu.Unlock()
		return
	}

	if lookup != nil {
		if shot, ok := lookup(shotID); ok {
			// Buffered snapshot: open synchronously, no network trip.
			c.state = ShotPanel(shot)
			c.pendingID = 0
			c.mu.Unlock()
			return
		}
	}

	c.pendingID = shotID
	c.mu.Unlock()

	shot, err := c.gw.FetchShot(ctx, shotID)

	c.mu.Lock()
	if c.pendingID != shotID {
		// Superseded by a navigation that happened while fetching.
		c.mu.Unlock()
		return
	}
	c.pendingID = 0
	if err != nil {
		c.state = ClosedPanel()
		c.mu.Unlock()
		c.notify.error(fmt.Sprintf("shot %d is not available", shotID))
		return
	}
	c.state = ShotPanel(shot)
	c.mu.Unlock()
}

func (c *PanelController) reconcileForm(raw string, signedIn bool) {
	kind := FormKind(raw)

	switch kind {
	case FormCreate:
		if !signedIn {
			// The submission form requires an identity.
			c.transitionTo(ClosedPanel())
			return
		}
	case FormAuth:
	default:
		c.transitionTo(ClosedPanel())
		return
	}

	c.transitionTo(FormPanel(kind))
}

// transitionTo applies a state if it differs from the current one. It never
// writes the URL. Any pending fetch is superseded even when the state does
// not change, so a late response cannot reopen an abandoned view.
func (c *PanelController) transitionTo(state PanelState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingID = 0
	if c.state.equivalent(state) {
		return
	}
	c.state = state
}

func (c *PanelController) State() PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *PanelController) emitURL(params url.Values) {
	if c.OnURLChange != nil {
		c.OnURLChange(params)
	}
}

func cloneValues(params url.Values) url.Values {
	out := url.Values{}
	for key, values := range params {
		for _, value := range values {
			out.Add(key, value)
		}
	}
	return out
}
