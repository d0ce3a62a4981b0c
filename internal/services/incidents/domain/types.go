// Package domain holds incident capture types independent of transport or storage
package domain

import (
	"time"

	"incidentsaver/internal/core/incident"
	perr "incidentsaver/internal/platform/errors"
)

// Action is what the user asked to do with a selection
type Action string

const (
	// ActionSetIncident makes the selection the current incident number
	ActionSetIncident Action = "set_incident"

	// ActionSetOccurrence stamps when the incident started
	ActionSetOccurrence Action = "set_occurrence"

	// ActionSetDetection stamps when the incident was noticed
	ActionSetDetection Action = "set_detection"

	// ActionSetResolve stamps when the incident was resolved
	ActionSetResolve Action = "set_resolve"
)

// Actions lists every accepted action in menu order
var Actions = []Action{ActionSetIncident, ActionSetOccurrence, ActionSetDetection, ActionSetResolve}

// Field returns the record field a timestamp action writes, or "" for set_incident and unknown actions
func (a Action) Field() string {
	switch a {
	case ActionSetOccurrence:
		return incident.FieldOccurrence
	case ActionSetDetection:
		return incident.FieldDetection
	case ActionSetResolve:
		return incident.FieldResolve
	}
	return ""
}

// Valid reports whether a is one of Actions
func (a Action) Valid() bool {
	for _, x := range Actions {
		if a == x {
			return true
		}
	}
	return false
}

// Result describes what Handle did with one event.
// Dropped events carry the reason code and are not errors
type Result struct {
	Applied  bool             `json:"applied"`
	Action   Action           `json:"action"`
	Code     perr.ErrorCode   `json:"code,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Incident string           `json:"incident,omitempty"`
	Matcher  string           `json:"matcher,omitempty"`
	Record   *incident.Record `json:"record,omitempty"`
}

// Dropped builds the result for an ignored event
func Dropped(a Action, code perr.ErrorCode) Result {
	return Result{Action: a, Code: code, Reason: code.String()}
}

// Capture is one applied event as written to the ledger
type Capture struct {
	ID         string
	ReceivedAt time.Time
	Action     Action
	Incident   string
	Selection  string
	Value      string // ISO timestamp for stamps, the number for set_incident
	Matcher    string
}
