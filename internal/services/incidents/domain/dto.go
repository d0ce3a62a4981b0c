package domain

import "incidentsaver/internal/core/incident"

// EventInput is one context-menu click
type EventInput struct {
	Action    Action `json:"action"    validate:"required,incident_action" example:"set_detection"`
	Selection string `json:"selection" validate:"max=4096" example:"Oct 30, 2025 12:11 PM"`
}

// ExtractInput asks for a parse preview without touching the store
type ExtractInput struct {
	Text string `json:"text" validate:"notblank,max=4096" example:"Thu 10/30/2025 12:11 PM"`
}

// ExtractOutput is the parse preview
type ExtractOutput struct {
	OK      bool   `json:"ok"`
	At      string `json:"at,omitempty" example:"2025-10-30T17:11:00.000Z"`
	Local   string `json:"local,omitempty" example:"10/30/25 12:11"`
	Matcher string `json:"matcher,omitempty" example:"numeric-date"`
	Input   string `json:"input,omitempty"`
}

// Display holds the human strings a table view shows
type Display struct {
	Occurrence string `json:"occurrence" example:"10/30/25 12:00"`
	Detection  string `json:"detection" example:"10/30/25 12:15"`
	Resolve    string `json:"resolve" example:"-"`
	Mttd       string `json:"mttd" example:"15m 0s"`
	Mttr       string `json:"mttr" example:"-"`
}

// ListItem is a stored record plus its display strings
type ListItem struct {
	incident.Record
	Display Display `json:"display"`
}

// CurrentOutput names the incident timestamp actions apply to
type CurrentOutput struct {
	Incident string `json:"incident" example:"INC-42"`
}
