package module

import "incidentsaver/internal/services/incidents/domain"

// Ports holds the ports exposed by the incidents module
type Ports struct {
	Events domain.EventPort
	Query  domain.QueryPort
}
