// Package matchapi provides structures and handlers for creating and
// following arena matches over HTTP.
package matchapi

// PlayerSpecRequest describes one requested participant of a match.
type PlayerSpecRequest struct {
	Name  string `json:"name" binding:"required"`
	Agent string `json:"agent" binding:"required"`
	Team  string `json:"team"`
}

// CreateMatchRequest represents a request to start a new match.
type CreateMatchRequest struct {
	Preset string              `json:"preset" binding:"required"`
	Lineup []PlayerSpecRequest `json:"lineup" binding:"required"`
}

// PresetsResponse lists the available match presets and built-in agents.
type PresetsResponse struct {
	Presets []string `json:"presets"`
	Agents  []string `json:"agents"`
}
