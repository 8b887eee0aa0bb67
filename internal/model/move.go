package model

// WSMove is a move command as received from a client.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// SimpleMove is a committed half-move as recorded in the history and echoed
// back to clients.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
