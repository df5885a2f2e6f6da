package metrics

// Common metric attribute keys.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrSource = "source"
	AttrState  = "game_state"
)
