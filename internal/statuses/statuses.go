package statuses

const (
	StatusInitiated  = "initiated"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	// StatusZombie marks a stored game where the AI has just moved and the
	// player has not answered yet. The engine never looks at it.
	StatusZombie = "zombie"
)
