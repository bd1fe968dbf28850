package game

// Move is one entry of a stored game's history.
type Move struct {
	Turn        int    `json:"turn" bson:"turn"`
	Color       Color  `json:"color" bson:"color"`
	Coordinates NodeID `json:"coordinates" bson:"coordinates"`
	AI          bool   `json:"ai,omitempty" bson:"ai,omitempty"`
}

type MoveRequest struct {
	Move string `json:"move"`
}

type MoveResponse struct {
	Accepted bool     `json:"accepted"`
	Played   []Move   `json:"played"`
	Game     GameView `json:"game"`
}
