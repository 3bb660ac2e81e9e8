package games

// Game is the canonical catalog record exposed by the service.
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"releaseDate"`
	Genre       string `json:"genre"`
}

// GamePatch carries a partial update. Nil fields keep their stored value.
type GamePatch struct {
	Title       *string `json:"title,omitempty"`
	ReleaseDate *string `json:"releaseDate,omitempty"`
	Genre       *string `json:"genre,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p GamePatch) IsEmpty() bool {
	return p.Title == nil && p.ReleaseDate == nil && p.Genre == nil
}

// Apply returns a copy of g with the patch fields written over it.
func (p GamePatch) Apply(g Game) Game {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.ReleaseDate != nil {
		g.ReleaseDate = *p.ReleaseDate
	}
	if p.Genre != nil {
		g.Genre = *p.Genre
	}
	return g
}
