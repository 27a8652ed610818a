// Package artifact holds the artifact catalogue: magical items that may be
// owned by at most one wizard at a time.
package artifact

// Artifact is a single catalogued item. OwnerID is nil while the artifact
// is unassigned.
type Artifact struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	OwnerID     *int64
}

// View is the JSON shape served to clients.
type View struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	OwnerID     *int64 `json:"ownerId,omitempty"`
}

func (a Artifact) View() View {
	return View{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		OwnerID:     a.OwnerID,
	}
}

// Criteria filters a search. Zero-value fields match everything; Name and
// Description match as case-insensitive substrings.
type Criteria struct {
	Name        string
	Description string
}
