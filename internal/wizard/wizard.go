// Package wizard holds the wizard roster and the single-owner artifact
// assignment rules.
package wizard

import "hogwarts.org/internal/artifact"

// Wizard is a roster entry together with the artifacts it currently owns.
type Wizard struct {
	ID        int64
	Name      string
	Artifacts []artifact.Artifact
}

// View is the JSON shape served to clients.
type View struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	NumberOfArtifacts int             `json:"numberOfArtifacts"`
	Artifacts         []artifact.View `json:"artifacts"`
}

func (w Wizard) View() View {
	views := make([]artifact.View, 0, len(w.Artifacts))
	for _, a := range w.Artifacts {
		views = append(views, a.View())
	}
	return View{
		ID:                w.ID,
		Name:              w.Name,
		NumberOfArtifacts: len(w.Artifacts),
		Artifacts:         views,
	}
}

// addArtifact takes ownership of a, pointing its owner reference back at w.
func (w *Wizard) addArtifact(a artifact.Artifact) {
	a.OwnerID = &w.ID
	w.Artifacts = append(w.Artifacts, a)
}

func (w *Wizard) owns(id string) bool {
	for _, a := range w.Artifacts {
		if a.ID == id {
			return true
		}
	}
	return false
}
