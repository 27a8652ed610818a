package wizard

import (
	"context"
	"strings"
	"time"

	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/stream"
	"hogwarts.org/internal/system"
)

// Service exposes wizard roster operations and the artifact assignment
// engine.
type Service struct {
	store     Store
	artifacts artifact.Store
	events    *stream.Stream
}

// NewService constructs the wizard service. events may be nil when no
// stream is wired.
func NewService(store Store, artifacts artifact.Store, events *stream.Stream) *Service {
	return &Service{store: store, artifacts: artifacts, events: events}
}

func (s *Service) FindAll(ctx context.Context) ([]Wizard, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) FindByID(ctx context.Context, id int64) (Wizard, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (Wizard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Wizard{}, system.Validation(map[string]string{"name": "name is required"})
	}
	w := Wizard{Name: name}
	if err := s.store.Create(ctx, &w); err != nil {
		return Wizard{}, err
	}
	return w, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (Wizard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Wizard{}, system.Validation(map[string]string{"name": "name is required"})
	}
	w, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Wizard{}, err
	}
	w.Name = name
	if err := s.store.Save(ctx, w); err != nil {
		return Wizard{}, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// AssignArtifact moves an artifact to the given wizard. The artifact is
// resolved before the wizard, so when both are missing the artifact error
// wins. An artifact already owned by the target wizard is left untouched.
// Any previous owner loses the artifact in the same write.
func (s *Service) AssignArtifact(ctx context.Context, wizardID int64, artifactID string) (Wizard, error) {
	a, err := s.artifacts.FindByID(ctx, artifactID)
	if err != nil {
		return Wizard{}, err
	}
	w, err := s.store.FindByID(ctx, wizardID)
	if err != nil {
		return Wizard{}, err
	}
	if w.owns(a.ID) {
		return w, nil
	}

	previousOwner := a.OwnerID
	w.addArtifact(a)
	if err := s.store.Save(ctx, w); err != nil {
		return Wizard{}, err
	}

	if s.events != nil {
		s.events.Publish(stream.OwnershipEvent{
			ArtifactID:   a.ID,
			ArtifactName: a.Name,
			FromWizardID: previousOwner,
			ToWizardID:   w.ID,
			Timestamp:    time.Now().UTC(),
		})
	}
	return w, nil
}
