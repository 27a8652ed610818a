package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"hogwarts.org/internal/chat"
	"hogwarts.org/internal/ids"
	"hogwarts.org/internal/obs"
	"hogwarts.org/internal/system"
)

const summaryInstruction = "Your task is to generate a short summary of a given JSON array in at most 100 words. The summary must include the number of artifacts, each artifact's description, and the ownership information. Don't mention that the summary is from a given JSON array."

// Service exposes artifact catalogue operations. Ownership moves live in
// the wizard package; this service never reassigns owners.
type Service struct {
	store Store
	chat  chat.Client
}

// NewService constructs the artifact service. chatClient may be nil when
// summarization is not configured.
func NewService(store Store, chatClient chat.Client) *Service {
	return &Service{store: store, chat: chatClient}
}

func (s *Service) FindAll(ctx context.Context, limit, offset int) ([]Artifact, error) {
	return s.store.FindAll(ctx, normalizeLimit(limit), max(offset, 0))
}

func (s *Service) FindByID(ctx context.Context, id string) (Artifact, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Artifact{}, err
	}
	obs.CountArtifactView(a.ID)
	return a, nil
}

func (s *Service) FindByCriteria(ctx context.Context, c Criteria, limit, offset int) ([]Artifact, error) {
	return s.store.FindByCriteria(ctx, c, normalizeLimit(limit), max(offset, 0))
}

func (s *Service) Create(ctx context.Context, name, description, imageURL string) (Artifact, error) {
	if err := validateArtifact(name, description, imageURL); err != nil {
		return Artifact{}, err
	}
	a := Artifact{
		ID:          ids.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	if err := s.store.Create(ctx, &a); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

// Update rewrites the descriptive fields. The current owner is preserved.
func (s *Service) Update(ctx context.Context, id, name, description, imageURL string) (Artifact, error) {
	if err := validateArtifact(name, description, imageURL); err != nil {
		return Artifact{}, err
	}
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Artifact{}, err
	}
	a.Name = strings.TrimSpace(name)
	a.Description = strings.TrimSpace(description)
	a.ImageURL = strings.TrimSpace(imageURL)
	if err := s.store.Update(ctx, a); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Summarize asks the chat model for a short brief over every artifact.
func (s *Service) Summarize(ctx context.Context) (string, error) {
	if s.chat == nil {
		return "", errors.New("summarization is not configured")
	}
	artifacts, err := s.store.FindAll(ctx, 0, 0)
	if err != nil {
		return "", err
	}
	views := make([]View, 0, len(artifacts))
	for _, a := range artifacts {
		views = append(views, a.View())
	}
	payload, err := json.Marshal(views)
	if err != nil {
		return "", err
	}
	return s.chat.Generate(ctx, []chat.Message{
		{Role: "system", Content: summaryInstruction},
		{Role: "user", Content: string(payload)},
	})
}

func validateArtifact(name, description, imageURL string) error {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if strings.TrimSpace(description) == "" {
		fieldErrors["description"] = "description is required"
	}
	if strings.TrimSpace(imageURL) == "" {
		fieldErrors["imageUrl"] = "imageUrl is required"
	}
	if len(fieldErrors) > 0 {
		return system.Validation(fieldErrors)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
