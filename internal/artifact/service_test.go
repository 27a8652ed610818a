package artifact

import (
	"context"
	"strings"
	"testing"

	"hogwarts.org/internal/chat"
	"hogwarts.org/internal/system"
)

type fakeChat struct {
	lastMessages []chat.Message
	reply        string
}

func (f *fakeChat) Generate(ctx context.Context, messages []chat.Message) (string, error) {
	f.lastMessages = messages
	return f.reply, nil
}

func seedArtifacts(t *testing.T) (*Service, *MemoryStore, *fakeChat) {
	t.Helper()
	store := NewMemoryStore()
	ai := &fakeChat{reply: "Three artifacts."}
	svc := NewService(store, ai)
	ctx := context.Background()
	for _, spec := range [][3]string{
		{"Deluminator", "A device to remove light sources.", "imageUrl1"},
		{"Invisibility Cloak", "A cloak that renders the wearer invisible.", "imageUrl2"},
		{"Elder Wand", "The most powerful wand in existence.", "imageUrl3"},
	} {
		if _, err := svc.Create(ctx, spec[0], spec[1], spec[2]); err != nil {
			t.Fatalf("seed %s: %v", spec[0], err)
		}
	}
	return svc, store, ai
}

func TestCreateAssignsID(t *testing.T) {
	svc, _, _ := seedArtifacts(t)
	a, err := svc.Create(context.Background(), "Sword of Gryffindor", "A goblin-made sword.", "imageUrl")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(a.ID) != 26 {
		t.Fatalf("id %q is not a ULID", a.ID)
	}
	if a.OwnerID != nil {
		t.Fatal("new artifact must be unowned")
	}
	got, err := svc.FindByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Sword of Gryffindor" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := seedArtifacts(t)
	_, err := svc.Create(context.Background(), "", "", "")
	fieldErrs, ok := system.AsValidation(err)
	if !ok {
		t.Fatalf("got %v, want validation error", err)
	}
	for _, f := range []string{"name", "description", "imageUrl"} {
		if fieldErrs.FieldErrors[f] == "" {
			t.Fatalf("missing field error for %q", f)
		}
	}
}

func TestFindByIDMissing(t *testing.T) {
	svc, _, _ := seedArtifacts(t)
	_, err := svc.FindByID(context.Background(), "no-such-id")
	if !system.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if err.Error() != "Could not find artifact with Id no-such-id :(" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdatePreservesOwner(t *testing.T) {
	svc, store, _ := seedArtifacts(t)
	ctx := context.Background()

	all, err := store.FindAll(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	owner := int64(5)
	if err := store.SetOwner(ctx, all[0].ID, &owner); err != nil {
		t.Fatalf("set owner: %v", err)
	}

	got, err := svc.Update(ctx, all[0].ID, "Renamed", "New description.", "newImageUrl")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.OwnerID == nil || *got.OwnerID != 5 {
		t.Fatalf("owner not preserved: %v", got.OwnerID)
	}
	if got.Name != "Renamed" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestFindByCriteria(t *testing.T) {
	svc, _, _ := seedArtifacts(t)
	ctx := context.Background()

	matches, err := svc.FindByCriteria(ctx, Criteria{Name: "cloak"}, 0, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Invisibility Cloak" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	matches, err = svc.FindByCriteria(ctx, Criteria{Description: "wand"}, 0, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Elder Wand" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestFindAllPaging(t *testing.T) {
	svc, _, _ := seedArtifacts(t)
	ctx := context.Background()

	first, err := svc.FindAll(ctx, 2, 0)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	second, err := svc.FindAll(ctx, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(first) != 2 || len(second) != 1 {
		t.Fatalf("page sizes = %d, %d", len(first), len(second))
	}
	if first[0].ID == second[0].ID {
		t.Fatal("pages overlap")
	}
}

func TestSummarizeSendsCatalogue(t *testing.T) {
	svc, _, ai := seedArtifacts(t)

	got, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got != "Three artifacts." {
		t.Fatalf("summary = %q", got)
	}
	if len(ai.lastMessages) != 2 || ai.lastMessages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", ai.lastMessages)
	}
	if !strings.Contains(ai.lastMessages[1].Content, "Invisibility Cloak") {
		t.Fatalf("catalogue missing from prompt: %s", ai.lastMessages[1].Content)
	}
}

func TestSummarizeUnconfigured(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	if _, err := svc.Summarize(context.Background()); err == nil {
		t.Fatal("expected error without chat client")
	}
}
