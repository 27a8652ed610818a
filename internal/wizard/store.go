package wizard

import "context"

// Store persists wizards. Reads return the wizard with its artifacts
// loaded; lookups for unknown ids return *system.NotFoundError.
type Store interface {
	FindAll(ctx context.Context) ([]Wizard, error)
	FindByID(ctx context.Context, id int64) (Wizard, error)
	Create(ctx context.Context, w *Wizard) error
	// Save persists the wizard's name and claims ownership of every
	// artifact in w.Artifacts in a single atomic write. Because an
	// artifact carries exactly one owner reference, claiming it also
	// severs any previous owner.
	Save(ctx context.Context, w Wizard) error
	// Delete removes the wizard, disowning its artifacts first.
	Delete(ctx context.Context, id int64) error
}
