package moderator

import "context"

// Repository persists moderator registrations.
type Repository interface {
	Create(ctx context.Context, m *Moderator) error
	GetByID(ctx context.Context, id ModeratorID) (*Moderator, error)
	GetByName(ctx context.Context, name string) (*Moderator, error)
	List(ctx context.Context, limit, offset int) ([]*Moderator, int, error)
	Update(ctx context.Context, m *Moderator) error
	Delete(ctx context.Context, id ModeratorID) error
	GetActiveCount(ctx context.Context) (int, error)
	Exists(ctx context.Context, id ModeratorID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
