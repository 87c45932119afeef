package store

import (
	"context"

	"github.com/MKhiriev/go-home-inventory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists accounts.
type AccountRepository interface {
	// Create inserts a new account and returns it with the server-assigned
	// ID and CreatedAt. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, account models.Account) (models.Account, error)
	// FindByID returns ErrAccountNotFound when no account has the id.
	FindByID(ctx context.Context, id int64) (models.Account, error)
	// FindByEmail matches the email exactly as stored.
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	// Delete removes the account and, through the foreign key, its items.
	Delete(ctx context.Context, id int64) error
}

// ItemRepository persists items. Every method is scoped by ownerID: rows of
// other accounts are never returned, changed or removed, and a foreign item
// is reported exactly like a missing one (ErrItemNotFound).
type ItemRepository interface {
	Create(ctx context.Context, ownerID int64, item models.ItemCreate) (models.Item, error)
	Get(ctx context.Context, ownerID, itemID int64) (models.Item, error)
	List(ctx context.Context, ownerID int64, offset, limit int) ([]models.Item, error)
	ListByRoom(ctx context.Context, ownerID int64, room string) ([]models.Item, error)
	ListByCategory(ctx context.Context, ownerID int64, category string) ([]models.Item, error)
	ListWithImages(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchText(ctx context.Context, ownerID int64, term string) ([]models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, update models.ItemUpdate) (models.Item, error)
	AttachImage(ctx context.Context, ownerID, itemID int64, imageName, locator string) (models.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) (models.Item, error)
	RoomCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error)
	CategoryCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error)
}

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
