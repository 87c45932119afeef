package service

import (
	"context"

	"github.com/MKhiriev/go-home-inventory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue signs a token for subject (an account email).
	Issue(ctx context.Context, subject string) (models.Token, error)

	// Verify returns the subject of a valid token. On failure the error
	// wraps ErrTokenRejected and exactly one reason: ErrTokenMalformed,
	// ErrTokenSignatureInvalid, ErrTokenExpired or ErrTokenMissingSubject.
	Verify(ctx context.Context, rawToken string) (string, error)
}

// IdentityResolver turns a bearer token into the principal of a request.
type IdentityResolver interface {
	// Resolve returns ErrUnauthorized for every token or account problem and
	// an ErrUnavailable error when the account store cannot be reached.
	Resolve(ctx context.Context, rawToken string) (models.Principal, error)
}

// AccountService registers and authenticates accounts.
type AccountService interface {
	Register(ctx context.Context, req models.AccountCreate) (models.Account, error)
	Authenticate(ctx context.Context, email, password string) (models.Account, error)
	FindByID(ctx context.Context, id int64) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// ItemService validates inventory requests and runs them against the
// caller's own items. ownerID is always the authenticated account.
type ItemService interface {
	Create(ctx context.Context, ownerID int64, item models.ItemCreate) (models.Item, error)
	Get(ctx context.Context, ownerID, itemID int64) (models.Item, error)
	List(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.Item, error)
	ListByRoom(ctx context.Context, ownerID int64, room string) ([]models.Item, error)
	ListByCategory(ctx context.Context, ownerID int64, category string) ([]models.Item, error)
	Search(ctx context.Context, ownerID int64, req models.SearchRequest) ([]models.Item, error)
	Gallery(ctx context.Context, ownerID int64) ([]models.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, update models.ItemUpdate) (models.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) (models.Item, error)
	UploadImage(ctx context.Context, ownerID, itemID int64, upload models.ImageUpload) (models.Item, error)
	RoomCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error)
	CategoryCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error)
}

// AppInfoService exposes build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
