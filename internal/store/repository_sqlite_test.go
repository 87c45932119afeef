package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/models"
)

// newSQLiteStorages opens a migrated SQLite database in a temp dir.
func newSQLiteStorages(t *testing.T) (*DB, *Storages) {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), filepath.Join(t.TempDir(), "inventory.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())

	return db, NewStorages(db, logger.Nop())
}

func createSQLiteAccount(t *testing.T, s *Storages, email string) models.Account {
	t.Helper()

	account, err := s.AccountRepository.Create(context.Background(), models.Account{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.NotZero(t, account.ID)

	return account
}

func createSQLiteItem(t *testing.T, s *Storages, ownerID int64, item models.ItemCreate) models.Item {
	t.Helper()

	created, err := s.ItemRepository.Create(context.Background(), ownerID, item)
	require.NoError(t, err)

	return created
}

func itemNames(items []models.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestSQLite_SearchTextIsCaseInsensitiveSubstring(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")

	notes := "stored in Box12"
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Drill", Room: "Garage", Notes: &notes})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Lamp", Room: "Bedroom"})

	found, err := s.ItemRepository.SearchText(ctx, alice.ID, "box")

	require.NoError(t, err)
	assert.Equal(t, []string{"Drill"}, itemNames(found))
}

func TestSQLite_SearchTextMatchesWildcardsLiterally(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")

	percent := "100% cotton"
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Shirt", Room: "Closet", Notes: &percent})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Spare_part", Room: "Garage"})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Sparexpart", Room: "Garage"})

	found, err := s.ItemRepository.SearchText(ctx, alice.ID, "%")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt"}, itemNames(found))

	found, err = s.ItemRepository.SearchText(ctx, alice.ID, "e_p")
	require.NoError(t, err)
	assert.Equal(t, []string{"Spare_part"}, itemNames(found))
}

func TestSQLite_OwnerIsolation(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")
	bob := createSQLiteAccount(t, s, "b@x.com")

	item := createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Box", Room: "Garage"})

	_, err := s.ItemRepository.Get(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = s.ItemRepository.Delete(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	listed, err := s.ItemRepository.List(ctx, bob.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, listed)

	got, err := s.ItemRepository.Get(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garage", got.Room)
}

func TestSQLite_DeleteReturnsSnapshot(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")

	item := createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Box", Room: "Garage"})

	deleted, err := s.ItemRepository.Delete(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)
	assert.Equal(t, "Box", deleted.Name)

	_, err = s.ItemRepository.Get(ctx, alice.ID, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSQLite_AccountDeleteCascadesToItems(t *testing.T) {
	db, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")
	bob := createSQLiteAccount(t, s, "b@x.com")

	aliceItem := createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Box", Room: "Garage"})
	createSQLiteItem(t, s, bob.ID, models.ItemCreate{Name: "Lamp", Room: "Bedroom"})

	require.NoError(t, s.AccountRepository.Delete(ctx, alice.ID))

	_, err := s.AccountRepository.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = s.ItemRepository.Get(ctx, alice.ID, aliceItem.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	var remaining int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM items").Scan(&remaining))
	assert.Equal(t, 1, remaining)
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	_, s := newSQLiteStorages(t)
	createSQLiteAccount(t, s, "a@x.com")

	_, err := s.AccountRepository.Create(context.Background(), models.Account{
		Email:        "a@x.com",
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSQLite_UpdateAndCounts(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")

	tools := "Tools"
	drill := createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Drill", Room: "Garage", Category: &tools})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Saw", Room: "Garage", Category: &tools})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Lamp", Room: "Bedroom"})

	notes := "cordless"
	updated, err := s.ItemRepository.Update(ctx, alice.ID, drill.ID, models.ItemUpdate{Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "cordless", *updated.Notes)
	assert.Equal(t, "Drill", updated.Name)
	assert.Equal(t, "Garage", updated.Room)

	rooms, err := s.ItemRepository.RoomCounts(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.NamedCount{{Name: "Garage", Count: 2}, {Name: "Bedroom", Count: 1}}, rooms)

	categories, err := s.ItemRepository.CategoryCounts(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.NamedCount{{Name: "Tools", Count: 2}}, categories)
}

func TestSQLite_AttachImageFeedsGallery(t *testing.T) {
	_, s := newSQLiteStorages(t)
	ctx := context.Background()
	alice := createSQLiteAccount(t, s, "a@x.com")

	box := createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Box", Room: "Garage"})
	createSQLiteItem(t, s, alice.ID, models.ItemCreate{Name: "Lamp", Room: "Bedroom"})

	_, err := s.ItemRepository.AttachImage(ctx, alice.ID, box.ID, "front", "/static/uploads/abc.jpg")
	require.NoError(t, err)

	gallery, err := s.ItemRepository.ListWithImages(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, "Box", gallery[0].Name)
	require.NotNil(t, gallery[0].ImagePath)
	assert.Equal(t, "/static/uploads/abc.jpg", *gallery[0].ImagePath)
}
