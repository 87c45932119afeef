package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/crypto"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/store"
	"github.com/MKhiriev/go-home-inventory/models"
)

// ─────────────────────────────────────────────
// In-memory repositories
// ─────────────────────────────────────────────

// memStore keeps accounts and items in maps and honours the repository
// contracts: owner scoping, unique emails and cascading account deletes.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
	items    map[int64]models.Item
}

func newMemStore() *memStore {
	return &memStore{accounts: map[int64]models.Account{}, items: map[int64]models.Item{}}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memAccounts struct{ *memStore }

func (r memAccounts) Create(_ context.Context, account models.Account) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return models.Account{}, store.ErrEmailAlreadyExists
		}
	}
	account.ID = r.id()
	r.accounts[account.ID] = account
	return account, nil
}

func (r memAccounts) FindByID(_ context.Context, id int64) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	return a, nil
}

func (r memAccounts) FindByEmail(_ context.Context, email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (r memAccounts) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return store.ErrAccountNotFound
	}
	delete(r.accounts, id)
	for itemID, item := range r.items {
		if item.OwnerID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

type memItems struct{ *memStore }

func (r memItems) owned(ownerID int64, keep func(models.Item) bool) []models.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Item{}
	for _, item := range r.items {
		if item.OwnerID == ownerID && keep(item) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b models.Item) int { return int(a.ID - b.ID) })
	return out
}

func (r memItems) Create(_ context.Context, ownerID int64, in models.ItemCreate) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := models.Item{
		ID: r.id(), OwnerID: ownerID, Name: in.Name, Category: in.Category, Room: in.Room,
		Cupboard: in.Cupboard, Shelf: in.Shelf, Loft: in.Loft, InsideItems: in.InsideItems,
		Notes: in.Notes, ImageName: in.ImageName, ImagePath: in.ImagePath, CreatedAt: time.Now().UTC(),
	}
	r.items[item.ID] = item
	return item, nil
}

func (r memItems) Get(_ context.Context, ownerID, itemID int64) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return models.Item{}, store.ErrItemNotFound
	}
	return item, nil
}

func (r memItems) List(_ context.Context, ownerID int64, offset, limit int) ([]models.Item, error) {
	all := r.owned(ownerID, func(models.Item) bool { return true })
	if offset >= len(all) {
		return []models.Item{}, nil
	}
	return all[offset:min(len(all), offset+limit)], nil
}

func (r memItems) ListByRoom(_ context.Context, ownerID int64, room string) ([]models.Item, error) {
	return r.owned(ownerID, func(i models.Item) bool { return i.Room == room }), nil
}

func (r memItems) ListByCategory(_ context.Context, ownerID int64, category string) ([]models.Item, error) {
	return r.owned(ownerID, func(i models.Item) bool { return i.Category != nil && *i.Category == category }), nil
}

func (r memItems) ListWithImages(_ context.Context, ownerID int64) ([]models.Item, error) {
	return r.owned(ownerID, models.Item.HasImage), nil
}

func (r memItems) SearchText(_ context.Context, ownerID int64, term string) ([]models.Item, error) {
	term = strings.ToLower(term)
	return r.owned(ownerID, func(i models.Item) bool {
		for _, field := range []*string{&i.Name, i.Category, &i.Room, i.Cupboard, i.Shelf, i.Notes, i.ImageName} {
			if field != nil && strings.Contains(strings.ToLower(*field), term) {
				return true
			}
		}
		return false
	}), nil
}

func (r memItems) Update(ctx context.Context, ownerID, itemID int64, u models.ItemUpdate) (models.Item, error) {
	item, err := r.Get(ctx, ownerID, itemID)
	if err != nil {
		return models.Item{}, err
	}
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Room != nil {
		item.Room = *u.Room
	}
	for dst, src := range map[**string]*string{
		&item.Category: u.Category, &item.Cupboard: u.Cupboard, &item.Shelf: u.Shelf, &item.Loft: u.Loft,
		&item.InsideItems: u.InsideItems, &item.Notes: u.Notes, &item.ImageName: u.ImageName, &item.ImagePath: u.ImagePath,
	} {
		if src != nil {
			*dst = src
		}
	}
	r.mu.Lock()
	r.items[itemID] = item
	r.mu.Unlock()
	return item, nil
}

func (r memItems) AttachImage(ctx context.Context, ownerID, itemID int64, imageName, locator string) (models.Item, error) {
	return r.Update(ctx, ownerID, itemID, models.ItemUpdate{ImageName: &imageName, ImagePath: &locator})
}

func (r memItems) Delete(ctx context.Context, ownerID, itemID int64) (models.Item, error) {
	item, err := r.Get(ctx, ownerID, itemID)
	if err != nil {
		return models.Item{}, err
	}
	r.mu.Lock()
	delete(r.items, itemID)
	r.mu.Unlock()
	return item, nil
}

func (r memItems) counts(ownerID int64, key func(models.Item) string) []models.NamedCount {
	byName := map[string]int64{}
	for _, item := range r.owned(ownerID, func(models.Item) bool { return true }) {
		if k := key(item); k != "" {
			byName[k]++
		}
	}
	out := []models.NamedCount{}
	for name, count := range byName {
		out = append(out, models.NamedCount{Name: name, Count: count})
	}
	slices.SortFunc(out, func(a, b models.NamedCount) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (r memItems) RoomCounts(_ context.Context, ownerID int64) ([]models.NamedCount, error) {
	return r.counts(ownerID, func(i models.Item) string { return i.Room }), nil
}

func (r memItems) CategoryCounts(_ context.Context, ownerID int64) ([]models.NamedCount, error) {
	return r.counts(ownerID, func(i models.Item) string {
		if i.Category == nil {
			return ""
		}
		return *i.Category
	}), nil
}

// ─────────────────────────────────────────────
// Scenario
// ─────────────────────────────────────────────

// newE2EServer wires real services over the in-memory store and the local
// blob backend.
func newE2EServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.Nop()
	mem := newMemStore()
	storage := testStorage(t)

	app := config.App{TokenSignKey: "e2e-secret", TokenAlgorithm: "HS256", TokenExpireMinutes: 30, Version: "e2e"}

	tokens, err := service.NewTokenService(app, log)
	require.NoError(t, err)
	appInfo, err := service.NewAppInfoService(app, log)
	require.NoError(t, err)
	blobs, err := adapter.NewLocalBlobStore(storage.Files, log)
	require.NoError(t, err)

	accounts := service.NewAccountService(memAccounts{mem}, crypto.NewPasswordHasherWithParams(1, 8*1024, 1, 32), log)
	services := &service.Services{
		TokenService:     tokens,
		IdentityResolver: service.NewIdentityResolver(tokens, accounts, log),
		AccountService:   accounts,
		ItemService:      service.NewItemService(memItems{mem}, blobs, storage.Files, log),
		AppInfoService:   appInfo,
	}

	srv := httptest.NewServer(NewHandler(services, storage, log).Init())
	t.Cleanup(srv.Close)
	return srv
}

type e2eClient struct {
	t     *testing.T
	base  string
	token string
}

func (c *e2eClient) do(method, path, contentType string, body []byte) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, bytes.NewReader(body))
	require.NoError(c.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (c *e2eClient) json(method, path, body string) *http.Response {
	return c.do(method, path, "application/json", []byte(body))
}

// signupAndLogin registers email and returns a client holding its token.
func signupAndLogin(t *testing.T, base, email string) *e2eClient {
	t.Helper()
	anon := &e2eClient{t: t, base: base}

	resp := anon.json(http.MethodPost, "/auth/signup", `{"email":"`+email+`","password":"s3cret pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = anon.json(http.MethodPost, "/auth/login", `{"email":"`+email+`","password":"s3cret pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody[models.TokenResponse](t, resp.Body)
	require.Equal(t, "bearer", token.TokenType)

	return &e2eClient{t: t, base: base, token: token.AccessToken}
}

func TestE2E_RegisterLoginCreateList(t *testing.T) {
	srv := newE2EServer(t)
	alice := signupAndLogin(t, srv.URL, "alice@x.com")

	resp := alice.json(http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@x.com", decodeBody[models.Account](t, resp.Body).Email)

	resp = alice.json(http.MethodPost, "/items/", `{"name":"Cordless drill","room":"Garage","category":"Tools"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	drill := decodeBody[models.Item](t, resp.Body)

	resp = alice.json(http.MethodPost, "/items/", `{"name":"Cookbook","room":"Kitchen","category":"Books"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = alice.json(http.MethodGet, "/items/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeBody[[]models.Item](t, resp.Body)
	require.Len(t, items, 2)
	assert.Equal(t, drill.ID, items[0].ID)

	resp = alice.json(http.MethodGet, "/items/?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cookbook", decodeBody[[]models.Item](t, resp.Body)[0].Name)

	resp = alice.json(http.MethodGet, "/items/?limit=101", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = alice.json(http.MethodGet, "/search/?q=DRILL", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Item](t, resp.Body), 1)

	resp = alice.json(http.MethodGet, "/rooms/list", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []models.NamedCount{{Name: "Garage", Count: 1}, {Name: "Kitchen", Count: 1}}, decodeBody[[]models.NamedCount](t, resp.Body))
}

func TestE2E_OwnerIsolation(t *testing.T) {
	srv := newE2EServer(t)
	alice := signupAndLogin(t, srv.URL, "alice@x.com")
	bob := signupAndLogin(t, srv.URL, "bob@x.com")

	resp := alice.json(http.MethodPost, "/items/", `{"name":"Passport","room":"Study"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	passport := decodeBody[models.Item](t, resp.Body)
	path := "/items/" + itoa(passport.ID)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp = bob.json(method, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
	resp = bob.json(http.MethodPut, path, `{"name":"Mine now"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = bob.json(http.MethodGet, "/items/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]models.Item](t, resp.Body))

	resp = alice.json(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Passport", decodeBody[models.Item](t, resp.Body).Name)
}

func TestE2E_UploadImageAndGallery(t *testing.T) {
	srv := newE2EServer(t)
	alice := signupAndLogin(t, srv.URL, "alice@x.com")

	resp := alice.json(http.MethodPost, "/items/", `{"name":"Lamp","room":"Bedroom"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lamp := decodeBody[models.Item](t, resp.Body)

	body, ct := multipartBody(t, "lamp.PNG", "image/png", []byte("png-bytes"), "")
	resp = alice.do(http.MethodPost, "/items/"+itoa(lamp.ID)+"/upload-image", ct, body.Bytes())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lamp = decodeBody[models.Item](t, resp.Body)

	require.True(t, lamp.HasImage())
	assert.Equal(t, "lamp.PNG", *lamp.ImageName)
	assert.True(t, strings.HasPrefix(*lamp.ImagePath, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(*lamp.ImagePath, ".png"))

	anon := &e2eClient{t: t, base: srv.URL}
	resp = anon.do(http.MethodGet, *lamp.ImagePath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = alice.json(http.MethodGet, "/images/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Item](t, resp.Body), 1)

	resp = alice.json(http.MethodGet, "/search/?mode=image", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Item](t, resp.Body), 1)
}

func TestE2E_DeletedAccountTokenIsRejected(t *testing.T) {
	srv := newE2EServer(t)
	alice := signupAndLogin(t, srv.URL, "alice@x.com")

	resp := alice.json(http.MethodPost, "/items/", `{"name":"Kettle","room":"Kitchen"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = alice.json(http.MethodDelete, "/auth/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = alice.json(http.MethodGet, "/items/", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the email is free again
	again := signupAndLogin(t, srv.URL, "alice@x.com")
	resp = again.json(http.MethodGet, "/items/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]models.Item](t, resp.Body))
}

func TestE2E_DuplicateSignupAndBadLogin(t *testing.T) {
	srv := newE2EServer(t)
	signupAndLogin(t, srv.URL, "alice@x.com")
	anon := &e2eClient{t: t, base: srv.URL}

	resp := anon.json(http.MethodPost, "/auth/signup", `{"email":"alice@x.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	unknown := anon.json(http.MethodPost, "/auth/login", `{"email":"nobody@x.com","password":"s3cret pass"}`)
	wrong := anon.json(http.MethodPost, "/auth/login", `{"email":"alice@x.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	assert.Equal(t, decodeBody[models.ErrorResponse](t, unknown.Body), decodeBody[models.ErrorResponse](t, wrong.Body))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
