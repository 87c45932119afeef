package http

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/validators"
	"github.com/MKhiriev/go-home-inventory/models"
)

func strPtr(s string) *string { return &s }

// withURLParams attaches chi route parameters to r.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ─────────────────────────────────────────────
// create / get / update / delete
// ─────────────────────────────────────────────

func TestCreateItem(t *testing.T) {
	h, m := newTestHandler(t)
	want := models.ItemCreate{Name: "Drill", Room: "Garage", Category: strPtr("Tools")}

	m.items.EXPECT().Create(gomock.Any(), testAccountID, want).
		Return(models.Item{ID: 10, OwnerID: testAccountID, Name: "Drill", Room: "Garage", Category: strPtr("Tools"), CreatedAt: registeredAt}, nil)

	rec := serveAsOwner(h.createItem, httptest.NewRequest(http.MethodPost, "/items/", strings.NewReader(`{"name":"Drill","room":"Garage","category":"Tools"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	item := decodeBody[map[string]any](t, rec.Body)
	assert.Equal(t, float64(10), item["id"])
	assert.Equal(t, "Drill", item["name"])
	assert.NotContains(t, item, "owner_id")
	assert.Contains(t, item, "image_path")
}

func TestCreateItem_Validation(t *testing.T) {
	h, m := newTestHandler(t)

	m.items.EXPECT().Create(gomock.Any(), testAccountID, gomock.Any()).
		Return(models.Item{}, fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrBlankRoom))

	rec := serveAsOwner(h.createItem, httptest.NewRequest(http.MethodPost, "/items/", strings.NewReader(`{"name":"Drill"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, validators.ErrBlankRoom.Error(), decodeBody[models.ErrorResponse](t, rec.Body).Detail)
}

func TestGetItem(t *testing.T) {
	tests := []struct {
		name       string
		itemID     string
		setup      func(m testMocks)
		wantStatus int
	}{
		{
			name:   "found",
			itemID: "10",
			setup: func(m testMocks) {
				m.items.EXPECT().Get(gomock.Any(), testAccountID, int64(10)).Return(models.Item{ID: 10, Name: "Drill"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "foreign or missing",
			itemID: "11",
			setup: func(m testMocks) {
				m.items.EXPECT().Get(gomock.Any(), testAccountID, int64(11)).Return(models.Item{}, service.ErrItemNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not an integer",
			itemID:     "abc",
			setup:      func(testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero",
			itemID:     "0",
			setup:      func(testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative",
			itemID:     "-3",
			setup:      func(testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			tt.setup(m)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/items/"+tt.itemID, nil), "itemID", tt.itemID)
			rec := serveAsOwner(h.getItem, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdateItem_PartialBody(t *testing.T) {
	h, m := newTestHandler(t)

	m.items.EXPECT().Update(gomock.Any(), testAccountID, int64(10), models.ItemUpdate{Notes: strPtr("top shelf")}).
		Return(models.Item{ID: 10, Name: "Drill", Notes: strPtr("top shelf")}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodPut, "/items/10", strings.NewReader(`{"notes":"top shelf"}`)), "itemID", "10")
	rec := serveAsOwner(h.updateItem, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "top shelf", decodeBody[map[string]any](t, rec.Body)["notes"])
}

func TestDeleteItem(t *testing.T) {
	h, m := newTestHandler(t)

	m.items.EXPECT().Delete(gomock.Any(), testAccountID, int64(10)).Return(models.Item{ID: 10}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/items/10", nil), "itemID", "10")
	rec := serveAsOwner(h.deleteItem, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Item deleted"}`, rec.Body.String())
}

// ─────────────────────────────────────────────
// listings
// ─────────────────────────────────────────────

func TestListItems_Query(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   *models.PageRequest
		wantStatus int
	}{
		{name: "no params", query: "", wantPage: &models.PageRequest{}, wantStatus: http.StatusOK},
		{name: "skip and limit", query: "?skip=5&limit=2", wantPage: &models.PageRequest{Offset: 5, Limit: 2}, wantStatus: http.StatusOK},
		{name: "bad skip", query: "?skip=x", wantStatus: http.StatusBadRequest},
		{name: "bad limit", query: "?limit=1.5", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.wantPage != nil {
				m.items.EXPECT().List(gomock.Any(), testAccountID, *tt.wantPage).Return(nil, nil)
			}

			rec := serveAsOwner(h.listItems, httptest.NewRequest(http.MethodGet, "/items/"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				// empty listings are an array, never null
				assert.JSONEq(t, `[]`, rec.Body.String())
			}
		})
	}
}

func TestItemsByRoomAndCategory(t *testing.T) {
	h, m := newTestHandler(t)

	m.items.EXPECT().ListByRoom(gomock.Any(), testAccountID, "Living Room").Return([]models.Item{{ID: 1}}, nil)
	m.items.EXPECT().ListByCategory(gomock.Any(), testAccountID, "Tools").Return([]models.Item{{ID: 2}, {ID: 3}}, nil)

	rec := serveAsOwner(h.itemsByRoom, withURLParams(httptest.NewRequest(http.MethodGet, "/items/by-room/Living%20Room", nil), "room", "Living Room"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Item](t, rec.Body), 1)

	rec = serveAsOwner(h.itemsByCategory, withURLParams(httptest.NewRequest(http.MethodGet, "/items/by-category/Tools", nil), "category", "Tools"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Item](t, rec.Body), 2)
}

// ─────────────────────────────────────────────
// upload-image
// ─────────────────────────────────────────────

// multipartBody builds a multipart form with an optional file part and
// optional image_name field.
func multipartBody(t *testing.T, fileName, contentType string, data []byte, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if imageName != "" {
		require.NoError(t, mw.WriteField("image_name", imageName))
	}
	if data != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadRequest(body *bytes.Buffer, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/items/10/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	return withURLParams(req, "itemID", "10")
}

func TestUploadImage(t *testing.T) {
	h, m := newTestHandler(t)
	body, ct := multipartBody(t, "photo.JPG", "image/jpeg", []byte("jpeg-bytes"), "Front view")

	m.items.EXPECT().UploadImage(gomock.Any(), testAccountID, int64(10), models.ImageUpload{
		DisplayName: "Front view",
		FileName:    "photo.JPG",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	}).Return(models.Item{ID: 10, ImageName: strPtr("Front view"), ImagePath: strPtr("/static/uploads/0190.jpg")}, nil)

	rec := serveAsOwner(h.uploadImage, uploadRequest(body, ct))

	require.Equal(t, http.StatusOK, rec.Code)
	item := decodeBody[map[string]any](t, rec.Body)
	assert.Equal(t, "Front view", item["image_name"])
	assert.Equal(t, "/static/uploads/0190.jpg", item["image_path"])
}

func TestUploadImage_MissingFile(t *testing.T) {
	h, _ := newTestHandler(t)
	body, ct := multipartBody(t, "", "", nil, "Front view")

	rec := serveAsOwner(h.uploadImage, uploadRequest(body, ct))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_NotMultipart(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serveAsOwner(h.uploadImage, uploadRequest(bytes.NewBufferString(`{"file":"x"}`), "application/json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_OversizedFileReachesValidator(t *testing.T) {
	h, m := newTestHandler(t)
	body, ct := multipartBody(t, "big.png", "image/png", bytes.Repeat([]byte{1}, 4096), "")

	// the handler cuts the read one byte past the limit
	m.items.EXPECT().UploadImage(gomock.Any(), testAccountID, int64(10), gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ int64, upload models.ImageUpload) (models.Item, error) {
			assert.Len(t, upload.Data, 1025)
			return models.Item{}, fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrImageTooLarge)
		},
	)

	rec := serveAsOwner(h.uploadImage, uploadRequest(body, ct))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_BlobFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "backend unreachable",
			err:        fmt.Errorf("%w: %w: %w", service.ErrUnavailable, service.ErrImageStoreFailed, adapter.ErrBlobUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "object rejected",
			err:        fmt.Errorf("%w: %w", service.ErrImageStoreFailed, adapter.ErrBlobRejected),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "foreign item",
			err:        service.ErrItemNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			body, ct := multipartBody(t, "a.png", "image/png", []byte("png"), "")

			m.items.EXPECT().UploadImage(gomock.Any(), testAccountID, int64(10), gomock.Any()).Return(models.Item{}, tt.err)

			rec := serveAsOwner(h.uploadImage, uploadRequest(body, ct))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
