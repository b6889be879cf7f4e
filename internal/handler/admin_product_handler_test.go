package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/oussama604/catalogue/internal/handler"
	"github.com/oussama604/catalogue/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// 記録するだけのスタブ
type productAdminStub struct {
	createIn    usecase.CreateProductInput
	createFiles []usecase.UploadedFile
	createID    int64
	createErr   error

	updateID    int64
	updateIn    usecase.UpdateProductInput
	updateFiles []usecase.UploadedFile
	updateErr   error

	deleteID  int64
	deleteErr error

	calls int
}

func (s *productAdminStub) Create(ctx context.Context, in usecase.CreateProductInput, files []usecase.UploadedFile) (int64, error) {
	s.calls++
	s.createIn = in
	s.createFiles = files
	return s.createID, s.createErr
}

func (s *productAdminStub) Update(ctx context.Context, id int64, in usecase.UpdateProductInput, files []usecase.UploadedFile) error {
	s.calls++
	s.updateID = id
	s.updateIn = in
	s.updateFiles = files
	return s.updateErr
}

func (s *productAdminStub) Delete(ctx context.Context, id int64) error {
	s.calls++
	s.deleteID = id
	return s.deleteErr
}

type mpFile struct {
	field    string
	filename string
	mime     string
	data     []byte
}

func newMultipartRequest(t *testing.T, method, target string, fields map[string]string, files []mpFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		h.Set("Content-Type", f.mime)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("part.Write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart close failed: %v", err)
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func newAdminServer(stub *productAdminStub) *echo.Echo {
	e := echo.New()
	handler.NewAdminProductHandler(stub).RegisterRoutes(e)
	return e
}

func TestAdminCreate_OK(t *testing.T) {
	stub := &productAdminStub{createID: 42}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPost, "/admin/products",
		map[string]string{
			"name":         "Café Crème",
			"price":        "12.50",
			"is_available": "on",
			"slug":         "ignored-client-slug",
		},
		[]mpFile{
			{"image", "main.png", "image/png", []byte("png-bytes")},
			{"images", "a.jpg", "image/jpeg", []byte("jpeg-a")},
			{"images", "b.jpg", "image/jpeg", []byte("jpeg-b")},
		})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CreateProductResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, int64(42), resp.ID)

	assert.Equal(t, "Café Crème", stub.createIn.Name)
	assert.True(t, stub.createIn.IsAvailable)
	assert.NotNil(t, stub.createIn.Price)
	//"image"が先、"images"が後の受信順
	if assert.Len(t, stub.createFiles, 3) {
		assert.Equal(t, "image/png", stub.createFiles[0].MimeType)
		assert.Equal(t, []byte("png-bytes"), stub.createFiles[0].Data)
		assert.Equal(t, int64(len("png-bytes")), stub.createFiles[0].Size)
	}
}

func TestAdminCreate_AvailabilityOmittedIsFalse(t *testing.T) {
	stub := &productAdminStub{createID: 1}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPost, "/admin/products",
		map[string]string{"name": "Chaise"}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, stub.createIn.IsAvailable)
	assert.Nil(t, stub.createIn.Price)
	assert.Nil(t, stub.createIn.Description)
}

func TestAdminCreate_FileTooLarge_RejectedBeforeUsecase(t *testing.T) {
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	big := bytes.Repeat([]byte("x"), 5<<20+1)
	req := newMultipartRequest(t, http.MethodPost, "/admin/products",
		map[string]string{"name": "Chaise"},
		[]mpFile{{"image", "big.png", "image/png", big}})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handler.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "5MiB")
	assert.Equal(t, 0, stub.calls)
}

func TestAdminCreate_TooManyImages_RejectedBeforeUsecase(t *testing.T) {
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	files := make([]mpFile, 0, 21)
	for i := 0; i < 21; i++ {
		files = append(files, mpFile{"images", fmt.Sprintf("f%d.png", i), "image/png", []byte("x")})
	}
	req := newMultipartRequest(t, http.MethodPost, "/admin/products",
		map[string]string{"name": "Chaise"}, files)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestAdminCreate_InvalidPrice(t *testing.T) {
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPost, "/admin/products",
		map[string]string{"name": "Chaise", "price": "abc"}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestAdminCreate_UsecaseError(t *testing.T) {
	stub := &productAdminStub{createErr: usecase.NewHTTPError(http.StatusBadRequest, "name required")}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPost, "/admin/products", map[string]string{}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handler.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "name required", resp.Error)
}

func TestAdminUpdate_AvailabilityTriState(t *testing.T) {
	//未指定 → nil（変更しない）
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPut, "/admin/products/5",
		map[string]string{"description": "nouvelle description"}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), stub.updateID)
	assert.Nil(t, stub.updateIn.IsAvailable)
	assert.Nil(t, stub.updateIn.Name)
	assert.NotNil(t, stub.updateIn.Description)

	//"on" → true
	stub = &productAdminStub{}
	e = newAdminServer(stub)
	req = newMultipartRequest(t, http.MethodPut, "/admin/products/5",
		map[string]string{"is_available": "on"}, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if assert.NotNil(t, stub.updateIn.IsAvailable) {
		assert.True(t, *stub.updateIn.IsAvailable)
	}

	//"false" → 明示的なfalse
	stub = &productAdminStub{}
	e = newAdminServer(stub)
	req = newMultipartRequest(t, http.MethodPut, "/admin/products/5",
		map[string]string{"is_available": "false"}, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if assert.NotNil(t, stub.updateIn.IsAvailable) {
		assert.False(t, *stub.updateIn.IsAvailable)
	}
}

func TestAdminUpdate_InvalidID(t *testing.T) {
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	req := newMultipartRequest(t, http.MethodPut, "/admin/products/abc",
		map[string]string{"name": "x"}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestAdminDelete_OK(t *testing.T) {
	stub := &productAdminStub{}
	e := newAdminServer(stub)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/3", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, int64(3), stub.deleteID)
}
