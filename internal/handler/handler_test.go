package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-admin-api/internal/dto"
	"github.com/noah-isme/tutoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-admin-api/pkg/errors"
)

func newTestContext(method, target string, body interface{}, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeAuthSrv struct {
	err  error
	last models.LoginRequest
}

func (f *fakeAuthSrv) Login(_ context.Context, req models.LoginRequest) error {
	f.last = req
	return f.err
}

func TestAuthHandlerLogin(t *testing.T) {
	srv := &fakeAuthSrv{}
	handler := NewAuthHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/login", gin.H{"username": "Ricardo", "password": "R1c@rd0"})
	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful!", decodeBody(t, rec)["message"])
	assert.Equal(t, "Ricardo", srv.last.Username)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{err: appErrors.ErrInvalidCredentials})

	c, rec := newTestContext(http.MethodPost, "/login", gin.H{"username": "x", "password": "y"})
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid credentials.", body["message"])
	assert.NotContains(t, body, "error")
}

func TestAuthHandlerLoginStoreError(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{err: errors.New("database is locked")})

	c, rec := newTestContext(http.MethodPost, "/login", gin.H{"username": "x", "password": "y"})
	handler.Login(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "database is locked")
}

type fakeStudentSrv struct {
	student   *models.Student
	err       error
	changes   int64
	updatedID int64
}

func (f *fakeStudentSrv) List(context.Context) ([]models.Student, error) {
	return []models.Student{}, f.err
}

func (f *fakeStudentSrv) Get(_ context.Context, id int64) (*models.Student, error) {
	return f.student, f.err
}

func (f *fakeStudentSrv) Create(_ context.Context, req dto.StudentRequest) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Student{ID: 7, Name: req.Name, Phone: req.Phone, Email: req.Email, Level: req.Level}, nil
}

func (f *fakeStudentSrv) Update(_ context.Context, id int64, _ dto.StudentRequest) error {
	f.updatedID = id
	return f.err
}

func (f *fakeStudentSrv) Delete(context.Context, int64) (int64, error) {
	return f.changes, f.err
}

func TestStudentHandlerCreate(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{})

	c, rec := newTestContext(http.MethodPost, "/students", gin.H{"name": "Ana", "phone": "555", "email": "a@x.io", "level": "B2"})
	handler.Create(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Student added successfully!", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "B2", data["level"])
}

func TestStudentHandlerCreateMalformedBody(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{})

	c, rec := newTestContext(http.MethodPost, "/students", "{not json")
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "error")
}

func TestStudentHandlerGetInvalidID(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{})

	c, rec := newTestContext(http.MethodGet, "/students/abc", nil, gin.Param{Key: "id", Value: "abc"})
	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{err: appErrors.Clone(appErrors.ErrNotFound, "Student not found.")})

	c, rec := newTestContext(http.MethodGet, "/students/3", nil, gin.Param{Key: "id", Value: "3"})
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student not found.", decodeBody(t, rec)["message"])
}

func TestStudentHandlerUpdateEchoesPathID(t *testing.T) {
	srv := &fakeStudentSrv{}
	handler := NewStudentHandler(srv)

	c, rec := newTestContext(http.MethodPut, "/students/12", gin.H{"name": "Ana"}, gin.Param{Key: "id", Value: "12"})
	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "12", data["id"])
	assert.Equal(t, "Ana", data["name"])
	assert.Equal(t, int64(12), srv.updatedID)
}

func TestStudentHandlerDelete(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{changes: 1})

	c, rec := newTestContext(http.MethodDelete, "/students/1", nil, gin.Param{Key: "id", Value: "1"})
	handler.Delete(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["changes"])
	assert.Equal(t, "Student deleted successfully!", body["message"])
}

func TestStudentHandlerDeleteConflict(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentSrv{err: appErrors.Clone(appErrors.ErrConflict, "student still has payments or consumed classes")})

	c, rec := newTestContext(http.MethodDelete, "/students/1", nil, gin.Param{Key: "id", Value: "1"})
	handler.Delete(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "payments")
}

type fakePaymentSrv struct {
	filter models.PaymentFilter
}

func (f *fakePaymentSrv) List(_ context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	f.filter = filter
	return []models.Payment{}, nil
}

func (f *fakePaymentSrv) Get(context.Context, int64) (*models.Payment, error) {
	return &models.Payment{ID: 1}, nil
}

func (f *fakePaymentSrv) Create(_ context.Context, req dto.PaymentRequest) (*models.Payment, error) {
	return &models.Payment{ID: 1, StudentID: req.StudentID, Amount: req.Amount, NumClasses: req.EffectiveNumClasses(), PaymentDate: req.PaymentDate}, nil
}

func (f *fakePaymentSrv) Update(_ context.Context, id int64, req dto.PaymentRequest) (*models.Payment, error) {
	return &models.Payment{ID: id, StudentID: req.StudentID, Amount: req.Amount, NumClasses: req.EffectiveNumClasses(), PaymentDate: req.PaymentDate}, nil
}

func (f *fakePaymentSrv) Delete(context.Context, int64) (int64, error) {
	return 1, nil
}

func TestPaymentHandlerListFilter(t *testing.T) {
	srv := &fakePaymentSrv{}
	handler := NewPaymentHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/payments?student_id=4", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.filter.StudentID)
	assert.Equal(t, int64(4), *srv.filter.StudentID)

	c, rec = newTestContext(http.MethodGet, "/payments?student_id=four", nil)
	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, _ = newTestContext(http.MethodGet, "/payments", nil)
	handler.List(c)
	assert.Nil(t, srv.filter.StudentID)
}

func TestPaymentHandlerCreateNullNumClasses(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentSrv{})

	c, rec := newTestContext(http.MethodPost, "/payments", `{"student_id":1,"amount":80.5,"num_classes":null,"payment_date":"2024-01-01"}`)
	handler.Create(c)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["num_classes"])
	assert.Equal(t, 80.5, data["amount"])
}

func TestPaymentHandlerUpdate(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentSrv{})

	c, rec := newTestContext(http.MethodPut, "/payments/5", gin.H{"student_id": 2, "amount": 10, "num_classes": 4}, gin.Param{Key: "id", Value: "5"})
	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "5", data["id"])
	assert.Equal(t, float64(4), data["num_classes"])
}

type fakeAttendanceSrv struct {
	result *dto.AttendanceResult
	err    error
	calls  int
}

func (f *fakeAttendanceSrv) Register(context.Context, dto.AttendanceRequest) (*dto.AttendanceResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeAttendanceSrv) Summary(result *dto.AttendanceResult) string {
	if result.Partial() {
		return "partial"
	}
	return "ok"
}

func TestAttendanceHandlerAllInserted(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceSrv{result: &dto.AttendanceResult{Inserted: 2}})

	c, rec := newTestContext(http.MethodPost, "/class-attendance", gin.H{"class_id": 1, "class_date": "2024-01-01", "student_ids": []int{1, 2}})
	handler.Register(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["inserted"])
	assert.NotContains(t, body, "errors")
}

func TestAttendanceHandlerPartial(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceSrv{result: &dto.AttendanceResult{
		Inserted: 2,
		Failed:   1,
		Errors:   []dto.AttendanceFailure{{StudentID: 999, Error: "FOREIGN KEY constraint failed"}},
	}})

	c, rec := newTestContext(http.MethodPost, "/class-attendance", gin.H{"class_id": 1, "class_date": "2024-01-01", "student_ids": []int{1, 2, 999}})
	handler.Register(c)

	require.Equal(t, http.StatusMultiStatus, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["failed"])
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, float64(999), errs[0].(map[string]interface{})["student_id"])
}

func TestAttendanceHandlerRejectsNonListStudentIDs(t *testing.T) {
	srv := &fakeAttendanceSrv{}
	handler := NewAttendanceHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/class-attendance", `{"class_id":1,"class_date":"2024-01-01","student_ids":"1,2"}`)
	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, srv.calls)
}
