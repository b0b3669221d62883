package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	registry_errors "github.com/medregistry/api/errors"
	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/model"
	mock_service "github.com/medregistry/api/test/service_mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func setupCustomerRouter(t *testing.T) (*gin.Engine, *mock_service.MockICustomerService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockSvc := mock_service.NewMockICustomerService(ctrl)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "admin-1")
		c.Next()
	})
	NewCustomerController(mockSvc).RegisterRoutes(r.Group("/api/v1"))
	return r, mockSvc
}

func TestCreateCustomer_Success(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	input := model.Customer{Name: "Clinic A", Email: "ops@clinic-a.example"}
	created := input
	created.ID = "c1"
	created.Status = "active"

	mockSvc.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any(), "admin-1").
		Return(&created, nil)

	body, _ := json.Marshal(input)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "active", got.Status)
}

func TestCreateCustomer_InvalidJSON(t *testing.T) {
	r, _ := setupCustomerRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCustomer_Conflict(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any(), "admin-1").
		Return(nil, registry_errors.ErrCustomerConflict)

	body, _ := json.Marshal(model.Customer{Name: "Clinic A", Email: "ops@clinic-a.example"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetCustomer_Success(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		GetCustomer(gomock.Any(), "c1").
		Return(&model.Customer{ID: "c1", Name: "Clinic A"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Clinic A", got.Name)
}

func TestGetCustomer_NotFound(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		GetCustomer(gomock.Any(), "ghost").
		Return(nil, registry_errors.ErrCustomerNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCustomer_PathIDWins(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		UpdateCustomer(gomock.Any(), gomock.Any(), "admin-1").
		DoAndReturn(func(_ context.Context, customer model.Customer, _ string) (*model.Customer, error) {
			assert.Equal(t, "c1", customer.ID, "the path parameter overrides any body ID")
			return &customer, nil
		})

	body, _ := json.Marshal(model.Customer{ID: "spoofed", Name: "Clinic A", Email: "ops@clinic-a.example"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/c1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCustomer_Success(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		DeleteCustomer(gomock.Any(), "c1", "admin-1").
		Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListCustomers_PaginationPassedThrough(t *testing.T) {
	r, mockSvc := setupCustomerRouter(t)

	mockSvc.EXPECT().
		ListCustomers(gomock.Any(), 25, 50).
		Return([]model.Customer{{ID: "c1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?limit=25&offset=50", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestListCustomers_BadPagination(t *testing.T) {
	r, _ := setupCustomerRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?limit=lots", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
