package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/buildsite/fundledger/internal/apperrors"
	"github.com/buildsite/fundledger/internal/core/domain"
	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/handlers"
)

// --- Mock PaymentAllocatorService ---
type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) AllocatePayment(ctx context.Context, req dto.AllocatePaymentRequest, userID string) (*domain.ClientPayment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientPayment), args.Error(1)
}

func (m *MockAllocationService) AllocateExistingPayment(ctx context.Context, paymentID string, req dto.AllocateExistingPaymentRequest, userID string) (*domain.ClientPayment, error) {
	args := m.Called(ctx, paymentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientPayment), args.Error(1)
}

func (m *MockAllocationService) DeletePayment(ctx context.Context, paymentID string, userID string) error {
	args := m.Called(ctx, paymentID, userID)
	return args.Error(0)
}

func (m *MockAllocationService) GetPayment(ctx context.Context, paymentID string) (*domain.ClientPayment, []domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ClientPayment), args.Get(1).([]domain.PaymentAllocation), args.Error(2)
}

var _ portssvc.PaymentAllocatorSvcFacade = (*MockAllocationService)(nil)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockAllocationService
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockSvc = new(MockAllocationService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Allocation: suite.mockSvc,
	})
}

func (suite *PaymentHandlerTestSuite) TestAllocatePayment_Created() {
	projectA := uuid.NewString()
	projectB := uuid.NewString()
	body := fmt.Sprintf(`{
		"totalAmount": 100000,
		"paymentDate": "2026-08-01T00:00:00Z",
		"allocations": [
			{"projectID": %q, "amount": 40000},
			{"projectID": %q, "amount": 60000}
		]
	}`, projectA, projectB)

	allocationDate := time.Now().UTC()
	suite.mockSvc.On("AllocatePayment", mock.Anything, mock.AnythingOfType("dto.AllocatePaymentRequest"), "site-manager").
		Return(&domain.ClientPayment{
			PaymentID:      uuid.NewString(),
			ProjectID:      domain.MultiProjectMarker,
			Amount:         decimal.NewFromInt(100000),
			IsMultiProject: true,
			IsAllocated:    true,
			AllocationDate: &allocationDate,
		}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/allocate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "site-manager")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.MultiProjectMarker, resp.ProjectID)
	suite.True(resp.IsAllocated)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestAllocatePayment_ValidationErrorMapsTo400() {
	body := `{
		"totalAmount": 100000,
		"paymentDate": "2026-08-01T00:00:00Z",
		"allocations": [{"projectID": "p1", "amount": 40000}]
	}`

	suite.mockSvc.On("AllocatePayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: total allocated (40000) doesn't match payment amount (100000)", apperrors.ErrValidation)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/allocate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "doesn't match payment amount")
}

func (suite *PaymentHandlerTestSuite) TestAllocatePayment_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/allocate", bytes.NewBufferString(`{"totalAmount":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "AllocatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestAllocateExistingPayment_ConflictMapsTo409() {
	paymentID := uuid.NewString()
	body := `{"allocations": [{"projectID": "p1", "amount": 50000}]}`

	suite.mockSvc.On("AllocateExistingPayment", mock.Anything, paymentID, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: payment %s has already been allocated", apperrors.ErrConflict, paymentID)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/"+paymentID+"/allocate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_Success() {
	paymentID := uuid.NewString()

	suite.mockSvc.On("GetPayment", mock.Anything, paymentID).Return(
		&domain.ClientPayment{PaymentID: paymentID, Amount: decimal.NewFromInt(75000)},
		[]domain.PaymentAllocation{
			{AllocationID: uuid.NewString(), PaymentID: paymentID, Amount: decimal.NewFromInt(75000)},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+paymentID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PaymentWithAllocationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(paymentID, resp.Payment.PaymentID)
	suite.Len(resp.Allocations, 1)
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_NotFoundMapsTo404() {
	paymentID := uuid.NewString()

	suite.mockSvc.On("GetPayment", mock.Anything, paymentID).
		Return(nil, nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+paymentID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestDeletePayment_NoContent() {
	paymentID := uuid.NewString()

	suite.mockSvc.On("DeletePayment", mock.Anything, paymentID, "system").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+paymentID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
