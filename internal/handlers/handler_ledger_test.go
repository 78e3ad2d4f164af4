package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/handlers"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PartyStatement(ctx context.Context, companyID, partyID string, from, to time.Time, requestingUserID string) (*domain.Party, *domain.LedgerResult, error) {
	args := m.Called(ctx, companyID, partyID, from, to, requestingUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Party), args.Get(1).(*domain.LedgerResult), args.Error(2)
}

func (m *MockLedgerService) PartySummary(ctx context.Context, companyID, partyID string, requestingUserID string) (*domain.Party, *domain.PartySummary, error) {
	args := m.Called(ctx, companyID, partyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Party), args.Get(1).(*domain.PartySummary), args.Error(2)
}

func (m *MockLedgerService) DueList(ctx context.Context, companyID string, role domain.PartyRole, requestingUserID string) ([]domain.PartyDue, error) {
	args := m.Called(ctx, companyID, role, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyDue), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock FiscalYearService (reader side only) ---
type MockFiscalYearService struct {
	mock.Mock
}

func (m *MockFiscalYearService) GetFiscalYearByID(ctx context.Context, companyID, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, fiscalYearID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) GetFiscalYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearService) ListFiscalYears(ctx context.Context, companyID string, requestingUserID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

var _ portssvc.FiscalYearReaderSvc = (*MockFiscalYearService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockLedgerService     *MockLedgerService
	mockFiscalYearService *MockFiscalYearService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "billsphere-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockFiscalYearService = new(MockFiscalYearService)

	v1 := suite.router.Group("/api/v1/companies/:company_id")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService, suite.mockFiscalYearService)
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_Success() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	party := &domain.Party{
		PartyID:            partyID,
		CompanyID:          companyID,
		Role:               domain.RoleCustomer,
		Name:               "Acme Traders",
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: domain.Debit,
		IsActive:           true,
	}
	result := &domain.LedgerResult{
		OpeningBalance: domain.Balance{Amount: decimal.NewFromInt(100), Type: domain.Debit},
		Rows: []domain.LedgerRow{
			{
				Date:               time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
				Particulars:        "Sale invoice INV-001",
				Debit:              decimal.NewFromInt(200),
				Credit:             decimal.Zero,
				RunningBalance:     decimal.NewFromInt(300),
				RunningBalanceType: domain.Debit,
			},
			{
				Date:               time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
				Particulars:        "Payment (cash)",
				Debit:              decimal.Zero,
				Credit:             decimal.NewFromInt(120),
				RunningBalance:     decimal.NewFromInt(180),
				RunningBalanceType: domain.Debit,
			},
		},
		ClosingBalance: domain.Balance{Amount: decimal.NewFromInt(180), Type: domain.Debit},
	}

	suite.mockLedgerService.On("PartyStatement",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		partyID,
		from,
		to,
		requestingUserID,
	).Return(party, result, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement?from=2025-04-01&to=2025-04-30", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	token := suite.generateTestToken(requestingUserID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var responseBody dto.StatementResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(partyID, responseBody.Party.PartyID)
	suite.Equal("2025-04-01", responseBody.FromDate)
	suite.Equal("2025-04-30", responseBody.ToDate)
	suite.Require().Len(responseBody.Rows, 2)
	suite.Equal("Sale invoice INV-001", responseBody.Rows[0].Particulars)
	suite.True(responseBody.Rows[1].Credit.Equal(decimal.NewFromInt(120)))
	suite.True(responseBody.ClosingBalance.Amount.Equal(decimal.NewFromInt(180)))

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_DefaultsToActiveFiscalYear() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()
	fyStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	fyEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockFiscalYearService.On("GetFiscalYearForDate",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		mock.AnythingOfType("time.Time"),
	).Return(&domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Name:         "FY 2025-26",
		StartDate:    fyStart,
		EndDate:      fyEnd,
	}, nil).Once()

	party := &domain.Party{PartyID: partyID, CompanyID: companyID, Role: domain.RoleCustomer, Name: "Acme Traders"}
	result := &domain.LedgerResult{
		OpeningBalance: domain.Balance{Amount: decimal.Zero, Type: domain.Debit},
		Rows:           []domain.LedgerRow{},
		ClosingBalance: domain.Balance{Amount: decimal.Zero, Type: domain.Debit},
	}
	suite.mockLedgerService.On("PartyStatement",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		partyID,
		fyStart,
		fyEnd,
		requestingUserID,
	).Return(party, result, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.StatementResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal("2025-04-01", responseBody.FromDate)
	suite.Equal("2026-03-31", responseBody.ToDate)

	suite.mockFiscalYearService.AssertExpectations(suite.T())
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_MissingWindow() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement?from=2025-04-01", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PartyStatement",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_MalformedDate() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement?from=01-04-2025&to=2025-04-30", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_PartyNotFound() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerService.On("PartyStatement",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		partyID,
		from,
		to,
		requestingUserID,
	).Return(nil, nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement?from=2025-04-01&to=2025-04-30", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetPartyStatement_Unauthenticated() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/statement?from=2025-04-01&to=2025-04-30", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PartyStatement",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestGetPartySummary_Success() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()

	party := &domain.Party{
		PartyID:            partyID,
		CompanyID:          companyID,
		Role:               domain.RoleCustomer,
		Name:               "Acme Traders",
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: domain.Debit,
		CreditLimitAmount:  decimal.NewFromInt(250),
		IsActive:           true,
	}
	summary := &domain.PartySummary{
		TotalSales:          decimal.NewFromInt(500),
		TotalPurchases:      decimal.Zero,
		TotalPayments:       decimal.NewFromInt(250),
		PrevClosingBalance:  decimal.NewFromInt(100),
		TotalDue:            decimal.NewFromInt(350),
		CreditLimitExceeded: true,
	}

	suite.mockLedgerService.On("PartySummary",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		partyID,
		requestingUserID,
	).Return(party, summary, nil).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/summary", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.PartySummaryResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(partyID, responseBody.Party.PartyID)
	suite.True(responseBody.TotalDue.Equal(decimal.NewFromInt(350)))
	suite.True(responseBody.CreditLimitExceeded)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetPartySummary_Forbidden() {
	companyID := uuid.NewString()
	partyID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockLedgerService.On("PartySummary",
		mock.AnythingOfType("*context.valueCtx"),
		companyID,
		partyID,
		requestingUserID,
	).Return(nil, nil, apperrors.ErrForbidden).Once()

	url := fmt.Sprintf("/api/v1/companies/%s/parties/%s/summary", companyID, partyID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
