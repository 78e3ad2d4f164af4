package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPartyRepository is a mock implementation of the PartyRepositoryFacade interface
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, companyID, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, companyID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, companyID string, role *domain.PartyRole, limit int, nextToken *string) ([]domain.Party, *string, error) {
	args := m.Called(ctx, companyID, role, limit, nextToken)
	var parties []domain.Party
	if args.Get(0) != nil {
		parties = args.Get(0).([]domain.Party)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return parties, token, args.Error(2)
}

func (m *MockPartyRepository) ListActivePartiesByRole(ctx context.Context, companyID string, role domain.PartyRole) ([]domain.Party, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, companyID, partyID, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, partyID, userID, now)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of the SaleRepositoryFacade interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, companyID, saleID string) (*domain.SaleEntry, error) {
	args := m.Called(ctx, companyID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleEntry), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.SaleEntry, error) {
	args := m.Called(ctx, companyID, partyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleEntry), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SaleEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var sales []domain.SaleEntry
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.SaleEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.SaleEntry) (*domain.SaleEntry, error) {
	args := m.Called(ctx, sale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleEntry), args.Error(1)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, sale domain.SaleEntry) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, companyID, saleID string) error {
	args := m.Called(ctx, companyID, saleID)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of the PurchaseRepositoryFacade interface
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, companyID, purchaseID string) (*domain.PurchaseEntry, error) {
	args := m.Called(ctx, companyID, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchasesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.PurchaseEntry, error) {
	args := m.Called(ctx, companyID, partyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.PurchaseEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var purchases []domain.PurchaseEntry
	if args.Get(0) != nil {
		purchases = args.Get(0).([]domain.PurchaseEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return purchases, token, args.Error(2)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) (*domain.PurchaseEntry, error) {
	args := m.Called(ctx, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) UpdatePurchase(ctx context.Context, purchase domain.PurchaseEntry) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchase(ctx context.Context, companyID, purchaseID string) error {
	args := m.Called(ctx, companyID, purchaseID)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, companyID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, companyID, partyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return payments, token, args.Error(2)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, companyID, paymentID string) error {
	args := m.Called(ctx, companyID, paymentID)
	return args.Error(0)
}

// MockCompanyAuthorizer is a mock implementation of the CompanyAuthorizerSvc interface
type MockCompanyAuthorizer struct {
	mock.Mock
}

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// LedgerServiceTestSuite defines the test suite for the ledger service
type LedgerServiceTestSuite struct {
	suite.Suite
	mockPartyRepo    *MockPartyRepository
	mockSaleRepo     *MockSaleRepository
	mockPurchaseRepo *MockPurchaseRepository
	mockPaymentRepo  *MockPaymentRepository
	mockAuthorizer   *MockCompanyAuthorizer
	service          portssvc.LedgerSvcFacade
}

// SetupTest sets up fresh mocks and the service before each test
func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewLedgerService(
		suite.mockPartyRepo,
		suite.mockSaleRepo,
		suite.mockPurchaseRepo,
		suite.mockPaymentRepo,
		suite.mockAuthorizer,
	)
}

func (suite *LedgerServiceTestSuite) customerParty() *domain.Party {
	return &domain.Party{
		PartyID:            "party-1",
		CompanyID:          "company-1",
		Role:               domain.RoleCustomer,
		Name:               "Acme Traders",
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: domain.Debit,
		IsActive:           true,
	}
}

func (suite *LedgerServiceTestSuite) TestPartyStatementFoldsHistoryIntoOpening() {
	ctx := context.Background()
	party := suite.customerParty()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	preSales := []domain.SaleEntry{
		{SaleID: "sale-0", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-001",
			Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(50), SequenceNo: 1},
	}
	windowSales := []domain.SaleEntry{
		{SaleID: "sale-1", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-002",
			Date: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(200), SequenceNo: 1},
	}
	windowPayments := []domain.Payment{
		{PaymentID: "pay-1", CompanyID: "company-1", PartyID: "party-1", Direction: domain.PaymentIn,
			Date: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(120), Mode: "cash", SequenceNo: 1},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "company-1", "party-1").Return(party, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-1", time.Time{}, from).Return(preSales, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-1", time.Time{}, from).Return([]domain.Payment{}, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-1", from, to.AddDate(0, 0, 1)).Return(windowSales, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-1", from, to.AddDate(0, 0, 1)).Return(windowPayments, nil).Once()

	gotParty, result, err := suite.service.PartyStatement(ctx, "company-1", "party-1", from, to, "user-1")

	suite.Require().NoError(err)
	suite.Equal("party-1", gotParty.PartyID)

	// Opening carries the stored balance plus the pre-window sale.
	suite.True(result.OpeningBalance.Amount.Equal(decimal.NewFromInt(150)),
		"expected opening 150, got %s", result.OpeningBalance.Amount)
	suite.Equal(domain.Debit, result.OpeningBalance.Type)

	suite.Require().Len(result.Rows, 2)
	suite.True(result.Rows[0].Debit.Equal(decimal.NewFromInt(200)))
	suite.Equal("Sale invoice INV-002", result.Rows[0].Particulars)
	suite.True(result.Rows[0].RunningBalance.Equal(decimal.NewFromInt(350)))
	suite.True(result.Rows[1].Credit.Equal(decimal.NewFromInt(120)))
	suite.Equal("Payment (cash)", result.Rows[1].Particulars)
	suite.True(result.Rows[1].RunningBalance.Equal(decimal.NewFromInt(230)))

	suite.True(result.ClosingBalance.Amount.Equal(decimal.NewFromInt(230)),
		"expected closing 230, got %s", result.ClosingBalance.Amount)
	suite.Equal(domain.Debit, result.ClosingBalance.Type)

	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "ListPurchasesByParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPartyStatementSupplierUsesPurchases() {
	ctx := context.Background()
	party := &domain.Party{
		PartyID:            "party-2",
		CompanyID:          "company-1",
		Role:               domain.RoleSupplier,
		Name:               "Mehta Suppliers",
		OpeningBalance:     decimal.NewFromInt(80),
		OpeningBalanceType: domain.Credit,
		IsActive:           true,
	}
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	windowPurchases := []domain.PurchaseEntry{
		{PurchaseID: "pur-1", CompanyID: "company-1", PartyID: "party-2", BillNumber: "BILL-9",
			Date: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300), SequenceNo: 1},
	}
	windowPayments := []domain.Payment{
		{PaymentID: "pay-2", CompanyID: "company-1", PartyID: "party-2", Direction: domain.PaymentOut,
			Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(150), Mode: "transfer", SequenceNo: 1},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "company-1", "party-2").Return(party, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesByParty", ctx, "company-1", "party-2", time.Time{}, from).Return([]domain.PurchaseEntry{}, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-2", time.Time{}, from).Return([]domain.Payment{}, nil).Once()
	suite.mockPurchaseRepo.On("ListPurchasesByParty", ctx, "company-1", "party-2", from, to.AddDate(0, 0, 1)).Return(windowPurchases, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-2", from, to.AddDate(0, 0, 1)).Return(windowPayments, nil).Once()

	_, result, err := suite.service.PartyStatement(ctx, "company-1", "party-2", from, to, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(result.Rows, 2)

	// Purchase credits the supplier account, payment made debits it.
	suite.True(result.Rows[0].Credit.Equal(decimal.NewFromInt(300)))
	suite.True(result.Rows[1].Debit.Equal(decimal.NewFromInt(150)))

	// 80 credit opening + 300 purchase - 150 paid = 230 credit owed.
	suite.True(result.ClosingBalance.Amount.Equal(decimal.NewFromInt(230)),
		"expected closing 230, got %s", result.ClosingBalance.Amount)
	suite.Equal(domain.Credit, result.ClosingBalance.Type)

	suite.mockSaleRepo.AssertNotCalled(suite.T(), "ListSalesByParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPartyStatementRequiresWindow() {
	ctx := context.Background()
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Twice()

	_, _, err := suite.service.PartyStatement(ctx, "company-1", "party-1", time.Time{}, to, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = suite.service.PartyStatement(ctx, "company-1", "party-1", to, to.AddDate(0, 0, -7), "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindPartyByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPartyStatementUnauthorizedUser() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-2", "company-1", domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	_, _, err := suite.service.PartyStatement(ctx, "company-1", "party-1", from, to, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "FindPartyByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPartyStatementPartyNotFound() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "company-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.PartyStatement(ctx, "company-1", "missing", from, to, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPartySummaryTotalsAndDue() {
	ctx := context.Background()
	party := suite.customerParty()
	party.CreditLimitAmount = decimal.NewFromInt(1000)

	sales := []domain.SaleEntry{
		{SaleID: "sale-1", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-001",
			Date: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300), SequenceNo: 1},
		{SaleID: "sale-2", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-002",
			Date: time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(200), SequenceNo: 1},
	}
	payments := []domain.Payment{
		{PaymentID: "pay-1", CompanyID: "company-1", PartyID: "party-1", Direction: domain.PaymentIn,
			Date: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(250), Mode: "cash", SequenceNo: 1},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "company-1", "party-1").Return(party, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return(sales, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return(payments, nil).Once()

	_, summary, err := suite.service.PartySummary(ctx, "company-1", "party-1", "user-1")

	suite.Require().NoError(err)
	suite.True(summary.TotalSales.Equal(decimal.NewFromInt(500)))
	suite.True(summary.TotalPayments.Equal(decimal.NewFromInt(250)))
	suite.True(summary.PrevClosingBalance.Equal(decimal.NewFromInt(100)))
	// 100 opening + 500 sold - 250 collected
	suite.True(summary.TotalDue.Equal(decimal.NewFromInt(350)),
		"expected due 350, got %s", summary.TotalDue)
	suite.False(summary.CreditLimitExceeded)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPartySummaryCreditLimitExceeded() {
	ctx := context.Background()
	party := suite.customerParty()
	party.CreditLimitAmount = decimal.NewFromInt(250)

	sales := []domain.SaleEntry{
		{SaleID: "sale-1", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-001",
			Date: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(300), SequenceNo: 1},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "company-1", "party-1").Return(party, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return(sales, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return([]domain.Payment{}, nil).Once()

	_, summary, err := suite.service.PartySummary(ctx, "company-1", "party-1", "user-1")

	suite.Require().NoError(err)
	suite.True(summary.TotalDue.Equal(decimal.NewFromInt(400)))
	suite.True(summary.CreditLimitExceeded)
}

func (suite *LedgerServiceTestSuite) TestDueListSummarizesActiveCustomers() {
	ctx := context.Background()
	parties := []domain.Party{
		{PartyID: "party-1", CompanyID: "company-1", Role: domain.RoleCustomer, Name: "Acme Traders",
			OpeningBalance: decimal.NewFromInt(100), OpeningBalanceType: domain.Debit, IsActive: true},
		{PartyID: "party-3", CompanyID: "company-1", Role: domain.RoleCustomer, Name: "Zed Stores",
			OpeningBalance: decimal.Zero, OpeningBalanceType: domain.Debit, IsActive: true},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockPartyRepo.On("ListActivePartiesByRole", ctx, "company-1", domain.RoleCustomer).Return(parties, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return([]domain.SaleEntry{
		{SaleID: "sale-1", CompanyID: "company-1", PartyID: "party-1", InvoiceNumber: "INV-001",
			Date: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(400), SequenceNo: 1},
	}, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-1", time.Time{}, time.Time{}).Return([]domain.Payment{}, nil).Once()
	suite.mockSaleRepo.On("ListSalesByParty", ctx, "company-1", "party-3", time.Time{}, time.Time{}).Return([]domain.SaleEntry{}, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentsByParty", ctx, "company-1", "party-3", time.Time{}, time.Time{}).Return([]domain.Payment{
		{PaymentID: "pay-9", CompanyID: "company-1", PartyID: "party-3", Direction: domain.PaymentIn,
			Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(60), Mode: "cash", SequenceNo: 1},
	}, nil).Once()

	dues, err := suite.service.DueList(ctx, "company-1", domain.RoleCustomer, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(dues, 2)
	suite.Equal("party-1", dues[0].Party.PartyID)
	suite.True(dues[0].Summary.TotalDue.Equal(decimal.NewFromInt(500)))
	// An overpaying party surfaces as a negative due rather than being dropped.
	suite.Equal("party-3", dues[1].Party.PartyID)
	suite.True(dues[1].Summary.TotalDue.Equal(decimal.NewFromInt(-60)))

	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDueListRejectsUnknownRole() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()

	_, err := suite.service.DueList(ctx, "company-1", domain.PartyRole("VENDOR"), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "ListActivePartiesByRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
