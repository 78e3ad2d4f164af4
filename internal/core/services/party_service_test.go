package services_test

import (
	"context"
	"testing"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/core/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// PartyServiceTestSuite defines the test suite for the party service
type PartyServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockPartyRepository
	mockAuthorizer *MockCompanyAuthorizer
	service        portssvc.PartySvcFacade
}

// SetupTest sets up fresh mocks and the service before each test
func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPartyRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewPartyService(suite.mockRepo, suite.mockAuthorizer)
}

func (suite *PartyServiceTestSuite) TestCreatePartySuccess() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Role:               domain.RoleCustomer,
		Name:               "Acme Traders",
		PAN:                "ABCDE1234F",
		Phone:              "9876543210",
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: "CREDIT",
		CreditLimitAmount:  decimal.NewFromInt(5000),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("SaveParty", ctx, mock.AnythingOfType("domain.Party")).Return(nil).Once()

	party, err := suite.service.CreateParty(ctx, "company-1", req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(party.PartyID)
	suite.Equal("company-1", party.CompanyID)
	suite.Equal(domain.RoleCustomer, party.Role)
	suite.Equal("Acme Traders", party.Name)
	suite.Equal(domain.Credit, party.OpeningBalanceType)
	suite.True(party.IsActive)
	suite.Equal("user-1", party.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreatePartyDefaultsOpeningTypeToDebit() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Role: domain.RoleSupplier,
		Name: "Mehta Suppliers",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("SaveParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.OpeningBalanceType == domain.Debit && p.OpeningBalance.IsZero()
	})).Return(nil).Once()

	party, err := suite.service.CreateParty(ctx, "company-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.Debit, party.OpeningBalanceType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreatePartyRejectsNegativeOpeningBalance() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Role:           domain.RoleCustomer,
		Name:           "Acme Traders",
		OpeningBalance: decimal.NewFromInt(-10),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleMember).Return(nil).Once()

	_, err := suite.service.CreateParty(ctx, "company-1", req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOpeningBalance)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestCreatePartyForbiddenForReadOnlyUser() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Role: domain.RoleCustomer,
		Name: "Acme Traders",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-2", "company-1", domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateParty(ctx, "company-1", req, "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestGetPartyByIDNotFound() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindPartyByID", ctx, "company-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetPartyByID(ctx, "company-1", "missing", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestListPartiesClampsLimit() {
	ctx := context.Background()
	role := domain.RoleCustomer

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("ListParties", ctx, "company-1", &role, 20, (*string)(nil)).Return([]domain.Party{}, nil, nil).Once()

	_, _, err := suite.service.ListParties(ctx, "company-1", &role, 500, nil, "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdatePartyAppliesPartialFields() {
	ctx := context.Background()
	existing := &domain.Party{
		PartyID:            "party-1",
		CompanyID:          "company-1",
		Role:               domain.RoleCustomer,
		Name:               "Acme Traders",
		Phone:              "9876543210",
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: domain.Debit,
		IsActive:           true,
	}
	newName := "Acme Traders Pvt Ltd"
	newLimit := decimal.NewFromInt(7500)
	req := dto.UpdatePartyRequest{
		Name:              &newName,
		CreditLimitAmount: &newLimit,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindPartyByID", ctx, "company-1", "party-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == newName &&
			p.CreditLimitAmount.Equal(newLimit) &&
			p.Phone == "9876543210" &&
			p.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateParty(ctx, "company-1", "party-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.True(updated.CreditLimitAmount.Equal(newLimit))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdatePartyRejectsNegativeCreditLimit() {
	ctx := context.Background()
	existing := &domain.Party{
		PartyID:   "party-1",
		CompanyID: "company-1",
		Role:      domain.RoleCustomer,
		Name:      "Acme Traders",
		IsActive:  true,
	}
	badLimit := decimal.NewFromInt(-1)
	req := dto.UpdatePartyRequest{CreditLimitAmount: &badLimit}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindPartyByID", ctx, "company-1", "party-1").Return(existing, nil).Once()

	_, err := suite.service.UpdateParty(ctx, "company-1", "party-1", req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestDeactivatePartyRequiresAdmin() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-2", "company-1", domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeactivateParty(ctx, "company-1", "party-1", "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateParty",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestDeactivatePartySuccess() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, "user-1", "company-1", domain.RoleAdmin).Return(nil).Once()
	suite.mockRepo.On("DeactivateParty", ctx, "company-1", "party-1", "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateParty(ctx, "company-1", "party-1", "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
