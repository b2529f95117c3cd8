package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/core/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockContactRepository is a mock type for the ContactRepositoryFacade interface
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListContacts(ctx context.Context, contactType domain.ContactType, limit, offset int) ([]domain.Contact, int, error) {
	args := m.Called(ctx, contactType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Contact), args.Int(1), args.Error(2)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

type ContactServiceTestSuite struct {
	suite.Suite
	mockRepo *MockContactRepository
	clock    *clock.Fake
	service  portssvc.ContactSvcFacade
}

func (suite *ContactServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockContactRepository)
	suite.clock = clock.NewFake(testNow)
	suite.service = services.NewContactService(suite.mockRepo, services.WithClock(suite.clock))
}

func (suite *ContactServiceTestSuite) TestCreateContact_Success() {
	ctx := context.Background()
	suite.mockRepo.On("SaveContact", ctx, mock.MatchedBy(func(c domain.Contact) bool {
		return c.Name == "Acme" && c.ContactType == domain.Vendor && c.ContactID != ""
	})).Return(nil).Once()

	contact, err := suite.service.CreateContact(ctx, domain.Vendor, dto.CreateContactRequest{Name: " Acme ", Email: "ap@acme.test"})

	suite.Require().NoError(err)
	suite.Equal("Acme", contact.Name)
	suite.Equal(domain.Vendor, contact.ContactType)
	suite.Equal(testNow, contact.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ContactServiceTestSuite) TestCreateContact_RejectsUnknownType() {
	_, err := suite.service.CreateContact(context.Background(), "supplier", dto.CreateContactRequest{Name: "Acme"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveContact", mock.Anything, mock.Anything)
}

func (suite *ContactServiceTestSuite) TestCreateContact_SaveError() {
	ctx := context.Background()
	suite.mockRepo.On("SaveContact", ctx, mock.AnythingOfType("domain.Contact")).Return(assert.AnError).Once()

	contact, err := suite.service.CreateContact(ctx, domain.Customer, dto.CreateContactRequest{Name: "Acme"})

	suite.Require().Error(err)
	suite.Nil(contact)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ContactServiceTestSuite) TestGetContact_TypeMismatchIsNotFound() {
	ctx := context.Background()
	vendor := &domain.Contact{ContactID: "c-1", Name: "Acme", ContactType: domain.Vendor}
	suite.mockRepo.On("FindContactByID", ctx, "c-1").Return(vendor, nil).Once()

	_, err := suite.service.GetContact(ctx, domain.Customer, "c-1")

	suite.ErrorIs(err, apperrors.ErrContactNotFound)
}

func (suite *ContactServiceTestSuite) TestListContacts_PageToOffset() {
	ctx := context.Background()
	page := []domain.Contact{{ContactID: "c-21", Name: "Zed", ContactType: domain.Customer}}
	suite.mockRepo.On("ListContacts", ctx, domain.Customer, 10, 20).Return(page, 21, nil).Once()

	contacts, total, err := suite.service.ListContacts(ctx, domain.Customer, dto.ListContactsParams{Page: 3, Limit: 10})

	suite.Require().NoError(err)
	suite.Equal(page, contacts)
	suite.Equal(21, total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ContactServiceTestSuite) TestUpdateContact_AppliesOnlySuppliedFields() {
	ctx := context.Background()
	existing := &domain.Contact{
		ContactID:   "c-1",
		Name:        "Acme",
		ContactType: domain.Customer,
		Email:       "old@acme.test",
		Phone:       "555-0100",
		AuditFields: domain.AuditFields{CreatedAt: testNow.Add(-48 * time.Hour), UpdatedAt: testNow.Add(-48 * time.Hour)},
	}
	suite.mockRepo.On("FindContactByID", ctx, "c-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateContact", ctx, mock.AnythingOfType("domain.Contact")).Return(nil).Once()
	suite.clock.Advance(time.Hour)

	email := "new@acme.test"
	updated, err := suite.service.UpdateContact(ctx, domain.Customer, "c-1", dto.UpdateContactRequest{Email: &email})

	suite.Require().NoError(err)
	suite.Equal("new@acme.test", updated.Email)
	suite.Equal("555-0100", updated.Phone)
	suite.Equal("Acme", updated.Name)
	suite.Equal(testNow.Add(time.Hour), updated.UpdatedAt)
	suite.Equal(testNow.Add(-48*time.Hour), updated.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ContactServiceTestSuite) TestUpdateContact_EmptyUpdate() {
	_, err := suite.service.UpdateContact(context.Background(), domain.Customer, "c-1", dto.UpdateContactRequest{})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindContactByID", mock.Anything, mock.Anything)
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
