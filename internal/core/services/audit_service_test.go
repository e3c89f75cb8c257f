package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/core/services"
)

// MockAuditRepository is a mock type for the AuditRepository interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	service  portssvc.AuditSvcFacade
	reviewer domain.Authorization
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	suite.service = services.NewAuditService(suite.mockRepo)
	suite.reviewer = domain.Authorization{
		UserID: uuid.NewString(),
		Role:   domain.RoleSuperAdmin,
		Scope:  domain.ReviewerScope{All: true},
	}
}

func (suite *AuditServiceTestSuite) TestRecord_BuildsEntry() {
	ctx := context.Background()
	actorID := uuid.NewString()
	companyID := uuid.NewString()
	suite.mockRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.EntryID != "" &&
			e.ActorID == actorID &&
			e.Action == domain.ActionRejectReport &&
			e.TargetCompanyID != nil && *e.TargetCompanyID == companyID &&
			time.Since(e.CreatedAt) < time.Second
	})).Return(nil).Once()

	err := suite.service.Record(ctx, actorID, domain.ActionRejectReport, &companyID, nil,
		map[string]any{"reason": "数据异常"})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecord_PropagatesAppendFailure() {
	ctx := context.Background()
	suite.mockRepo.On("AppendEntry", mock.Anything, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(fmt.Errorf("store down")).Once()

	err := suite.service.Record(ctx, uuid.NewString(), domain.ActionCreateEnterprise, nil, nil, nil)

	suite.Require().Error(err)
}

func (suite *AuditServiceTestSuite) TestList_ClampsLimit() {
	ctx := context.Background()
	suite.mockRepo.On("ListEntries", mock.Anything, 100, 0).
		Return([]domain.AuditLogEntry{}, nil).Twice()

	_, err := suite.service.List(ctx, suite.reviewer, -5, 0)
	suite.Require().NoError(err)
	_, err = suite.service.List(ctx, suite.reviewer, 10000, -3)
	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestList_ForbiddenForEnterprise() {
	ctx := context.Background()
	enterprise := domain.Authorization{
		UserID:    uuid.NewString(),
		Role:      domain.RoleEnterprise,
		CompanyID: uuid.NewString(),
	}

	_, err := suite.service.List(ctx, enterprise, 10, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
