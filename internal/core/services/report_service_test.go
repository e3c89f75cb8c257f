package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
	"github.com/tmzhouw/labor-report-backend/internal/core/services"
	"github.com/tmzhouw/labor-report-backend/internal/dto"
)

// MockCompanyRepository is a mock type for the CompanyRepository interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) CountCompanies(ctx context.Context, filter domain.CompanyFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockReportRepository is a mock type for the ReportRepository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) UpsertReport(ctx context.Context, report domain.MonthlyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReport(ctx context.Context, report domain.MonthlyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindReport(ctx context.Context, companyID string, month domain.MonthKey) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, companyID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

func (m *MockReportRepository) ListReportRows(ctx context.Context, filter domain.StatsFilter) ([]domain.ReportRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportRow), args.Error(1)
}

// MockAuditService is a mock type for the AuditSvcFacade interface
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, actorID string, action domain.AuditAction, targetCompanyID, targetUserID *string, detail map[string]any) error {
	args := m.Called(ctx, actorID, action, targetCompanyID, targetUserID, detail)
	return args.Error(0)
}

func (m *MockAuditService) List(ctx context.Context, auth domain.Authorization, limit, offset int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, auth, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Test Suite Setup ---

type ReportServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockReportRepo  *MockReportRepository
	mockAudit       *MockAuditService
	service         portssvc.ReportSvcFacade

	companyID      string
	month          domain.MonthKey
	enterpriseAuth domain.Authorization
	reviewerAuth   domain.Authorization
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockReportRepo = new(MockReportRepository)
	suite.mockAudit = new(MockAuditService)
	suite.service = services.NewReportService(
		suite.mockCompanyRepo,
		suite.mockReportRepo,
		suite.mockAudit,
		services.NewAnomalyDetector(0.30),
	)

	suite.companyID = uuid.NewString()
	suite.month = domain.MonthKey("2025-07-01")
	suite.enterpriseAuth = domain.Authorization{
		UserID:    uuid.NewString(),
		Role:      domain.RoleEnterprise,
		CompanyID: suite.companyID,
	}
	suite.reviewerAuth = domain.Authorization{
		UserID: uuid.NewString(),
		Role:   domain.RoleSuperAdmin,
		Scope:  domain.ReviewerScope{All: true},
	}
}

func (suite *ReportServiceTestSuite) expectCompanyExists() {
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, Name: "华阳针织"}, nil).Once()
}

func submitRequest() dto.SubmitReportRequest {
	return dto.SubmitReportRequest{
		RecruitedNew:       12,
		ResignedTotal:      5,
		Shortage:           dto.ShortageDetailInput{General: 6, Technical: 3, Management: 1},
		PlannedRecruitment: 20,
		AverageSalary:      decimal.NewFromInt(4200),
		EntrySalary:        decimal.NewFromInt(3500),
	}
}

// --- Submit ---

func (suite *ReportServiceTestSuite) TestSubmit_FirstMonthBaselineZero() {
	ctx := context.Background()
	suite.expectCompanyExists()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month.Prev()).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportRepo.On("UpsertReport", mock.Anything, mock.AnythingOfType("domain.MonthlyReport")).
		Return(nil).Once()

	report, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.StatusSubmitted, report.Status)
	// 0 + 12 - 5
	suite.Equal(7, report.EmployeesTotal)
	suite.Equal(10, report.ShortageTotal)
	suite.Empty(report.RejectReason)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestSubmit_DerivesFromPriorMonth() {
	ctx := context.Background()
	suite.expectCompanyExists()
	prev := &domain.MonthlyReport{
		CompanyID:      suite.companyID,
		ReportMonth:    suite.month.Prev(),
		Status:         domain.StatusApproved,
		EmployeesTotal: 100,
	}
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month.Prev()).
		Return(prev, nil).Once()
	suite.mockReportRepo.On("UpsertReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.EmployeesTotal == 107
	})).Return(nil).Once()

	report, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().NoError(err)
	suite.Equal(107, report.EmployeesTotal)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestSubmit_TotalFlooredAtZero() {
	ctx := context.Background()
	suite.expectCompanyExists()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month.Prev()).
		Return(&domain.MonthlyReport{Status: domain.StatusApproved, EmployeesTotal: 3}, nil).Once()
	suite.mockReportRepo.On("UpsertReport", mock.Anything, mock.AnythingOfType("domain.MonthlyReport")).
		Return(nil).Once()

	req := submitRequest()
	req.RecruitedNew = 0
	req.ResignedTotal = 50

	report, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, req)

	suite.Require().NoError(err)
	suite.Equal(0, report.EmployeesTotal)
}

func (suite *ReportServiceTestSuite) TestSubmit_OverwritesRejected() {
	ctx := context.Background()
	suite.expectCompanyExists()
	rejected := &domain.MonthlyReport{
		CompanyID:    suite.companyID,
		ReportMonth:  suite.month,
		Status:       domain.StatusRejected,
		RejectReason: "数据异常",
	}
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(rejected, nil).Once()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month.Prev()).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReportRepo.On("UpsertReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.Status == domain.StatusSubmitted && r.RejectReason == ""
	})).Return(nil).Once()

	report, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, report.Status)
	suite.Empty(report.RejectReason)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestSubmit_ConflictWhenAlreadySubmitted() {
	ctx := context.Background()
	suite.expectCompanyExists()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(&domain.MonthlyReport{Status: domain.StatusSubmitted}, nil).Once()

	_, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "UpsertReport", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestSubmit_ConflictWhenAlreadyApproved() {
	ctx := context.Background()
	suite.expectCompanyExists()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(&domain.MonthlyReport{Status: domain.StatusApproved}, nil).Once()

	_, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReportServiceTestSuite) TestSubmit_ForbiddenForOtherCompany() {
	ctx := context.Background()

	_, err := suite.service.Submit(ctx, suite.enterpriseAuth, uuid.NewString(), suite.month, submitRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "FindCompanyByID", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestSubmit_ForbiddenForReviewer() {
	ctx := context.Background()

	_, err := suite.service.Submit(ctx, suite.reviewerAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportServiceTestSuite) TestSubmit_RejectsNegativeFigures() {
	ctx := context.Background()
	req := submitRequest()
	req.ResignedTotal = -1

	_, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportServiceTestSuite) TestSubmit_UnknownCompany() {
	ctx := context.Background()
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, suite.companyID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Submit(ctx, suite.enterpriseAuth, suite.companyID, suite.month, submitRequest())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Approve ---

func (suite *ReportServiceTestSuite) storedSubmitted() *domain.MonthlyReport {
	return &domain.MonthlyReport{
		CompanyID:      suite.companyID,
		ReportMonth:    suite.month,
		Status:         domain.StatusSubmitted,
		EmployeesTotal: 100,
		RecruitedNew:   12,
		ResignedTotal:  5,
		Shortage:       domain.ShortageDetail{General: 6, Technical: 3, Management: 1},
		ShortageTotal:  10,
	}
}

func (suite *ReportServiceTestSuite) TestApprove_NoCorrections() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(suite.storedSubmitted(), nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.Status == domain.StatusApproved && r.EmployeesTotal == 100
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, suite.reviewerAuth.UserID, domain.ActionEditReportData,
		mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	report, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, report.Status)
	suite.mockReportRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestApprove_AppliesCorrections() {
	ctx := context.Background()
	corrected := 103
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(suite.storedSubmitted(), nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.EmployeesTotal == 103
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, suite.reviewerAuth.UserID, domain.ActionEditReportData,
		mock.Anything, mock.Anything, mock.MatchedBy(func(detail map[string]any) bool {
			inner, ok := detail["corrected"].(map[string]any)
			return ok && inner["employeesTotal"] == 103
		})).Return(nil).Once()

	report, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month,
		dto.ApproveReportRequest{CorrectedEmployees: &corrected})

	suite.Require().NoError(err)
	suite.Equal(103, report.EmployeesTotal)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestApprove_RecomputesShortageTotal() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(suite.storedSubmitted(), nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.ShortageTotal == 9 && r.Shortage.General == 5
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	report, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month,
		dto.ApproveReportRequest{CorrectedShortage: &dto.ShortageDetailInput{General: 5, Technical: 3, Management: 1}})

	suite.Require().NoError(err)
	suite.Equal(9, report.ShortageTotal)
}

func (suite *ReportServiceTestSuite) TestApprove_ReconciliationOnApproved() {
	ctx := context.Background()
	stored := suite.storedSubmitted()
	stored.Status = domain.StatusApproved
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(stored, nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.AnythingOfType("domain.MonthlyReport")).
		Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, domain.ActionEditReportData,
		mock.Anything, mock.Anything, mock.MatchedBy(func(detail map[string]any) bool {
			return detail["reconciliation"] == true
		})).Return(nil).Once()

	_, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().NoError(err)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestApprove_ConflictOnRejected() {
	ctx := context.Background()
	stored := suite.storedSubmitted()
	stored.Status = domain.StatusRejected
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(stored, nil).Once()

	_, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "UpdateReport", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestApprove_SurvivesAuditFailure() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(suite.storedSubmitted(), nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.AnythingOfType("domain.MonthlyReport")).
		Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("audit store down")).Once()

	report, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, report.Status)
}

func (suite *ReportServiceTestSuite) TestApprove_ForbiddenOutsideScope() {
	ctx := context.Background()
	scoped := domain.Authorization{
		UserID: uuid.NewString(),
		Role:   domain.RoleTownReviewer,
		Scope:  domain.ReviewerScope{Companies: map[string]struct{}{uuid.NewString(): {}}},
	}

	_, err := suite.service.Approve(ctx, scoped, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportServiceTestSuite) TestApprove_NotFoundWhenNotFiled() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Approve(ctx, suite.reviewerAuth, suite.companyID, suite.month, dto.ApproveReportRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Reject ---

func (suite *ReportServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(suite.storedSubmitted(), nil).Once()
	suite.mockReportRepo.On("UpdateReport", mock.Anything, mock.MatchedBy(func(r domain.MonthlyReport) bool {
		return r.Status == domain.StatusRejected && r.RejectReason == "缺工数与上月不符"
	})).Return(nil).Once()
	suite.mockAudit.On("Record", mock.Anything, suite.reviewerAuth.UserID, domain.ActionRejectReport,
		mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.service.Reject(ctx, suite.reviewerAuth, suite.companyID, suite.month, "缺工数与上月不符")

	suite.Require().NoError(err)
	suite.mockReportRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestReject_RequiresReason() {
	ctx := context.Background()

	err := suite.service.Reject(ctx, suite.reviewerAuth, suite.companyID, suite.month, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportServiceTestSuite) TestReject_ConflictOnApproved() {
	ctx := context.Background()
	stored := suite.storedSubmitted()
	stored.Status = domain.StatusApproved
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(stored, nil).Once()

	err := suite.service.Reject(ctx, suite.reviewerAuth, suite.companyID, suite.month, "reason")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- GetReport ---

func (suite *ReportServiceTestSuite) TestGetReport_SynthesizesNotFiled() {
	ctx := context.Background()
	suite.mockReportRepo.On("FindReport", mock.Anything, suite.companyID, suite.month).
		Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.GetReport(ctx, suite.enterpriseAuth, suite.companyID, suite.month)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(domain.StatusNotFiled, report.Status)
	suite.Equal(suite.companyID, report.CompanyID)
	suite.Equal(suite.month, report.ReportMonth)
}

func (suite *ReportServiceTestSuite) TestGetReport_ForbiddenForStranger() {
	ctx := context.Background()
	other := domain.Authorization{
		UserID:    uuid.NewString(),
		Role:      domain.RoleEnterprise,
		CompanyID: uuid.NewString(),
	}

	_, err := suite.service.GetReport(ctx, other, suite.companyID, suite.month)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ListForReview ---

func (suite *ReportServiceTestSuite) TestListForReview_FlagsSwings() {
	ctx := context.Background()
	current := domain.ReportRow{
		MonthlyReport: domain.MonthlyReport{
			CompanyID:      suite.companyID,
			ReportMonth:    suite.month,
			Status:         domain.StatusSubmitted,
			EmployeesTotal: 130,
		},
		CompanyName: "华阳针织", Industry: "纺织服装", Town: "河口镇",
	}
	previous := domain.ReportRow{
		MonthlyReport: domain.MonthlyReport{
			CompanyID:      suite.companyID,
			ReportMonth:    suite.month.Prev(),
			Status:         domain.StatusApproved,
			EmployeesTotal: 100,
		},
	}
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month}).
		Return([]domain.ReportRow{current}, nil).Once()
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month.Prev()}).
		Return([]domain.ReportRow{previous}, nil).Once()

	rows, err := suite.service.ListForReview(ctx, suite.reviewerAuth, suite.month)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.True(rows[0].Warning.Flagged)
	suite.InDelta(0.30, rows[0].Warning.ChangePercent, 1e-9)
	suite.NotEmpty(rows[0].Warning.Detail)
}

func (suite *ReportServiceTestSuite) TestListForReview_NoWarningOnceApproved() {
	ctx := context.Background()
	current := domain.ReportRow{
		MonthlyReport: domain.MonthlyReport{
			CompanyID:      suite.companyID,
			ReportMonth:    suite.month,
			Status:         domain.StatusApproved,
			EmployeesTotal: 200,
		},
	}
	previous := domain.ReportRow{
		MonthlyReport: domain.MonthlyReport{
			CompanyID:      suite.companyID,
			ReportMonth:    suite.month.Prev(),
			Status:         domain.StatusApproved,
			EmployeesTotal: 100,
		},
	}
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month}).
		Return([]domain.ReportRow{current}, nil).Once()
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month.Prev()}).
		Return([]domain.ReportRow{previous}, nil).Once()

	rows, err := suite.service.ListForReview(ctx, suite.reviewerAuth, suite.month)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.False(rows[0].Warning.Flagged)
	suite.Empty(rows[0].Warning.Detail)
}

func (suite *ReportServiceTestSuite) TestListForReview_FiltersScope() {
	ctx := context.Background()
	otherCompany := uuid.NewString()
	rows := []domain.ReportRow{
		{MonthlyReport: domain.MonthlyReport{CompanyID: suite.companyID, ReportMonth: suite.month, Status: domain.StatusSubmitted}},
		{MonthlyReport: domain.MonthlyReport{CompanyID: otherCompany, ReportMonth: suite.month, Status: domain.StatusSubmitted}},
	}
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month}).
		Return(rows, nil).Once()
	suite.mockReportRepo.On("ListReportRows", mock.Anything, domain.StatsFilter{Month: suite.month.Prev()}).
		Return([]domain.ReportRow{}, nil).Once()

	scoped := domain.Authorization{
		UserID: uuid.NewString(),
		Role:   domain.RoleTownReviewer,
		Scope:  domain.ReviewerScope{Companies: map[string]struct{}{suite.companyID: {}}},
	}

	result, err := suite.service.ListForReview(ctx, scoped, suite.month)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(suite.companyID, result[0].Report.CompanyID)
}

func (suite *ReportServiceTestSuite) TestListForReview_ForbiddenForEnterprise() {
	ctx := context.Background()

	_, err := suite.service.ListForReview(ctx, suite.enterpriseAuth, suite.month)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
