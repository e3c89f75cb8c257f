package domain

// Role is the coarse principal kind supplied by the authorization
// collaborator.
type Role string

const (
	RoleEnterprise   Role = "ENTERPRISE"
	RoleTownReviewer Role = "TOWN_REVIEWER"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// ReviewerScope limits a reviewer to a set of assigned companies. All short-
// circuits the set.
type ReviewerScope struct {
	All       bool
	Companies map[string]struct{}
}

// Allows reports whether the scope covers companyID.
func (s ReviewerScope) Allows(companyID string) bool {
	if s.All {
		return true
	}
	_, ok := s.Companies[companyID]
	return ok
}

// Authorization is the acting principal's capability, checked once at each
// service entry point.
type Authorization struct {
	UserID    string
	Role      Role
	CompanyID string        // bound company, ENTERPRISE only
	Scope     ReviewerScope // assigned companies, reviewer roles only
}

// IsReviewer reports whether the principal holds a reviewer role.
func (a Authorization) IsReviewer() bool {
	return a.Role == RoleTownReviewer || a.Role == RoleSuperAdmin
}

// CanSubmitFor reports whether the principal may file for companyID.
func (a Authorization) CanSubmitFor(companyID string) bool {
	return a.Role == RoleEnterprise && a.CompanyID == companyID
}

// CanReview reports whether the principal may approve or reject reports of
// companyID.
func (a Authorization) CanReview(companyID string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.Role == RoleTownReviewer && a.Scope.Allows(companyID)
}
