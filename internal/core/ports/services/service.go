package services

// ServiceProvider bundles the service facades handed to the HTTP layer.
type ServiceProvider struct {
	Company CompanySvcFacade
	Report  ReportSvcFacade
	Stats   StatsSvcFacade
	Audit   AuditSvcFacade
}
