package domain

import "time"

// AuditAction enumerates the sensitive administrative actions that produce an
// audit log entry. CREATE_MANAGER, RESET_PASSWORD and CHANGE_OWN_PASSWORD are
// emitted by the external account-management collaborator through the same
// recorder.
type AuditAction string

const (
	ActionCreateEnterprise  AuditAction = "CREATE_ENTERPRISE"
	ActionUpdateEnterprise  AuditAction = "UPDATE_ENTERPRISE"
	ActionCreateManager     AuditAction = "CREATE_MANAGER"
	ActionResetPassword     AuditAction = "RESET_PASSWORD"
	ActionChangeOwnPassword AuditAction = "CHANGE_OWN_PASSWORD"
	ActionEditReportData    AuditAction = "EDIT_REPORT_DATA"
	ActionRejectReport      AuditAction = "REJECT_REPORT"
)

// AuditLogEntry is the immutable record of one administrative action.
type AuditLogEntry struct {
	EntryID         string         `json:"entryID"`
	ActorID         string         `json:"actorID"`
	Action          AuditAction    `json:"action"`
	TargetCompanyID *string        `json:"targetCompanyID,omitempty"`
	TargetUserID    *string        `json:"targetUserID,omitempty"`
	Detail          map[string]any `json:"detail"`
	CreatedAt       time.Time      `json:"createdAt"`
}
