package models

import "time"

/* =============================== Enums ================================== */

// Role defines the type of user in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleClient Role = "client"
)

// ClientType classifies a client account.
type ClientType string

const (
	ClientPatient ClientType = "patient"
	ClientStudent ClientType = "student"
	ClientVisitor ClientType = "visitor"
)

// UserStatus marks whether an account may log in.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// CaseType selects the institution-facing branch of a case's lifecycle.
type CaseType string

const (
	CaseMedical  CaseType = "medical"
	CaseAcademic CaseType = "academic"
)

// CaseStatus defines lifecycle states for a case. The tracked order is
// new → review → pending → approved → under_treatment|under_admission →
// completed; closed is a terminal administrative state past the tracked path.
type CaseStatus string

const (
	CaseNew            CaseStatus = "new"
	CaseReview         CaseStatus = "review"
	CasePending        CaseStatus = "pending"
	CaseApproved       CaseStatus = "approved"
	CaseUnderTreatment CaseStatus = "under_treatment"
	CaseUnderAdmission CaseStatus = "under_admission"
	CaseCompleted      CaseStatus = "completed"
	CaseClosed         CaseStatus = "closed"
)

// InvoiceStatus defines lifecycle states for an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// NotificationType is the severity/kind shown to the user.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// ContractStatus defines lifecycle states for a contract.
type ContractStatus string

const (
	ContractDraft    ContractStatus = "draft"
	ContractActive   ContractStatus = "active"
	ContractExpired  ContractStatus = "expired"
	ContractArchived ContractStatus = "archived"
)

/* =============================== Entities =============================== */

// User represents an admin, agent, or client account.
//
// Password is stored in plaintext and compared verbatim at login; the demo
// fixtures rely on this, and credential hardening is out of scope.
type User struct {
	ID         string     `json:"id"`
	Role       Role       `json:"role"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Phone      string     `json:"phone,omitempty"`
	ClientType ClientType `json:"client_type,omitempty"`
	Country    string     `json:"country,omitempty"`
	Status     UserStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Case tracks a client's medical treatment or academic admission process.
// Hospital is set only for medical cases, University only for academic ones.
type Case struct {
	CaseID             string     `json:"case_id"`
	ClientID           string     `json:"client_id"`
	AgentID            string     `json:"agent_id,omitempty"`
	Type               CaseType   `json:"type"`
	Status             CaseStatus `json:"status"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	EstimatedCostCents int64      `json:"estimated_cost_cents,omitempty"`
	Hospital           string     `json:"hospital,omitempty"`
	University         string     `json:"university,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Document is the metadata of an uploaded file. Records are immutable once
// created except for deletion; file content itself is not retained.
type Document struct {
	DocID        string    `json:"doc_id"`
	CaseID       string    `json:"case_id"`
	UploaderID   string    `json:"uploader_id"`
	UploaderRole Role      `json:"uploader_role"`
	Type         string    `json:"type"`
	Filename     string    `json:"filename"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Invoice bills a client for a case. Amounts are stored in cents to avoid
// float issues.
type Invoice struct {
	InvoiceID   string        `json:"invoice_id"`
	CaseID      string        `json:"case_id"`
	ClientID    string        `json:"client_id"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      InvoiceStatus `json:"status"`
	Description string        `json:"description"`
	IssuedAt    time.Time     `json:"issued_at"`
	DueDate     time.Time     `json:"due_date"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
}

// Message is a direct message between two users, optionally tied to a case.
type Message struct {
	MsgID      string    `json:"msg_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	CaseID     string    `json:"case_id,omitempty"`
	Text       string    `json:"text"`
	Read       bool      `json:"read"`
	SentAt     time.Time `json:"sent_at"`
}

// Notification is a per-user in-app notice.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// Contract is a service agreement between a client, an agent, and the
// platform for a case.
type Contract struct {
	ContractID string         `json:"contract_id"`
	CaseID     string         `json:"case_id"`
	ClientID   string         `json:"client_id"`
	AgentID    string         `json:"agent_id,omitempty"`
	Type       CaseType       `json:"type"`
	Status     ContractStatus `json:"status"`
	Title      string         `json:"title"`
	Terms      string         `json:"terms"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	CreatedAt  time.Time      `json:"created_at"`
	ArchivedAt *time.Time     `json:"archived_at,omitempty"`
}

// CaseHistory is an audit log entry for case status changes.
type CaseHistory struct {
	ID        string     `json:"id"`
	CaseID    string     `json:"case_id"`
	ActorID   string     `json:"actor_id"`
	Action    string     `json:"action"` // e.g. created, status_changed, forced_status
	OldStatus CaseStatus `json:"old_status,omitempty"`
	NewStatus CaseStatus `json:"new_status,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
