package store

import (
	"time"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// Seed loads the static demo fixtures: one admin, two agents, three clients,
// a handful of cases in various stages, and sample invoices, contracts,
// messages, and notifications. Credentials are plaintext on purpose; this is
// demo data, not an account system.
func (s *Store) Seed() {
	admin := s.AddUser(UserInput{
		Role: models.RoleAdmin, Name: "System Admin",
		Email: "admin@sudindconnect.com", Password: "admin123",
		Country: "IN",
	})
	agentMed := s.AddUser(UserInput{
		Role: models.RoleAgent, Name: "Rajesh Kumar",
		Email: "rajesh@sudindconnect.com", Password: "agent123",
		Phone: "+91 98765 43210", Country: "IN",
	})
	agentAcad := s.AddUser(UserInput{
		Role: models.RoleAgent, Name: "Priya Sharma",
		Email: "priya@sudindconnect.com", Password: "agent123",
		Phone: "+91 91234 56789", Country: "IN",
	})
	patient := s.AddUser(UserInput{
		Role: models.RoleClient, Name: "Ahmed Hassan",
		Email: "ahmed@example.com", Password: "client123",
		Phone: "+249 912 345 678", ClientType: models.ClientPatient, Country: "SD",
	})
	student := s.AddUser(UserInput{
		Role: models.RoleClient, Name: "Fatima Osman",
		Email: "fatima@example.com", Password: "client123",
		Phone: "+249 923 456 789", ClientType: models.ClientStudent, Country: "SD",
	})
	visitor := s.AddUser(UserInput{
		Role: models.RoleClient, Name: "Omar Ibrahim",
		Email: "omar@example.com", Password: "client123",
		ClientType: models.ClientVisitor, Country: "SD",
	})

	medCase, _ := s.AddCase(CaseInput{
		ClientID: patient.ID, AgentID: agentMed.ID, Type: models.CaseMedical,
		Title:       "Cardiac surgery consultation",
		Description: "Patient requires bypass surgery evaluation and hospital admission in Chennai.",
		Hospital:    "Apollo Hospitals, Chennai", EstimatedCostCents: 850000_00,
	}, admin.ID)
	_, _ = s.UpdateCaseStatus(medCase.CaseID, models.CaseReview, agentMed.ID, false)

	acadCase, _ := s.AddCase(CaseInput{
		ClientID: student.ID, AgentID: agentAcad.ID, Type: models.CaseAcademic,
		Title:       "B.Tech admission, computer science",
		Description: "Undergraduate admission including visa sponsorship letter and hostel allocation.",
		University:  "VIT Vellore", EstimatedCostCents: 320000_00,
	}, admin.ID)
	_, _ = s.UpdateCaseStatus(acadCase.CaseID, models.CaseReview, agentAcad.ID, false)
	_, _ = s.UpdateCaseStatus(acadCase.CaseID, models.CasePending, agentAcad.ID, false)

	// Unassigned case sitting in the agent pool.
	_, _ = s.AddCase(CaseInput{
		ClientID: visitor.ID, Type: models.CaseMedical,
		Title:       "Orthopedic follow-up visit",
		Description: "Second opinion on knee replacement. Reachable at omar@example.com.",
		Hospital:    "Fortis Hospital, Bengaluru",
	}, visitor.ID)

	inv, _ := s.AddInvoice(InvoiceInput{
		CaseID: medCase.CaseID, ClientID: patient.ID,
		AmountCents: 50000_00, Currency: "INR",
		Description: "Initial consultation and records review",
		DueDate:     s.now().Add(14 * 24 * time.Hour),
	})
	_, _ = s.AddInvoice(InvoiceInput{
		CaseID: acadCase.CaseID, ClientID: student.ID,
		AmountCents: 15000_00, Currency: "INR",
		Description: "Application processing fee",
		DueDate:     s.now().Add(-48 * time.Hour), // already past due; sweep will flag it
	})

	_, _ = s.AddContract(ContractInput{
		CaseID: medCase.CaseID, ClientID: patient.ID, AgentID: agentMed.ID,
		Type: models.CaseMedical, Title: "Medical coordination agreement",
		Terms:     "Coordination of treatment, travel, and hospital liaison services.",
		StartDate: s.now(), EndDate: s.now().Add(180 * 24 * time.Hour),
	})

	s.AddMessage(MessageInput{
		SenderID: agentMed.ID, ReceiverID: patient.ID, CaseID: medCase.CaseID,
		Text: "Welcome aboard. Please upload your latest cardiology reports.",
	})
	s.AddNotification(NotificationInput{
		UserID: patient.ID, Title: "Invoice issued",
		Message: "Invoice " + inv.InvoiceID + " has been issued for your case.",
		Type:    models.NotifyInfo,
	})
	s.AddNotification(NotificationInput{
		UserID: student.ID, Title: "Documents required",
		Message: "Your case is pending: transcripts and passport scan are required.",
		Type:    models.NotifyWarning,
	})
}
