package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/lifecycle"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

func newCase(t *testing.T, s *Store, typ models.CaseType) models.Case {
	t.Helper()
	c, err := s.AddCase(CaseInput{
		ClientID: "client-1", AgentID: "agent-1", Type: typ,
		Title: "Test case", Description: "desc",
	}, "admin-1")
	if err != nil {
		t.Fatalf("AddCase: %v", err)
	}
	return c
}

func Test_AddCase_SequentialIDs_AcrossTypes(t *testing.T) {
	s := New()

	want := []string{"MED-001", "ACAD-001", "MED-002", "MED-003", "ACAD-002"}
	types := []models.CaseType{
		models.CaseMedical, models.CaseAcademic,
		models.CaseMedical, models.CaseMedical, models.CaseAcademic,
	}
	for i, typ := range types {
		c := newCase(t, s, typ)
		if c.CaseID != want[i] {
			t.Fatalf("case %d: got %s, want %s", i, c.CaseID, want[i])
		}
	}
}

func Test_AddCase_InitialState(t *testing.T) {
	s := New()
	c := newCase(t, s, models.CaseMedical)

	if ok, _ := regexp.MatchString(`^MED-\d{3}$`, c.CaseID); !ok {
		t.Fatalf("case id %q does not match MED-\\d{3}", c.CaseID)
	}
	if c.Status != models.CaseNew {
		t.Fatalf("status = %s, want new", c.Status)
	}
	if !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Fatalf("created %v != updated %v", c.CreatedAt, c.UpdatedAt)
	}

	// Creation is audited.
	hist := s.HistoryForCase(c.CaseID)
	if len(hist) != 1 || hist[0].Action != "created" {
		t.Fatalf("want one 'created' history entry, got %#v", hist)
	}
}

func Test_UpdateCase_RefreshesUpdatedAtOnly(t *testing.T) {
	s := New()
	c := newCase(t, s, models.CaseAcademic)

	// Deterministic clock: each call advances by a minute.
	base := c.UpdatedAt
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	title := "Updated title"
	got, err := s.UpdateCase(c.CaseID, CasePatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}
	if got.Title != title {
		t.Fatalf("title not merged: %q", got.Title)
	}
	if !got.UpdatedAt.After(base) {
		t.Fatalf("UpdatedAt %v not refreshed past %v", got.UpdatedAt, base)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Fatal("CreatedAt must never change after creation")
	}

	prev := got.UpdatedAt
	got2, err := s.UpdateCase(c.CaseID, CasePatch{Description: &title})
	if err != nil {
		t.Fatalf("UpdateCase: %v", err)
	}
	if got2.UpdatedAt.Before(prev) {
		t.Fatalf("UpdatedAt went backwards: %v < %v", got2.UpdatedAt, prev)
	}
}

func Test_UpdateCaseStatus_ProgressAtApproved(t *testing.T) {
	s := New()
	c := newCase(t, s, models.CaseMedical)

	got, err := s.UpdateCaseStatus(c.CaseID, models.CaseApproved, "agent-1", false)
	if err != nil {
		t.Fatalf("UpdateCaseStatus: %v", err)
	}
	if got.Status != models.CaseApproved {
		t.Fatalf("status = %s", got.Status)
	}
	if p := lifecycle.ProgressPercent(got.Status, got.Type); p != 67 {
		t.Fatalf("progress = %d, want 67", p)
	}
}

func Test_UpdateCaseStatus_ForwardOnlyUnlessForced(t *testing.T) {
	s := New()
	c := newCase(t, s, models.CaseMedical)

	if _, err := s.UpdateCaseStatus(c.CaseID, models.CaseApproved, "agent-1", false); err != nil {
		t.Fatalf("forward move: %v", err)
	}

	_, err := s.UpdateCaseStatus(c.CaseID, models.CaseNew, "agent-1", false)
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("backward move should fail, got %v", err)
	}

	// Admin override rewinds and is audited as forced.
	got, err := s.UpdateCaseStatus(c.CaseID, models.CaseNew, "admin-1", true)
	if err != nil {
		t.Fatalf("forced move: %v", err)
	}
	if got.Status != models.CaseNew {
		t.Fatalf("status = %s, want new", got.Status)
	}
	hist := s.HistoryForCase(c.CaseID)
	last := hist[len(hist)-1]
	if last.Action != "forced_status" || last.OldStatus != models.CaseApproved || last.NewStatus != models.CaseNew {
		t.Fatalf("unexpected audit entry: %#v", last)
	}
}

func Test_DeleteCase_DoesNotCascade(t *testing.T) {
	s := New()
	c := newCase(t, s, models.CaseMedical)
	s.AddDocument(DocumentInput{CaseID: c.CaseID, UploaderID: "client-1", UploaderRole: models.RoleClient, Filename: "scan.pdf", Size: 10})

	if err := s.DeleteCase(c.CaseID); err != nil {
		t.Fatalf("DeleteCase: %v", err)
	}
	if _, err := s.CaseByID(c.CaseID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("case should be gone, got %v", err)
	}
	// Dependent records are orphaned, not removed.
	if docs := s.DocumentsByCase(c.CaseID); len(docs) != 1 {
		t.Fatalf("documents should remain, got %d", len(docs))
	}
}

func Test_MarkInvoicePaid_Idempotent(t *testing.T) {
	s := New()
	inv, err := s.AddInvoice(InvoiceInput{
		CaseID: "MED-001", ClientID: "client-1",
		AmountCents: 5000, Currency: "INR",
		DueDate: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if inv.InvoiceID != "INV-1001" {
		t.Fatalf("invoice id = %s, want INV-1001", inv.InvoiceID)
	}

	paid, err := s.MarkInvoicePaid(inv.InvoiceID)
	if err != nil {
		t.Fatalf("MarkInvoicePaid: %v", err)
	}
	if paid.Status != models.InvoicePaid || paid.PaidAt == nil {
		t.Fatalf("not marked paid: %#v", paid)
	}

	first := *paid.PaidAt
	base := first
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	again, err := s.MarkInvoicePaid(inv.InvoiceID)
	if err != nil {
		t.Fatalf("second MarkInvoicePaid: %v", err)
	}
	if again.Status != models.InvoicePaid {
		t.Fatalf("status changed on second call: %s", again.Status)
	}
	if !again.PaidAt.After(first) {
		t.Fatalf("PaidAt should be overwritten with the later timestamp")
	}
}

func Test_SweepOverdueInvoices(t *testing.T) {
	s := New()
	now := time.Now().UTC()
	late, _ := s.AddInvoice(InvoiceInput{CaseID: "MED-001", ClientID: "c", AmountCents: 100, Currency: "INR", DueDate: now.Add(-time.Hour)})
	onTime, _ := s.AddInvoice(InvoiceInput{CaseID: "MED-001", ClientID: "c", AmountCents: 100, Currency: "INR", DueDate: now.Add(time.Hour)})
	paid, _ := s.AddInvoice(InvoiceInput{CaseID: "MED-001", ClientID: "c", AmountCents: 100, Currency: "INR", DueDate: now.Add(-time.Hour)})
	_, _ = s.MarkInvoicePaid(paid.InvoiceID)

	if n := s.SweepOverdueInvoices(now); n != 1 {
		t.Fatalf("sweep flipped %d invoices, want 1", n)
	}
	got, _ := s.InvoiceByID(late.InvoiceID)
	if got.Status != models.InvoiceOverdue {
		t.Fatalf("late invoice = %s, want overdue", got.Status)
	}
	got, _ = s.InvoiceByID(onTime.InvoiceID)
	if got.Status != models.InvoicePending {
		t.Fatalf("on-time invoice = %s, want pending", got.Status)
	}
	got, _ = s.InvoiceByID(paid.InvoiceID)
	if got.Status != models.InvoicePaid {
		t.Fatalf("paid invoice = %s, want paid", got.Status)
	}
}

func Test_ArchiveContract_TwiceRestamps(t *testing.T) {
	s := New()
	ct, err := s.AddContract(ContractInput{
		CaseID: "MED-001", ClientID: "client-1", Type: models.CaseMedical,
		Title: "Agreement", StartDate: time.Now(), EndDate: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("AddContract: %v", err)
	}
	if ct.ContractID != "CNT-001" || ct.Status != models.ContractDraft {
		t.Fatalf("unexpected contract: %#v", ct)
	}

	first, err := s.ArchiveContract(ct.ContractID)
	if err != nil || first.Status != models.ContractArchived || first.ArchivedAt == nil {
		t.Fatalf("first archive: %#v (%v)", first, err)
	}

	base := *first.ArchivedAt
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	second, err := s.ArchiveContract(ct.ContractID)
	if err != nil || second.Status != models.ContractArchived {
		t.Fatalf("second archive: %#v (%v)", second, err)
	}
	if !second.ArchivedAt.After(*first.ArchivedAt) {
		t.Fatal("second archive should restamp ArchivedAt")
	}
}

func Test_ClientsOfAgent_Deduplicates(t *testing.T) {
	s := New()
	agent := s.AddUser(UserInput{Role: models.RoleAgent, Name: "A", Email: "a@x.com", Password: "p"})
	c1 := s.AddUser(UserInput{Role: models.RoleClient, Name: "C1", Email: "c1@x.com", Password: "p"})
	c2 := s.AddUser(UserInput{Role: models.RoleClient, Name: "C2", Email: "c2@x.com", Password: "p"})

	for _, clientID := range []string{c1.ID, c1.ID, c2.ID} {
		if _, err := s.AddCase(CaseInput{
			ClientID: clientID, AgentID: agent.ID,
			Type: models.CaseMedical, Title: "t",
		}, agent.ID); err != nil {
			t.Fatalf("AddCase: %v", err)
		}
	}

	clients := s.ClientsOfAgent(agent.ID)
	if len(clients) != 2 {
		t.Fatalf("want 2 distinct clients, got %d", len(clients))
	}
	if clients[0].ID != c1.ID || clients[1].ID != c2.ID {
		t.Fatalf("unexpected order: %s, %s", clients[0].Name, clients[1].Name)
	}
}

func Test_Messages_ReadFlow(t *testing.T) {
	s := New()
	m := s.AddMessage(MessageInput{SenderID: "a", ReceiverID: "b", Text: "hi"})
	if m.Read {
		t.Fatal("messages are created unread")
	}
	if n := s.UnreadMessageCount("b"); n != 1 {
		t.Fatalf("unread = %d, want 1", n)
	}
	if _, err := s.MarkMessageRead(m.MsgID); err != nil {
		t.Fatalf("MarkMessageRead: %v", err)
	}
	if n := s.UnreadMessageCount("b"); n != 0 {
		t.Fatalf("unread = %d, want 0", n)
	}
	if conv := s.Conversation("b", "a"); len(conv) != 1 {
		t.Fatalf("conversation len = %d", len(conv))
	}
}

func Test_Seed_LoadsFixtures(t *testing.T) {
	s := New()
	s.Seed()

	if _, err := s.UserByEmail("admin@sudindconnect.com"); err != nil {
		t.Fatalf("admin fixture missing: %v", err)
	}
	if n := len(s.Cases()); n != 3 {
		t.Fatalf("want 3 seeded cases, got %d", n)
	}
	if n := len(s.UnassignedCases()); n != 1 {
		t.Fatalf("want 1 pooled case, got %d", n)
	}
	if n := len(s.Invoices()); n != 2 {
		t.Fatalf("want 2 seeded invoices, got %d", n)
	}
}
