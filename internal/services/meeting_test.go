package services

import (
	"testing"
)

func TestMeetingLoadOrdersByDateThenTime(t *testing.T) {
	db := setupServiceDB(t)
	sc := seedScope(t, db, "reunioes@test")
	svc := NewMeetingService(db)

	drafts := []MeetingDraft{
		{Title: "Tarde do dia 2", Date: "2026-01-02", Time: "15:00"},
		{Title: "Manhã do dia 1", Date: "2026-01-01", Time: "09:00"},
		{Title: "Manhã do dia 2", Date: "2026-01-02", Time: "08:30"},
	}
	for _, d := range drafts {
		if err := svc.Submit(sc, 0, d); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	meetings, err := svc.Load(sc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Manhã do dia 1", "Manhã do dia 2", "Tarde do dia 2"}
	for i, w := range want {
		if meetings[i].Title != w {
			t.Fatalf("position %d: expected %q got %q", i, w, meetings[i].Title)
		}
	}
}

func TestMeetingSubmitEditOverwritesDraft(t *testing.T) {
	db := setupServiceDB(t)
	sc := seedScope(t, db, "reunioes@test")
	svc := NewMeetingService(db)

	if err := svc.Submit(sc, 0, MeetingDraft{Title: "Kickoff", Description: "primeira conversa", Pauta: "apresentação\nescopo", Date: "2026-02-01", Time: "10:00"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	meetings, _ := svc.Load(sc)
	id := meetings[0].ID

	// Clearing description and pauta on edit must erase them.
	if err := svc.Submit(sc, id, MeetingDraft{Title: "Kickoff remarcado", Date: "2026-02-03", Time: "14:00"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	meetings, _ = svc.Load(sc)
	if len(meetings) != 1 {
		t.Fatalf("edit must not create a new row")
	}
	m := meetings[0]
	if m.Title != "Kickoff remarcado" || m.Description != "" || m.Pauta != "" || m.Date != "2026-02-03" || m.Time != "14:00" {
		t.Fatalf("expected full overwrite, got %#v", m)
	}
}

func TestMeetingPreloadsClient(t *testing.T) {
	db := setupServiceDB(t)
	sc := seedScope(t, db, "reunioes@test")
	svc := NewMeetingService(db)

	client := NewClientService(db)
	if err := client.Submit(sc, 0, ClientDraft{Name: "Maria"}); err != nil {
		t.Fatalf("client: %v", err)
	}
	clients, _ := client.Load(sc)
	if err := svc.Submit(sc, 0, MeetingDraft{Title: "Alinhamento", Date: "2026-02-01", Time: "10:00", ClientID: &clients[0].ID}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	meetings, _ := svc.Load(sc)
	if meetings[0].Client == nil || meetings[0].Client.Name != "Maria" {
		t.Fatalf("expected preloaded client, got %#v", meetings[0].Client)
	}
}
