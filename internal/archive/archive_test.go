package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tilmock/cefr-backend/internal/scoring"
)

func sampleReport() *scoring.Report {
	key := map[string][]string{"part1": {"fifteen", "true"}}
	layout := scoring.Layout{
		Format: "sample",
		Sections: []scoring.SectionSpec{
			{Name: "part1", SourceGroup: "part1", Offset: 0, Length: -1, Mode: scoring.CaseInsensitive, Label: "Part 1"},
		},
	}
	return layout.Score(key, map[string][]string{"part1": {"Fifteen", "false"}})
}

func TestRenderReviewHTML(t *testing.T) {
	rep := sampleReport()
	meta := SubmissionMeta{
		UserID:      12,
		Username:    "aziza",
		Email:       "aziza@example.com",
		MockID:      3,
		ModuleTitle: "CEFR Reading",
		SubmittedAt: time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC),
	}

	body, err := RenderReviewHTML(rep, meta, map[string]string{"part1": "Part 1"},
		map[string][]string{"part1": {"Gap 1 from the text"}})
	if err != nil {
		t.Fatalf("RenderReviewHTML: %v", err)
	}

	html := string(body)
	for _, want := range []string{
		"Part 1: 1/2",
		"Gap 1 from the text",
		"Part 1 question 2",
		"aziza@example.com",
		"2026-04-02 09:30:00 UTC",
		"1/2",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
	if !strings.Contains(html, "qa-card ok") || !strings.Contains(html, "qa-card bad") {
		t.Error("expected one correct and one incorrect card")
	}
}

func TestTelegramSendDocument(t *testing.T) {
	var gotChatID, gotCaption string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendDocument") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewTelegramClient("test-token")
	c.baseURL = srv.URL

	err := c.SendDocument(context.Background(), Document{
		ChatID:   "-100200300",
		Filename: "review.html",
		Caption:  "score 1/2",
		MimeType: "text/html",
		Body:     []byte("<html></html>"),
	})
	if err != nil {
		t.Fatalf("SendDocument: %v", err)
	}
	if gotChatID != "-100200300" || gotCaption != "score 1/2" {
		t.Errorf("server saw chat_id=%q caption=%q", gotChatID, gotCaption)
	}
}

func TestTelegramSendDocumentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewTelegramClient("test-token")
	c.baseURL = srv.URL

	if err := c.SendDocument(context.Background(), Document{ChatID: "x", Filename: "f", Body: []byte("b")}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestTelegramMissingConfig(t *testing.T) {
	c := NewTelegramClient("")
	if err := c.SendDocument(context.Background(), Document{ChatID: "x"}); err == nil {
		t.Fatal("expected error when token missing")
	}

	c = NewTelegramClient("token")
	if err := c.SendDocument(context.Background(), Document{}); err == nil {
		t.Fatal("expected error when chat id missing")
	}
}
