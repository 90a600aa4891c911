package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"health-risk-predictor/internal/platform/telegram"
)

func TestClient_SendMessage(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN").WithAPIURL(srv.URL)
	if err := c.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if got["chat_id"] != 42.0 || got["text"] != "hello" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestClient_SendDocument(t *testing.T) {
	var (
		chatID   string
		caption  string
		fileName string
		content  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendDocument" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		chatID = r.FormValue("chat_id")
		caption = r.FormValue("caption")
		f, hdr, err := r.FormFile("document")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		fileName = hdr.Filename
		b, _ := io.ReadAll(f)
		content = string(b)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN").WithAPIURL(srv.URL + "/")
	err := c.SendDocument(context.Background(), -100, []byte("%PDF-1.4"), "report.pdf", "Risk report")
	if err != nil {
		t.Fatalf("send document: %v", err)
	}
	if chatID != "-100" || caption != "Risk report" || fileName != "report.pdf" || content != "%PDF-1.4" {
		t.Fatalf("got chat=%q caption=%q file=%q content=%q", chatID, caption, fileName, content)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("TOKEN").WithAPIURL(srv.URL)
	err := c.SendMessage(context.Background(), 1, "x")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("error = %v, want telegram description", err)
	}
}
