package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myanycart/anycart-go/internal/model"
)

func TestUpdateMeMultipartFields(t *testing.T) {
	var gotFirst, gotAvatar string
	var lastSent bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error: %v", err)
		}
		gotFirst = r.FormValue("first_name")
		_, lastSent = r.MultipartForm.Value["last_name"]
		gotAvatar = r.FormValue("avatar")
		w.Write([]byte(`{"id":1,"email":"a@b.c","first_name":"Ana"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	first := "Ana"
	me, err := client.UpdateMe(context.Background(), model.UpdateMeRequest{
		FirstName:    &first,
		RemoveAvatar: true,
	})
	if err != nil {
		t.Fatalf("UpdateMe() unexpected error: %v", err)
	}
	if gotFirst != "Ana" {
		t.Errorf("first_name = %q, want Ana", gotFirst)
	}
	if lastSent {
		t.Error("last_name sent although unset")
	}
	if gotAvatar != "" {
		t.Errorf("avatar = %q, want explicit empty value", gotAvatar)
	}
	if me.FirstName != "Ana" {
		t.Errorf("me = %+v", me)
	}
}

func TestUpdateMeAvatarUpload(t *testing.T) {
	var gotFilename string
	var gotContent []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("avatar")
		if err != nil {
			t.Errorf("FormFile() error: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		buf := make([]byte, header.Size)
		file.Read(buf)
		gotContent = buf
		w.Write([]byte(`{"id":1,"email":"a@b.c"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	_, err := client.UpdateMe(context.Background(), model.UpdateMeRequest{
		Avatar: &model.AvatarUpload{Filename: "me.png", Content: []byte("png-bytes")},
	})
	if err != nil {
		t.Fatalf("UpdateMe() unexpected error: %v", err)
	}
	if gotFilename != "me.png" {
		t.Errorf("filename = %q, want me.png", gotFilename)
	}
	if string(gotContent) != "png-bytes" {
		t.Errorf("content = %q", gotContent)
	}
}

func TestSendConfirmationEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"detail":"confirmation email sent"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL)
	sessions.Set(model.Session{Access: "a", Refresh: "r"})

	detail, err := client.SendConfirmationEmail(context.Background())
	if err != nil {
		t.Fatalf("SendConfirmationEmail() unexpected error: %v", err)
	}
	if detail != "confirmation email sent" {
		t.Errorf("detail = %q", detail)
	}
}
