package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewTwilioNotifierRequiresConfig(t *testing.T) {
	if _, err := NewTwilioNotifier("", "token", "+1"); err == nil {
		t.Error("missing account SID must be rejected")
	}
	if _, err := NewTwilioNotifier("sid", "", "+1"); err == nil {
		t.Error("missing auth token must be rejected")
	}
	if _, err := NewTwilioNotifier("sid", "token", ""); err == nil {
		t.Error("missing from number must be rejected")
	}
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _, gotAuth = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	n, err := NewTwilioNotifier("AC123", "secret", "+10000000000")
	if err != nil {
		t.Fatal(err)
	}
	n.baseURL = server.URL

	if err := n.Send(context.Background(), "+213555000111", "test message"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %s", gotPath)
	}
	if !gotAuth {
		t.Error("basic auth missing")
	}
	if gotFrom != "+10000000000" || gotTo != "+213555000111" || gotBody != "test message" {
		t.Errorf("form values wrong: from=%s to=%s body=%s", gotFrom, gotTo, gotBody)
	}
}

func TestTwilioSendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authenticate"}`))
	}))
	defer server.Close()

	n, err := NewTwilioNotifier("AC123", "wrong", "+10000000000")
	if err != nil {
		t.Fatal(err)
	}
	n.baseURL = server.URL

	sendErr := n.Send(context.Background(), "+213555000111", "test")
	if sendErr == nil {
		t.Fatal("non-2xx response must be an error")
	}
	if !strings.Contains(sendErr.Error(), "Authenticate") {
		t.Errorf("error should carry the response body: %v", sendErr)
	}
}
