package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_GetInstitutions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/institution" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing or wrong api key header: %q", r.Header.Get("x-api-key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"inst-1","name":"Banco Alpha","status":true},{"id":"inst-2","name":"Banco Beta","status":false}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	institutions, err := client.GetInstitutions(context.Background())
	if err != nil {
		t.Fatalf("GetInstitutions() failed: %v", err)
	}
	if len(institutions) != 2 {
		t.Fatalf("GetInstitutions() returned %d entries, want 2", len(institutions))
	}
	if institutions[0].ID != "inst-1" || institutions[0].Name != "Banco Alpha" || !institutions[0].Status {
		t.Errorf("unexpected first institution: %+v", institutions[0])
	}
	if institutions[1].Status {
		t.Error("second institution should be inactive")
	}
}

func TestClient_GetConsent_FieldMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/consents/consent-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"_id": "consent-1",
			"institutionId": "inst-1",
			"customerId": "cust-1",
			"permissions": ["ACCOUNTS_READ", "TRANSACTIONS_READ"],
			"status": "ACTIVE",
			"expiresAt": "2027-01-01T00:00:00Z"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	c, err := client.GetConsent(context.Background(), "consent-1")
	if err != nil {
		t.Fatalf("GetConsent() failed: %v", err)
	}
	if c.ID != "consent-1" {
		t.Errorf("ID = %q, want consent-1", c.ID)
	}
	if c.CustomerID != "cust-1" {
		t.Errorf("CustomerID = %q, want cust-1", c.CustomerID)
	}
	if len(c.Permissions) != 2 {
		t.Errorf("Permissions = %v, want 2 entries", c.Permissions)
	}
}

func TestClient_HTTPErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	_, err := client.GetConsent(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetConsent() expected error for 404 response")
	}

	status, ok := HTTPStatus(err)
	if !ok {
		t.Fatalf("HTTPStatus() did not classify error: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("HTTPStatus() = %d, want %d", status, http.StatusNotFound)
	}
	if IsTimeout(err) {
		t.Error("IsTimeout() true for HTTP status error")
	}
}

func TestClient_TimeoutClassification(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	client := NewClient(server.URL, "test-key", 50*time.Millisecond)

	_, err := client.GetInstitutions(context.Background())
	if err == nil {
		t.Fatal("GetInstitutions() expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout() = false for slow provider, err = %v", err)
	}
	if _, ok := HTTPStatus(err); ok {
		t.Error("HTTPStatus() classified a timeout as an HTTP error")
	}
}

func TestClient_NetworkErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "test-key", time.Second)

	_, err := client.GetInstitutions(context.Background())
	if err == nil {
		t.Fatal("GetInstitutions() expected error against closed server")
	}
	if IsTimeout(err) {
		t.Errorf("IsTimeout() = true for connection failure, err = %v", err)
	}
	if _, ok := HTTPStatus(err); ok {
		t.Error("HTTPStatus() classified a connection failure as an HTTP error")
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", time.Second)

	_, err := client.GetInstitutions(context.Background())
	if err == nil {
		t.Fatal("GetInstitutions() expected error for malformed JSON")
	}
}
