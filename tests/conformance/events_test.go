package conformance_test

import (
	"net/http"
	"testing"
)

func TestEventCatalog(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/v1/events", nil)
	mustStatus(t, resp, http.StatusOK)
	list := readJSON(t, resp)
	results, _ := list["results"].([]any)
	if len(results) == 0 {
		t.Fatal("event catalog is empty")
	}
	first, _ := results[0].(map[string]any)
	assertFieldPresent(t, first, "id")
	assertFieldPresent(t, first, "name")
	assertFieldPresent(t, first, "category")
}

func TestEventCatalogByCategory(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/v1/events/by-category", nil)
	mustStatus(t, resp, http.StatusOK)
	grouped := readJSON(t, resp)

	for _, category := range []string{"email", "form", "page", "cta", "marketing", "custom"} {
		assertFieldPresent(t, grouped, category)
	}
	if custom, _ := grouped["custom"].([]any); len(custom) != 0 {
		t.Errorf("custom category = %v, want empty", grouped["custom"])
	}
}

func TestEventResolution(t *testing.T) {
	// Catalog entry.
	resp := doRequest(t, http.MethodGet, "/v1/events/email_open", nil)
	mustStatus(t, resp, http.StatusOK)
	body := readJSON(t, resp)
	assertStringField(t, body, "displayName", "Email Open")

	// Valid custom event: derived display name, never a 404.
	resp = doRequest(t, http.MethodGet, "/v1/events/pe12345_account_login", nil)
	mustStatus(t, resp, http.StatusOK)
	body = readJSON(t, resp)
	assertStringField(t, body, "displayName", "Account Login")
	if custom, _ := body["customEvent"].(bool); !custom {
		t.Error("customEvent = false, want true")
	}

	// Unknown identifier passes through unchanged.
	resp = doRequest(t, http.MethodGet, "/v1/events/mystery_event", nil)
	mustStatus(t, resp, http.StatusOK)
	body = readJSON(t, resp)
	assertStringField(t, body, "displayName", "mystery_event")
}

func TestEventNameValidation(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"pe12345_account_login", true},
		{"PE12345_account_login", false},
		{"pe12345_", false},
	}
	for _, tt := range tests {
		resp := doRequest(t, http.MethodPost, "/v1/events/validate", map[string]any{"name": tt.name})
		mustStatus(t, resp, http.StatusOK)
		body := readJSON(t, resp)
		if got, _ := body["valid"].(bool); got != tt.valid {
			t.Errorf("%q: valid = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestTemplateCatalog(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/v1/templates", nil)
	mustStatus(t, resp, http.StatusOK)
	list := readJSON(t, resp)
	if total, _ := list["total"].(float64); total == 0 {
		t.Fatal("template catalog is empty")
	}

	resp = doRequest(t, http.MethodGet, "/v1/templates/loan_application", nil)
	mustStatus(t, resp, http.StatusOK)
	tpl := readJSON(t, resp)
	assertStringField(t, tpl, "name", "Loan Application")

	resp = doRequest(t, http.MethodGet, "/v1/templates/nope", nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertError(t, readJSON(t, resp), "OBJECT_NOT_FOUND")
}
