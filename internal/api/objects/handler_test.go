package objects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"schemaforge/internal/api/objects"
	"schemaforge/internal/coordinator"
	"schemaforge/internal/database"
	"schemaforge/internal/domain"
	"schemaforge/internal/persist"
	"schemaforge/internal/store"
	"schemaforge/internal/testhelpers"
)

func setupServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := store.New(db)
	coord := coordinator.New(s, persist.Local{})

	mux := http.NewServeMux()
	objects.RegisterRoutes(mux, s, coord)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, s
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCreateAndGetObject(t *testing.T) {
	srv, _ := setupServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/objects", map[string]any{
		"label": "Loan Application",
		"fields": []map[string]any{
			{"name": "Amount", "type": "number", "required": true},
			{"name": "Loan Type", "type": "enum", "options": []string{"mortgage", "auto"}},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeJSON[domain.CustomObject](t, resp)
	if created.APIName != "loan_application" {
		t.Errorf("apiName = %q, want loan_application", created.APIName)
	}
	if len(created.Fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(created.Fields))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/v1/objects/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	got := decodeJSON[domain.CustomObject](t, resp)
	if got.ID != created.ID || got.Label != "Loan Application" {
		t.Errorf("got = %+v", got)
	}
}

func TestCreateObject_InvalidBody(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Post(srv.URL+"/v1/objects", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateObject_DuplicateAPIName(t *testing.T) {
	srv, _ := setupServer(t)

	first := doRequest(t, http.MethodPost, srv.URL+"/v1/objects", map[string]any{"label": "Branch"})
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first create: %d", first.StatusCode)
	}

	// "BRANCH!" normalizes to the same apiName.
	second := doRequest(t, http.MethodPost, srv.URL+"/v1/objects", map[string]any{"label": "BRANCH!"})
	if second.StatusCode != http.StatusBadRequest {
		t.Errorf("second create status = %d, want 400", second.StatusCode)
	}
}

func TestCreateObjectFromTemplate(t *testing.T) {
	srv, _ := setupServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/v1/objects/from-template/loan_application", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeJSON[domain.CustomObject](t, resp)
	if created.Label != "Loan Application" {
		t.Errorf("label = %q", created.Label)
	}
	if len(created.Fields) == 0 {
		t.Error("template fields not instantiated")
	}

	missing := doRequest(t, http.MethodPost, srv.URL+"/v1/objects/from-template/no_such_template", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing template status = %d, want 404", missing.StatusCode)
	}
}

func TestUpdateObject(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()

	obj, err := s.Objects.Create(ctx, domain.CreateObjectInput{Label: "Branch"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := doRequest(t, http.MethodPatch, srv.URL+"/v1/objects/"+obj.ID, map[string]any{
		"label": "Branch Office",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	updated := decodeJSON[domain.CustomObject](t, resp)
	if updated.Label != "Branch Office" || updated.APIName != "branch_office" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestDeleteObject_ReferentialIntegrity(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()

	a, err := s.Objects.Create(ctx, domain.CreateObjectInput{Label: "Loan Application"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := s.Objects.Create(ctx, domain.CreateObjectInput{Label: "Branch"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assoc, err := s.Associations.Add(ctx, domain.CreateAssociationInput{
		SourceObjectID: a.ID, TargetObjectID: b.ID, Cardinality: domain.OneToMany,
	})
	if err != nil {
		t.Fatalf("add association: %v", err)
	}

	resp := doRequest(t, http.MethodDelete, srv.URL+"/v1/objects/"+a.ID, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("blocked delete status = %d, want 409", resp.StatusCode)
	}
	body := decodeJSON[map[string]any](t, resp)
	if body["category"] != "REFERENTIAL_INTEGRITY" {
		t.Errorf("category = %v", body["category"])
	}

	if err := s.Associations.Remove(ctx, assoc.ID); err != nil {
		t.Fatalf("remove association: %v", err)
	}
	resp = doRequest(t, http.MethodDelete, srv.URL+"/v1/objects/"+a.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unblocked delete status = %d, want 204", resp.StatusCode)
	}
}

func TestDuplicateObject(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()

	obj, err := s.Objects.Create(ctx, domain.CreateObjectInput{
		Label: "Loan Application",
		Fields: []domain.FieldInput{
			{Name: "Amount", Type: domain.FieldNumber, Required: true},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := doRequest(t, http.MethodPost, fmt.Sprintf("%s/v1/objects/%s/duplicate", srv.URL, obj.ID), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	dup := decodeJSON[domain.CustomObject](t, resp)
	if dup.ID == obj.ID {
		t.Error("duplicate shares id with source")
	}
	if dup.Label != "Loan Application (Copy)" {
		t.Errorf("label = %q", dup.Label)
	}
	if dup.APIName != "loan_application_copy" {
		t.Errorf("apiName = %q", dup.APIName)
	}
}

func TestObjectAssociationsEndpoint(t *testing.T) {
	srv, s := setupServer(t)
	ctx := context.Background()

	a, err := s.Objects.Create(ctx, domain.CreateObjectInput{Label: "Loan Application"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := s.Objects.Create(ctx, domain.CreateObjectInput{Label: "Branch"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Associations.Add(ctx, domain.CreateAssociationInput{
		SourceObjectID: a.ID, TargetObjectID: b.ID, Cardinality: domain.ManyToMany,
	}); err != nil {
		t.Fatalf("add association: %v", err)
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/v1/objects/"+a.ID+"/associations", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeJSON[map[string]any](t, resp)
	if total, _ := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}

	missing := doRequest(t, http.MethodGet, srv.URL+"/v1/objects/missing-id/associations", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing object status = %d, want 404", missing.StatusCode)
	}
}
