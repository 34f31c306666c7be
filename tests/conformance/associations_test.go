package conformance_test

import (
	"net/http"
	"testing"
)

func TestAssociationLifecycle(t *testing.T) {
	resetServer(t)

	loanID := createObject(t, "Loan Application")
	branchID := createObject(t, "Branch")

	resp := doRequest(t, http.MethodPost, "/v1/associations", map[string]any{
		"sourceObjectId": loanID,
		"targetObjectId": branchID,
		"cardinality":    "many-to-many",
		"label":          "processed at",
	})
	mustStatus(t, resp, http.StatusCreated)
	assoc := readJSON(t, resp)
	assocID, _ := assoc["id"].(string)
	assertStringField(t, assoc, "cardinality", "many-to-many")

	// The association shows up from both endpoints.
	for _, objectID := range []string{loanID, branchID} {
		resp = doRequest(t, http.MethodGet, "/v1/objects/"+objectID+"/associations", nil)
		mustStatus(t, resp, http.StatusOK)
		list := readJSON(t, resp)
		if total, _ := list["total"].(float64); total != 1 {
			t.Errorf("object %s: total = %v, want 1", objectID, list["total"])
		}
	}

	resp = doRequest(t, http.MethodDelete, "/v1/associations/"+assocID, nil)
	mustStatus(t, resp, http.StatusNoContent)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodGet, "/v1/associations/"+assocID, nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertError(t, readJSON(t, resp), "OBJECT_NOT_FOUND")
}

func TestAssociationDuplicateRejected(t *testing.T) {
	resetServer(t)

	loanID := createObject(t, "Loan Application")
	branchID := createObject(t, "Branch")

	body := map[string]any{
		"sourceObjectId": loanID,
		"targetObjectId": branchID,
		"cardinality":    "one-to-one",
	}
	resp := doRequest(t, http.MethodPost, "/v1/associations", body)
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	// Same unordered pair and cardinality, reversed endpoints.
	resp = doRequest(t, http.MethodPost, "/v1/associations", map[string]any{
		"sourceObjectId": branchID,
		"targetObjectId": loanID,
		"cardinality":    "one-to-one",
	})
	mustStatus(t, resp, http.StatusConflict)
	assertError(t, readJSON(t, resp), "CONFLICT")
}

func TestAssociationRejectsUnknownObject(t *testing.T) {
	resetServer(t)

	loanID := createObject(t, "Loan Application")

	resp := doRequest(t, http.MethodPost, "/v1/associations", map[string]any{
		"sourceObjectId": loanID,
		"targetObjectId": "not-a-real-object",
		"cardinality":    "one-to-many",
	})
	mustStatus(t, resp, http.StatusNotFound)
	assertError(t, readJSON(t, resp), "OBJECT_NOT_FOUND")
}
