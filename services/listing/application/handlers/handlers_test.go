package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellohellohell0/mcmarket/pkg/auth"
	"github.com/hellohellohell0/mcmarket/pkg/config"
	"github.com/hellohellohell0/mcmarket/pkg/logger"
	appsvcs "github.com/hellohellohell0/mcmarket/services/listing/application/services"
	"github.com/hellohellohell0/mcmarket/services/listing/domain/models"
	"github.com/hellohellohell0/mcmarket/services/listing/infrastructure/persistence/memory"
)

func fptr(v float64) *float64 { return &v }

// newTestRouter mounts the listing handlers on a chi router backed by the
// in-memory repository. Moderation authorization runs through the production
// ContextGate; admin requests get their context stamped explicitly.
func newTestRouter(t *testing.T) (*chi.Mux, *appsvcs.Services, *memory.ListingRepository) {
	t.Helper()
	repo := memory.NewListingRepository()
	log := logger.New(&config.Config{LogLevel: "error"})
	svcs := &appsvcs.Services{
		Listing: appsvcs.NewListingService(repo, nil, auth.ContextGate{}, nil, log),
	}

	r := chi.NewRouter()
	r.Route("/listings", func(r chi.Router) {
		r.Post("/", NewSubmitListingHandler(svcs).Execute)
		r.Get("/", NewSearchListingsHandler(svcs).Execute)
		r.Get("/{id}", NewGetListingHandler(svcs).Execute)
	})
	r.Route("/admin/listings", func(r chi.Router) {
		r.Get("/", NewAdminListListingsHandler(svcs).Execute)
		r.Post("/", NewAdminCreateListingHandler(svcs).Execute)
		r.Delete("/pending", NewPurgePendingHandler(svcs).Execute)
		r.Post("/{id}/approve", NewApproveListingHandler(svcs).Execute)
		r.Post("/{id}/reject", NewRejectListingHandler(svcs).Execute)
		r.Patch("/{id}", NewEditListingHandler(svcs).Execute)
		r.Put("/{id}/price", NewEditPriceHandler(svcs).Execute)
		r.Delete("/{id}", NewDeleteListingHandler(svcs).Execute)
	})
	return r, svcs, repo
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func submitPayload(username string) map[string]any {
	return map[string]any{
		"username":            username,
		"description":         "clean account",
		"price_bin":           300.0,
		"price_current_offer": 0.0,
		"account_types":       []string{"OG"},
		"capes":               []string{"Pan"},
		"name_changes":        1,
		"contact_discord":     "seller#0001",
		"ticket_number":       "TKT-1",
	}
}

// doJSON performs a request against the router; asAdmin stamps the context
// the way RequireAdmin would after validating the session.
func doJSON(t *testing.T, router http.Handler, method, path string, body *bytes.Reader, asAdmin bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if asAdmin {
		req = req.WithContext(auth.WithAdmin(req.Context()))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// seedApproved submits and approves one listing, returning its id.
func seedApproved(t *testing.T, svcs *appsvcs.Services, router http.Handler, username string) uuid.UUID {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload(username)), false)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed submit: status %d: %s", w.Code, w.Body)
	}
	var resp SubmitListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if _, err := svcs.Listing.Approve(auth.WithAdmin(context.Background()), resp.ListingID); err != nil {
		t.Fatalf("seed approve: %v", err)
	}
	return resp.ListingID
}

func TestSubmitListing_Created(t *testing.T) {
	router, _, repo := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload("Notch")), false)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}

	var resp SubmitListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ListingID == uuid.Nil {
		t.Error("expected a listing id")
	}
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}

	stored, err := repo.GetByID(context.Background(), resp.ListingID)
	if err != nil {
		t.Fatalf("listing not persisted: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("expected PENDING, got %s", stored.Status)
	}
}

func TestSubmitListing_ValidationFailureNamesField(t *testing.T) {
	router, _, _ := newTestRouter(t)

	payload := submitPayload("Notch")
	delete(payload, "contact_discord")
	w := doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, payload), false)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Field != "contact" {
		t.Errorf("expected failing field contact, got %q", resp.Field)
	}
}

func TestSearchListings_OnlyApprovedAndRedacted(t *testing.T) {
	router, svcs, _ := newTestRouter(t)

	seedApproved(t, svcs, router, "LiveGuy")
	// A second submission that stays pending.
	doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload("PendingGuy")), false)

	w := doJSON(t, router, http.MethodGet, "/listings", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp SearchListingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Listings) != 1 {
		t.Fatalf("expected one public listing, got %d", len(resp.Listings))
	}
	got := resp.Listings[0]
	if got.Username != "LiveGuy" {
		t.Errorf("unexpected listing: %q", got.Username)
	}
	if got.PublicContact != "Discord: seller#0001" {
		t.Errorf("unexpected public contact: %q", got.PublicContact)
	}

	// The raw payload must not leak moderation-only fields.
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	listing := raw["listings"].([]any)[0].(map[string]any)
	for _, hidden := range []string{"contact_discord", "contact_telegram", "ticket_number", "ogu_profile_url", "status"} {
		if _, ok := listing[hidden]; ok {
			t.Errorf("field %q leaked into the public view", hidden)
		}
	}
}

func TestSearchListings_FilterAndSortParams(t *testing.T) {
	router, svcs, _ := newTestRouter(t)

	seedApproved(t, svcs, router, "Shorty")
	seedApproved(t, svcs, router, "AVeryLongName")

	w := doJSON(t, router, http.MethodGet, "/listings?maxLen=6&sort=oldest", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp SearchListingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Listings) != 1 || resp.Listings[0].Username != "Shorty" {
		t.Fatalf("expected only Shorty, got %+v", resp.Listings)
	}
}

func TestSearchListings_BadQueryParam(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/listings?minPrice=lots", nil, false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetListing(t *testing.T) {
	router, svcs, _ := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch")

	w := doJSON(t, router, http.MethodGet, "/listings/"+id.String(), nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != id {
		t.Errorf("expected id %s, got %s", id, resp.ID)
	}
}

func TestGetListing_CurrencyConversion(t *testing.T) {
	router, svcs, _ := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch") // BIN 300 USD

	w := doJSON(t, router, http.MethodGet, "/listings/"+id.String()+"?currency=EUR", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp ListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Currency != "EUR" {
		t.Errorf("expected EUR, got %s", resp.Currency)
	}
	if resp.PriceBin == nil || *resp.PriceBin != 285.0 { // 300 * 0.95
		t.Errorf("expected converted BIN 285, got %v", resp.PriceBin)
	}
}

func TestGetListing_Errors(t *testing.T) {
	router, _, _ := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/listings/not-a-uuid", nil, false); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad id, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/listings/"+uuid.NewString(), nil, false); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown id, got %d", w.Code)
	}
}

func TestApproveListing(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload("Notch")), false)
	var submitted SubmitListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode submit: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/admin/listings/"+submitted.ListingID.String()+"/approve", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp AdminListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "APPROVED" {
		t.Errorf("expected APPROVED, got %s", resp.Status)
	}
	if resp.TicketNumber != "TKT-1" {
		t.Error("expected unredacted moderation view")
	}
}

func TestModeration_WithoutAdminContext(t *testing.T) {
	router, svcs, repo := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch")

	w := doJSON(t, router, http.MethodPost, "/admin/listings/"+id.String()+"/reject", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if stored.Status != models.StatusApproved {
		t.Fatalf("denied action changed status to %s", stored.Status)
	}
}

func TestAdminListListings_ByStatus(t *testing.T) {
	router, svcs, _ := newTestRouter(t)

	seedApproved(t, svcs, router, "Live1")
	doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload("Pending1")), false)

	w := doJSON(t, router, http.MethodGet, "/admin/listings?status=PENDING", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp AdminListListingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Listings) != 1 || resp.Listings[0].Username != "Pending1" {
		t.Fatalf("expected only the pending listing, got %+v", resp.Listings)
	}

	if w := doJSON(t, router, http.MethodGet, "/admin/listings?status=BOGUS", nil, true); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad status, got %d", w.Code)
	}
}

func TestAdminCreateListing(t *testing.T) {
	router, _, _ := newTestRouter(t)

	payload := submitPayload("Notch")
	delete(payload, "price_bin")
	delete(payload, "ticket_number")
	w := doJSON(t, router, http.MethodPost, "/admin/listings", jsonBody(t, payload), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	var resp AdminListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "APPROVED" {
		t.Errorf("expected APPROVED, got %s", resp.Status)
	}
}

func TestEditListing(t *testing.T) {
	router, svcs, _ := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch")

	body := map[string]any{"description": "revised", "capes": []string{"Vanilla"}}
	w := doJSON(t, router, http.MethodPatch, "/admin/listings/"+id.String(), jsonBody(t, body), true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp AdminListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Description != "revised" {
		t.Errorf("description not updated: %q", resp.Description)
	}
	if len(resp.Capes) != 1 || resp.Capes[0] != "Vanilla" {
		t.Errorf("expected wholesale cape replace, got %v", resp.Capes)
	}
	if resp.Username != "Notch" {
		t.Errorf("untouched field changed: %q", resp.Username)
	}
}

func TestEditPrice(t *testing.T) {
	router, svcs, _ := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch")

	body := EditPriceRequest{PriceCurrentOffer: fptr(0), PriceBin: fptr(450)}
	w := doJSON(t, router, http.MethodPut, "/admin/listings/"+id.String()+"/price", jsonBody(t, body), true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp AdminListingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PriceCurrentOffer != nil {
		t.Error("expected zero offer to clear to null")
	}
	if resp.PriceBin == nil || *resp.PriceBin != 450 {
		t.Errorf("unexpected BIN: %v", resp.PriceBin)
	}
}

func TestDeleteListing(t *testing.T) {
	router, svcs, repo := newTestRouter(t)
	id := seedApproved(t, svcs, router, "Notch")

	w := doJSON(t, router, http.MethodDelete, "/admin/listings/"+id.String(), nil, true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if _, err := repo.GetByID(context.Background(), id); err == nil {
		t.Fatal("expected listing to be gone")
	}
}

func TestPurgePending(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, name := range []string{"Spam1", "Spam2", "Spam3"} {
		doJSON(t, router, http.MethodPost, "/listings", jsonBody(t, submitPayload(name)), false)
	}

	w := doJSON(t, router, http.MethodDelete, "/admin/listings/pending?count=2", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	var resp PurgePendingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.DeletedIDs) != 2 {
		t.Fatalf("expected 2 deleted ids, got %d", len(resp.DeletedIDs))
	}

	if w := doJSON(t, router, http.MethodDelete, "/admin/listings/pending?count=zero", nil, true); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad count, got %d", w.Code)
	}
}
