package routes

import (
	"net/http"
	"testing"

	"rate-my-roommate-server/models"
)

func TestCreateHousingTrimsAndPreservesCase(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	user := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	auth := signTestToken(t, user)

	resp := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "  Maple Hall  ", CallerID: user.ID,
	}, auth)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created models.Housing
	decodeBody(t, resp, &created)
	if created.Name != "Maple Hall" {
		t.Fatalf("expected trimmed original-case name %q, got %q", "Maple Hall", created.Name)
	}

	var stored models.Housing
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if stored.Name != "Maple Hall" {
		t.Fatalf("stored name = %q, want %q", stored.Name, "Maple Hall")
	}
	if stored.NameNormalized != "maple hall" {
		t.Fatalf("stored normalized name = %q, want %q", stored.NameNormalized, "maple hall")
	}
}

func TestCreateHousingDuplicateCarriesBothNames(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	user := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	auth := signTestToken(t, user)

	resp := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "Maple Hall", CallerID: user.ID,
	}, auth)
	if resp.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", resp.Code)
	}

	// Differs only in case: one success, one duplicate.
	resp2 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "maple hall", CallerID: user.ID,
	}, auth)
	if resp2.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var body map[string]interface{}
	decodeBody(t, resp2, &body)
	if body["isExisting"] != true {
		t.Errorf("isExisting = %v, want true", body["isExisting"])
	}
	if body["duplicateName"] != "Maple Hall" {
		t.Errorf("duplicateName = %v, want %q", body["duplicateName"], "Maple Hall")
	}
	if body["normalizedInput"] != "maple hall" {
		t.Errorf("normalizedInput = %v, want %q", body["normalizedInput"], "maple hall")
	}

	// Whitespace-only difference is also a duplicate.
	resp3 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "  MAPLE HALL ", CallerID: user.ID,
	}, auth)
	if resp3.Code != http.StatusConflict {
		t.Fatalf("expected 409 for whitespace variant, got %d", resp3.Code)
	}

	var count int64
	db.Model(&models.Housing{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 housing row, got %d", count)
	}
}

func TestCreateHousingScopedPerInstitution(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	instA := createTestInstitution(t, db, "State University", "stateu.edu")
	instB := createTestInstitution(t, db, "Tech College", "tech.edu")
	userA := createTestUser(t, db, instA.ID, "alice@stateu.edu")
	userB := createTestUser(t, db, instB.ID, "bob@tech.edu")

	resp := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "Maple Hall", CallerID: userA.ID,
	}, signTestToken(t, userA))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	// Same name in another institution is not a duplicate.
	resp2 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "Maple Hall", CallerID: userB.ID,
	}, signTestToken(t, userB))
	if resp2.Code != http.StatusCreated {
		t.Fatalf("expected 201 for other institution, got %d: %s", resp2.Code, resp2.Body.String())
	}
}

func TestCreateHousingValidation(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	user := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	auth := signTestToken(t, user)

	// Missing name.
	resp := doJSON(t, app, http.MethodPost, "/api/housing", map[string]interface{}{
		"callerId": user.ID,
	}, auth)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.Code)
	}

	// Whitespace-only name.
	resp2 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "   ", CallerID: user.ID,
	}, auth)
	if resp2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", resp2.Code)
	}

	// Unknown caller resolves to no institution.
	resp3 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "Maple Hall", CallerID: 9999,
	}, auth)
	if resp3.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown caller, got %d", resp3.Code)
	}

	var count int64
	db.Model(&models.Housing{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed creates must not write rows, got %d", count)
	}
}

// End-to-end scenario: distinct names both created, duplicate rejected, and
// housing search matches the "tower" substring case-insensitively.
func TestHousingCreationAndSearchEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	user := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	auth := signTestToken(t, user)

	resp := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{Name: "North Tower", CallerID: user.ID}, auth)
	if resp.Code != http.StatusCreated {
		t.Fatalf("North Tower: expected 201, got %d", resp.Code)
	}
	var created models.Housing
	decodeBody(t, resp, &created)
	if created.Name != "North Tower" {
		t.Fatalf("created name = %q, want %q", created.Name, "North Tower")
	}

	resp2 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{Name: "north tower", CallerID: user.ID}, auth)
	if resp2.Code != http.StatusConflict {
		t.Fatalf("north tower: expected 409, got %d", resp2.Code)
	}
	var dup map[string]interface{}
	decodeBody(t, resp2, &dup)
	if dup["duplicateName"] != "North Tower" {
		t.Fatalf("duplicateName = %v, want %q", dup["duplicateName"], "North Tower")
	}

	resp3 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{Name: "South Tower", CallerID: user.ID}, auth)
	if resp3.Code != http.StatusCreated {
		t.Fatalf("South Tower: expected 201, got %d", resp3.Code)
	}

	resp4 := doJSON(t, app, http.MethodGet, "/api/search?type=housing&location=tower", nil, auth)
	if resp4.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp4.Code)
	}
	var results []models.Housing
	decodeBody(t, resp4, &results)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %s", len(results), resp4.Body.String())
	}
	names := map[string]bool{}
	for _, h := range results {
		names[h.Name] = true
	}
	if !names["North Tower"] || !names["South Tower"] {
		t.Fatalf("unexpected result names: %v", names)
	}
}

func TestDeleteHousingSoftDeletesAndFreesName(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	creator := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	other := createTestUser(t, db, institution.ID, "eve@stateu.edu")
	housing := createTestHousing(t, db, institution.ID, "Maple Hall", creator.ID)

	// Non-creator, non-admin cannot delete.
	resp := doJSON(t, app, http.MethodDelete, "/api/housing/1", nil, signTestToken(t, other))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-creator, got %d", resp.Code)
	}

	resp2 := doJSON(t, app, http.MethodDelete, "/api/housing/1", nil, signTestToken(t, creator))
	if resp2.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for creator, got %d", resp2.Code)
	}

	// Row is soft-deleted, not erased.
	var count int64
	db.Unscoped().Model(&models.Housing{}).Where("id = ?", housing.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected soft-deleted row to remain, got %d", count)
	}

	// Deleted rows no longer count as duplicates.
	resp3 := doJSON(t, app, http.MethodPost, "/api/housing", CreateHousingInput{
		Name: "Maple Hall", CallerID: creator.ID,
	}, signTestToken(t, creator))
	if resp3.Code != http.StatusCreated {
		t.Fatalf("expected 201 after soft delete, got %d: %s", resp3.Code, resp3.Body.String())
	}
}
