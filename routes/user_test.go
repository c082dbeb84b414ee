package routes

import (
	"net/http"
	"testing"

	"rate-my-roommate-server/models"
)

func TestRegisterRequiresMatchingEmailDomain(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	createTestInstitution(t, db, "State University", "stateu.edu")

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", RegisterUserInput{
		FirstName: "Alice", LastName: "Nguyen", Email: "Alice@StateU.edu", Password: "password123",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["accessToken"] == nil || body["refreshToken"] == nil {
		t.Fatal("expected token pair in register response")
	}
	if body["email"] != "alice@stateu.edu" {
		t.Errorf("email = %v, want lowercased", body["email"])
	}

	var user models.User
	if err := db.Where("email = ?", "alice@stateu.edu").First(&user).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.InstitutionID == 0 {
		t.Error("user not linked to institution")
	}

	// Unknown domain is rejected before any write.
	resp2 := doJSON(t, app, http.MethodPost, "/api/user/register", RegisterUserInput{
		FirstName: "Bob", LastName: "Smith", Email: "bob@elsewhere.edu", Password: "password123",
	}, "")
	if resp2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown domain, got %d", resp2.Code)
	}

	// Duplicate email conflicts.
	resp3 := doJSON(t, app, http.MethodPost, "/api/user/register", RegisterUserInput{
		FirstName: "Alice", LastName: "Nguyen", Email: "alice@stateu.edu", Password: "password123",
	}, "")
	if resp3.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp3.Code)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	createTestUser(t, db, institution.ID, "alice@stateu.edu")

	resp := doJSON(t, app, http.MethodPost, "/api/user/login", LoginUserInput{
		Email: "alice@stateu.edu", Password: "password123",
	}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["accessToken"] == nil {
		t.Fatal("expected access token on login")
	}

	resp2 := doJSON(t, app, http.MethodPost, "/api/user/login", LoginUserInput{
		Email: "alice@stateu.edu", Password: "wrong-password",
	}, "")
	if resp2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp2.Code)
	}

	resp3 := doJSON(t, app, http.MethodPost, "/api/user/login", LoginUserInput{
		Email: "nobody@stateu.edu", Password: "password123",
	}, "")
	if resp3.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", resp3.Code)
	}
}

func TestSavedHousings(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	institution := createTestInstitution(t, db, "State University", "stateu.edu")
	user := createTestUser(t, db, institution.ID, "alice@stateu.edu")
	housing := createTestHousing(t, db, institution.ID, "Maple Hall", user.ID)
	auth := signTestToken(t, user)

	resp := doJSON(t, app, http.MethodPatch, "/api/user/1/housing/saved", AlterSavedHousingsInput{
		HousingID: housing.ID, Op: "add",
	}, auth)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp2 := doJSON(t, app, http.MethodGet, "/api/user/1/housing/saved", nil, auth)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.Code)
	}
	var saved []models.Housing
	decodeBody(t, resp2, &saved)
	if len(saved) != 1 || saved[0].Name != "Maple Hall" {
		t.Fatalf("unexpected saved list: %s", resp2.Body.String())
	}

	// Adding twice is idempotent.
	doJSON(t, app, http.MethodPatch, "/api/user/1/housing/saved", AlterSavedHousingsInput{HousingID: housing.ID, Op: "add"}, auth)
	resp3 := doJSON(t, app, http.MethodGet, "/api/user/1/housing/saved", nil, auth)
	var saved2 []models.Housing
	decodeBody(t, resp3, &saved2)
	if len(saved2) != 1 {
		t.Fatalf("expected 1 saved housing after duplicate add, got %d", len(saved2))
	}

	resp4 := doJSON(t, app, http.MethodPatch, "/api/user/1/housing/saved", AlterSavedHousingsInput{
		HousingID: housing.ID, Op: "remove",
	}, auth)
	if resp4.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on remove, got %d", resp4.Code)
	}
	resp5 := doJSON(t, app, http.MethodGet, "/api/user/1/housing/saved", nil, auth)
	var saved3 []models.Housing
	decodeBody(t, resp5, &saved3)
	if len(saved3) != 0 {
		t.Fatalf("expected empty saved list, got %d", len(saved3))
	}

	// Other users cannot touch this list.
	other := createTestUser(t, db, institution.ID, "eve@stateu.edu")
	resp6 := doJSON(t, app, http.MethodGet, "/api/user/1/housing/saved", nil, signTestToken(t, other))
	if resp6.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d", resp6.Code)
	}
}
