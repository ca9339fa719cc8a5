package problemController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mathcms/config"
	"mathcms/database"
	"mathcms/middleware"
	"mathcms/models"
	problemModels "mathcms/models/problem"
	problemRoutes "mathcms/routers/problemRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:        "3000",
		JWTKey:      "test-secret",
		SaltRound:   4,
		AdminEmails: []string{"admin@example.com"},
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	problemRoutes.SetupAdminProblemRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Role: role, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func validCreatePayload() map[string]interface{} {
	return map[string]interface{}{
		"title":            "Linear equation",
		"content":          "2x + 5 = 13, solve for x",
		"correct_answer":   "x = 4",
		"difficulty_level": 1,
		"problem_type":     "multiple_choice",
		"options": []map[string]interface{}{
			{"content": "x = 3", "is_correct": false},
			{"content": "x = 4", "is_correct": true},
			{"content": "x = 5", "is_correct": false},
			{"content": "x = 6", "is_correct": false},
		},
		"hints": []map[string]interface{}{
			{"content": "Move the constant to the right side", "hint_type": "strategy"},
			{"content": "Divide both sides by 2", "hint_type": "calculation"},
		},
	}
}

func TestAdminCreateProblem_ForcesDraftAndPrivate(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	payload := validCreatePayload()
	// Caller-supplied workflow fields must be ignored
	payload["status"] = "published"
	payload["is_public"] = true

	resp, env := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Status)

	var created problemModels.Problem
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, problemModels.StatusDraft, created.Status)
	assert.False(t, created.IsPublic)
	assert.Zero(t, created.TotalAttempts)
	assert.Zero(t, created.CorrectAttempts)
	assert.Equal(t, admin.ID, created.CreatedBy)
	assert.NotEmpty(t, created.ID)
}

func TestAdminCreateProblem_RejectsDifficultyOutOfRange(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	for _, level := range []int{0, 6, -1, 99} {
		payload := validCreatePayload()
		payload["difficulty_level"] = level

		resp, env := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "difficulty %d", level)
		assert.False(t, env.Status)
	}

	// Nothing reached the store
	var count int64
	db.Model(&problemModels.Problem{}).Count(&count)
	assert.Zero(t, count)
}

func TestAdminCreateProblem_RejectsUnknownProblemType(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	payload := validCreatePayload()
	payload["problem_type"] = "essay"

	resp, _ := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminCreateProblem_RoundTripPreservesChildOrder(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	resp, _ := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, validCreatePayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/admin/problem/list", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var problems []problemModels.Problem
	require.NoError(t, json.Unmarshal(env.Data, &problems))
	require.Len(t, problems, 1)

	prob := problems[0]
	require.Len(t, prob.Options, 4)
	for i, opt := range prob.Options {
		assert.Equal(t, i+1, opt.OptionOrder)
	}
	assert.Equal(t, "x = 3", prob.Options[0].Content)
	assert.Equal(t, "x = 6", prob.Options[3].Content)
	assert.True(t, prob.Options[1].IsCorrect)

	require.Len(t, prob.Hints, 2)
	assert.Equal(t, 1, prob.Hints[0].HintOrder)
	assert.Equal(t, "strategy", prob.Hints[0].HintType)
	assert.Equal(t, 2, prob.Hints[1].HintOrder)
	assert.Equal(t, "calculation", prob.Hints[1].HintType)
}

func TestAdminCreateProblem_LinksCategoriesWithPrimary(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	var calculus, statistics problemModels.Category
	// Seed happens inside create; pre-seed here to know the IDs
	seedCategories(t, db)
	require.NoError(t, db.Where("name = ?", "calculus").First(&calculus).Error)
	require.NoError(t, db.Where("name = ?", "statistics").First(&statistics).Error)

	payload := validCreatePayload()
	payload["category_ids"] = []uint{calculus.ID, statistics.ID}

	resp, env := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created problemModels.Problem
	require.NoError(t, json.Unmarshal(env.Data, &created))

	var links []problemModels.CategoryLink
	require.NoError(t, db.Where("problem_id = ?", created.ID).Order("id asc").Find(&links).Error)
	require.Len(t, links, 2)
	assert.Equal(t, calculus.ID, links[0].CategoryID)
	assert.True(t, links[0].IsPrimary)
	assert.False(t, links[1].IsPrimary)
}

func TestAdminCreateProblem_RecordsPendingWhenCategoryUnresolvable(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	seedCategories(t, db)
	var calculus problemModels.Category
	require.NoError(t, db.Where("name = ?", "calculus").First(&calculus).Error)

	payload := validCreatePayload()
	payload["category_ids"] = []uint{calculus.ID, 9999}

	resp, env := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created problemModels.Problem
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, problemModels.LinkPending, created.LinkStatus)

	// The resolvable link is written immediately
	var links []problemModels.CategoryLink
	require.NoError(t, db.Where("problem_id = ?", created.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, calculus.ID, links[0].CategoryID)

	// The unresolvable ID is recorded for the reconciler, not lost
	var stored problemModels.Problem
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	assert.Equal(t, problemModels.LinkPending, stored.LinkStatus)

	var pending []uint
	require.NoError(t, json.Unmarshal(stored.PendingCategories, &pending))
	assert.Equal(t, []uint{9999}, pending)
}

func TestUpdateProblemStatus_DerivesVisibility(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	prob := seedProblem(t, db, admin.ID)

	// publish -> public
	resp, _ := doJSON(t, app, http.MethodPost, "/admin/problem/"+prob.ID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got problemModels.Problem
	require.NoError(t, db.First(&got, "id = ?", prob.ID).Error)
	assert.Equal(t, problemModels.StatusPublished, got.Status)
	assert.True(t, got.IsPublic)
	assert.True(t, got.Servable())

	// review -> visibility untouched
	resp, _ = doJSON(t, app, http.MethodPost, "/admin/problem/"+prob.ID+"/status", token, map[string]string{"status": "review"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "id = ?", prob.ID).Error)
	assert.Equal(t, problemModels.StatusReview, got.Status)
	assert.True(t, got.IsPublic, "review must not change visibility")

	// unpublish -> private draft
	resp, _ = doJSON(t, app, http.MethodPost, "/admin/problem/"+prob.ID+"/unpublish", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "id = ?", prob.ID).Error)
	assert.Equal(t, problemModels.StatusDraft, got.Status)
	assert.False(t, got.IsPublic)

	// archive -> private
	resp, _ = doJSON(t, app, http.MethodPost, "/admin/problem/"+prob.ID+"/status", token, map[string]string{"status": "archived"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "id = ?", prob.ID).Error)
	assert.Equal(t, problemModels.StatusArchived, got.Status)
	assert.False(t, got.IsPublic)
}

func TestUpdateProblemStatus_RejectsUnknownStatus(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	prob := seedProblem(t, db, admin.ID)

	resp, _ := doJSON(t, app, http.MethodPost, "/admin/problem/"+prob.ID+"/status", token, map[string]string{"status": "live"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteProblem_CascadesChildren(t *testing.T) {
	app, db := setupTestApp(t)
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	token := tokenFor(t, admin)

	seedCategories(t, db)
	var calculus problemModels.Category
	require.NoError(t, db.Where("name = ?", "calculus").First(&calculus).Error)

	payload := validCreatePayload()
	payload["category_ids"] = []uint{calculus.ID}
	resp, env := doJSON(t, app, http.MethodPost, "/admin/problem/create", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created problemModels.Problem
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = doJSON(t, app, http.MethodDelete, "/admin/problem/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var options, hints, links, problems int64
	db.Unscoped().Model(&problemModels.Option{}).Where("problem_id = ?", created.ID).Count(&options)
	db.Unscoped().Model(&problemModels.Hint{}).Where("problem_id = ?", created.ID).Count(&hints)
	db.Unscoped().Model(&problemModels.CategoryLink{}).Where("problem_id = ?", created.ID).Count(&links)
	db.Model(&problemModels.Problem{}).Where("id = ?", created.ID).Count(&problems)

	assert.Zero(t, options)
	assert.Zero(t, hints)
	assert.Zero(t, links)
	assert.Zero(t, problems)
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	app, db := setupTestApp(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	token := tokenFor(t, student)

	resp, env := doJSON(t, app, http.MethodGet, "/admin/problem/list", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestAdminRoutes_AllowListedEmailWithoutAdminRole(t *testing.T) {
	app, db := setupTestApp(t)
	// Role is STUDENT but the email is on the configured allow-list
	teacher := createUser(t, db, "admin@example.com", "STUDENT")
	token := tokenFor(t, teacher)

	resp, _ := doJSON(t, app, http.MethodGet, "/admin/problem/list", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutes_RejectMissingToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/admin/problem/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
