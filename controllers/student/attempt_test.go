package studentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"mathcms/config"
	"mathcms/database"
	problemModels "mathcms/models/problem"
	programModels "mathcms/models/program"
	studentRoutes "mathcms/routers/studentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func attemptPayload(correct bool) map[string]interface{} {
	return map[string]interface{}{
		"submitted_answer":   "x = 4",
		"is_correct":         correct,
		"time_spent_seconds": 45,
	}
}

func seedProgramWithEnrollment(t *testing.T, db *gorm.DB, studentID uint, prob *problemModels.Problem) programModels.Program {
	t.Helper()

	prog := programModels.Program{
		ID:             uuid.NewString(),
		Name:           "calculus_intensive",
		DisplayName:    "微積分密集班",
		Status:         programModels.StatusPublished,
		IsPublic:       true,
		EnrollmentOpen: true,
	}
	require.NoError(t, db.Create(&prog).Error)

	assigned, err := json.Marshal([]string{prog.ID})
	require.NoError(t, err)
	require.NoError(t, db.Model(prob).Update("assigned_programs", assigned).Error)

	enrollment := programModels.Enrollment{
		StudentID: studentID,
		ProgramID: prog.ID,
		Status:    programModels.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	return prog
}

func TestRecordProblemAttempt_IncrementsCountersExactly(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式：2x + 5 = 13", 1)

	// 5 attempts, 2 of them correct
	outcomes := []bool{false, true, false, false, true}
	for _, correct := range outcomes {
		resp, _ := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, attemptPayload(correct))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var stored problemModels.Problem
	require.NoError(t, db.Where("id = ?", prob.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.TotalAttempts)
	assert.Equal(t, 2, stored.CorrectAttempts)

	var count int64
	db.Model(&problemModels.Attempt{}).Where("problem_id = ?", prob.ID).Count(&count)
	assert.EqualValues(t, 5, count, "every submission must leave its own row")
}

func TestRecordProblemAttempt_NumbersAttemptsPerUser(t *testing.T) {
	app, db := setupTestApp(t)
	first := createStudent(t, db, "first@example.com")
	second := createStudent(t, db, "second@example.com")
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式", 1)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", tokenFor(t, first), attemptPayload(false))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, env := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", tokenFor(t, second), attemptPayload(true))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var recorded problemModels.Attempt
	require.NoError(t, json.Unmarshal(env.Data, &recorded))
	assert.Equal(t, 1, recorded.AttemptNumber, "another user's attempts must not advance the ordinal")

	var attempts []problemModels.Attempt
	require.NoError(t, db.Where("user_id = ?", first.ID).Order("id asc").Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.Equal(t, 1, attempts[0].AttemptNumber)
	assert.Equal(t, 2, attempts[1].AttemptNumber)
}

func TestRecordProblemAttempt_RequiresAuth(t *testing.T) {
	app, db := setupTestApp(t)
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式", 1)

	resp, env := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", "", attemptPayload(true))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Status)

	var count int64
	db.Model(&problemModels.Attempt{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordProblemAttempt_RejectsUnpublishedProblem(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)

	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式", 1)
	require.NoError(t, db.Model(&prob).Updates(map[string]interface{}{
		"status":    problemModels.StatusDraft,
		"is_public": false,
	}).Error)

	resp, env := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, attemptPayload(true))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Status)

	var stored problemModels.Problem
	require.NoError(t, db.Where("id = ?", prob.ID).First(&stored).Error)
	assert.Zero(t, stored.TotalAttempts)
}

func TestRecordProblemAttempt_RejectsNegativeTime(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式", 1)

	payload := attemptPayload(true)
	payload["time_spent_seconds"] = -10

	resp, env := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestRecordProblemAttempt_DefaultsAssignmentContext(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式", 1)

	resp, env := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, attemptPayload(true))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var recorded problemModels.Attempt
	require.NoError(t, json.Unmarshal(env.Data, &recorded))
	assert.Equal(t, problemModels.ContextPractice, recorded.AssignmentContext)

	payload := attemptPayload(true)
	payload["assignment_context"] = "midterm"
	resp, _ = doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRecordProblemAttempt_UpdatesEnrollmentProgress(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "calculus", "求導數", 4)
	prog := seedProgramWithEnrollment(t, db, student.ID, &prob)

	payload := attemptPayload(false)
	payload["program_id"] = prog.ID
	resp, _ := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload["is_correct"] = true
	payload["time_spent_seconds"] = 120
	resp, _ = doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment programModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND program_id = ?", student.ID, prog.ID).First(&enrollment).Error)

	assert.Equal(t, 1, enrollment.ProblemsCompleted)
	assert.InDelta(t, 50.0, enrollment.AverageScore, 0.01)
	assert.InDelta(t, 100.0, enrollment.ProgressPercentage, 0.01, "the program's only problem is solved")
	assert.Equal(t, programModels.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, 2, enrollment.TotalTimeSpentMinutes)
	assert.False(t, enrollment.LastActivityAt.IsZero())
}

// setupFileBackedApp uses a file-backed database so concurrent writers
// serialize on the write lock instead of failing on the shared-cache tables.
func setupFileBackedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", filepath.Join(t.TempDir(), "attempts.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	studentRoutes.SetupStudentRoutes(app)
	return app, db
}

func TestRecordProblemAttempt_ConcurrentSubmissions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping concurrency test in short mode")
	}

	app, db := setupFileBackedApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "basic_algebra", "解方程式：2x + 5 = 13", 1)

	const workers = 8
	const correctCount = 5

	var wg sync.WaitGroup
	statuses := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()

			encoded, err := json.Marshal(attemptPayload(correct))
			if err != nil {
				t.Errorf("encoding payload: %v", err)
				return
			}
			req := httptest.NewRequest(http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", bytes.NewReader(encoded))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Errorf("submitting attempt: %v", err)
				return
			}
			statuses <- resp.StatusCode
		}(i < correctCount)
	}
	wg.Wait()
	close(statuses)

	for code := range statuses {
		assert.Equal(t, http.StatusCreated, code)
	}

	var stored problemModels.Problem
	require.NoError(t, db.Where("id = ?", prob.ID).First(&stored).Error)
	assert.Equal(t, workers, stored.TotalAttempts)
	assert.Equal(t, correctCount, stored.CorrectAttempts)

	var attempts []problemModels.Attempt
	require.NoError(t, db.Where("user_id = ?", student.ID).Order("attempt_number asc").Find(&attempts).Error)
	require.Len(t, attempts, workers)
	for i, attempt := range attempts {
		assert.Equal(t, i+1, attempt.AttemptNumber, "ordinals must be a gapless sequence")
	}
}

func TestAttemptOrdinal_UniqueIndexRejectsDuplicates(t *testing.T) {
	_, db := setupTestApp(t)

	first := problemModels.Attempt{UserID: 1, ProblemID: "prob-1", AttemptNumber: 1}
	require.NoError(t, db.Create(&first).Error)

	duplicate := problemModels.Attempt{UserID: 1, ProblemID: "prob-1", AttemptNumber: 1}
	assert.Error(t, db.Create(&duplicate).Error, "same user, problem, and ordinal must be rejected")

	otherUser := problemModels.Attempt{UserID: 2, ProblemID: "prob-1", AttemptNumber: 1}
	assert.NoError(t, db.Create(&otherUser).Error)

	nextOrdinal := problemModels.Attempt{UserID: 1, ProblemID: "prob-1", AttemptNumber: 2}
	assert.NoError(t, db.Create(&nextOrdinal).Error)
}

func TestRecordProblemAttempt_SkipsProgressWhenNotEnrolled(t *testing.T) {
	app, db := setupTestApp(t)
	student := createStudent(t, db, "student@example.com")
	token := tokenFor(t, student)
	prob := seedPublishedProblem(t, db, "calculus", "求導數", 4)

	prog := programModels.Program{
		ID:          uuid.NewString(),
		Name:        "open_practice",
		DisplayName: "公開練習",
		Status:      programModels.StatusPublished,
		IsPublic:    true,
	}
	require.NoError(t, db.Create(&prog).Error)

	payload := attemptPayload(true)
	payload["program_id"] = prog.ID
	resp, _ := doJSON(t, app, http.MethodPost, "/practice/problem/"+prob.ID+"/attempt", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "attempts outside an enrollment are still valid practice")

	var count int64
	db.Model(&programModels.Enrollment{}).Count(&count)
	assert.Zero(t, count)
}
