package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"activity-portal-api/config"
	"activity-portal-api/models"
	"activity-portal-api/routes"
	"activity-portal-api/services"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubValidator struct {
	findings []services.Finding
	err      error
}

func (s *stubValidator) Validate(ctx context.Context, formType, documentPath string) ([]services.Finding, error) {
	return s.findings, s.err
}

// setupServer wires a fresh sqlite database and the full router. The
// returned worker is not started; tests drive it synchronously.
func setupServer(t *testing.T) (*gin.Engine, *services.ValidationWorker) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("UPLOAD_PATH", t.TempDir())

	dsn := filepath.Join(t.TempDir(), "portal.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&models.User{},
		&models.Affiliate{},
		&models.Submission{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	config.DB = db

	worker := services.NewValidationWorker(db, &stubValidator{})
	router := gin.New()
	routes.SetupRoutes(router, worker)
	return router, worker
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func seedUser(t *testing.T, id, name, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		ID:          id,
		Name:        name,
		Email:       email,
		Password:    string(hash),
		Role:        role,
		Affiliates:  models.StringList{},
		Permissions: models.StringList{},
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func saveUser(user *models.User) error {
	return config.DB.Save(user).Error
}

func seedAffiliate(t *testing.T, name string) models.Affiliate {
	t.Helper()
	affiliate := models.Affiliate{
		Name:             name,
		Category:         models.CategoryAcademic,
		Status:           models.AffiliateActive,
		AdvisorID:        "prof-001",
		CommitteeMembers: models.StringList{},
	}
	if err := config.DB.Create(&affiliate).Error; err != nil {
		t.Fatalf("seed affiliate: %v", err)
	}
	return affiliate
}

func createSubmission(t *testing.T, router *gin.Engine, affiliateID, submittedBy string, files []string) models.Submission {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/submission/sap", gin.H{
		"affiliateId":  affiliateID,
		"activityName": "Chess Night",
		"date":         "2025-03-01",
		"description":  "Monthly chess tournament",
		"files":        files,
		"submittedBy":  submittedBy,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create submission: status %d body %s", w.Code, w.Body.String())
	}
	var submission models.Submission
	decodeBody(t, w, &submission)
	return submission
}

func forceStatus(t *testing.T, id, status string) {
	t.Helper()
	if err := config.DB.Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error; err != nil {
		t.Fatalf("force status: %v", err)
	}
}

func reloadSubmission(t *testing.T, id string) models.Submission {
	t.Helper()
	var submission models.Submission
	if err := config.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		t.Fatalf("reload submission: %v", err)
	}
	return submission
}

// uploadPDF performs a multipart upload with an explicit PDF content type.
func uploadPDF(t *testing.T, router *gin.Engine, filename string, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test document")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
