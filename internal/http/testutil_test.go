package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/config"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"github.com/tanzid64/assets-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestContext opens a per-test in-memory sqlite database with foreign
// keys enabled and runs the regular migrations against it.
func newTestContext(t *testing.T) *appcontext.Context {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &appcontext.Context{DB: db, Logger: zap.NewNop()}
}

func newTestRouter(t *testing.T, ctx *appcontext.Context) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewHTTPService(ctx).Engine()
}

func createUser(t *testing.T, ctx *appcontext.Context, username, email, password string, staff bool) entity.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      staff,
	}
	if err := ctx.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createCompany(t *testing.T, ctx *appcontext.Context, name string, owner entity.User) entity.Company {
	t.Helper()

	company := entity.Company{Name: name, OwnerID: owner.ID}
	if err := ctx.DB.Create(&company).Error; err != nil {
		t.Fatalf("failed to create company: %v", err)
	}
	return company
}

func createEmployee(t *testing.T, ctx *appcontext.Context, name, email string, company entity.Company) entity.Employee {
	t.Helper()

	employee := entity.Employee{Name: name, Email: email, CompanyID: company.ID}
	if err := ctx.DB.Create(&employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return employee
}

func createDevice(t *testing.T, ctx *appcontext.Context, name, serialNo string, company entity.Company) entity.Device {
	t.Helper()

	device := entity.Device{Name: name, SerialNo: serialNo, IsAvailable: true, CompanyID: company.ID}
	if err := ctx.DB.Create(&device).Error; err != nil {
		t.Fatalf("failed to create device: %v", err)
	}
	return device
}

func tokenFor(t *testing.T, user entity.User) string {
	t.Helper()

	token, err := utils.GenerateJWT(user.ID.String())
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// performRequest issues an in-process request. A nil body sends no payload;
// anything else is JSON-encoded. An empty token leaves the request
// unauthenticated.
func performRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}
