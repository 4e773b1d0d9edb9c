package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/controllers"
	"github.com/benguluru-bhavan/ordering-app/middlewares"
	"github.com/benguluru-bhavan/ordering-app/models"
)

func setupTestDBForAdminUsers(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.AdminRole{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	admin := models.Profile{Email: "admin@example.com", Password: "x", FullName: "Admin"}
	db.Create(&admin)
	db.Create(&models.AdminRole{ProfileID: admin.ID, Role: models.RoleAdmin, CreatedAt: time.Now()})

	customer := models.Profile{Email: "ravi@example.com", Password: "x", FullName: "Ravi Kumar"}
	db.Create(&customer)

	return db
}

// setupAdminUserRouter mounts the endpoint behind the real admin check so
// the 403 path is exercised too.
func setupAdminUserRouter(db *gorm.DB, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewAdminUserController(db)
	router.POST("/admin/users", stubAuth(callerID), middlewares.AdminCheck(db), ctrl.ManageAdmins)
	return router
}

func TestManageAdminsRejectsNonAdminCaller(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 2) // the customer

	w := postJSON(t, router, "/admin/users", map[string]string{"action": "list"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddAdminUnknownEmail(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 1)

	w := postJSON(t, router, "/admin/users", map[string]string{
		"action": "add",
		"email":  "nobody@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.AdminRole{}).Count(&count)
	assert.Equal(t, int64(1), count) // only the seed grant
}

func TestAddAdminRequiresEmail(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 1)

	w := postJSON(t, router, "/admin/users", map[string]string{"action": "add"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAdminGrantsExactlyOnce(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 1)

	w := postJSON(t, router, "/admin/users", map[string]string{
		"action": "add",
		"email":  "ravi@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.AdminRole{}).Where("profile_id = ?", 2).Count(&count)
	assert.Equal(t, int64(1), count)

	// Granting again is a conflict and inserts no duplicate.
	w = postJSON(t, router, "/admin/users", map[string]string{
		"action": "add",
		"email":  "ravi@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	db.Model(&models.AdminRole{}).Where("profile_id = ?", 2).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListAdminsIncludesGrantedProfile(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 1)

	w := postJSON(t, router, "/admin/users", map[string]string{
		"action": "add",
		"email":  "ravi@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/admin/users", map[string]string{"action": "list"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Admins []models.Profile `json:"admins"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Admins, 2)

	emails := []string{resp.Data.Admins[0].Email, resp.Data.Admins[1].Email}
	assert.Contains(t, emails, "ravi@example.com")
	assert.Contains(t, emails, "admin@example.com")
}

func TestManageAdminsInvalidAction(t *testing.T) {
	db := setupTestDBForAdminUsers(t)
	router := setupAdminUserRouter(db, 1)

	w := postJSON(t, router, "/admin/users", map[string]string{"action": "promote"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
