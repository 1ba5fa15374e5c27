package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nurse-directory/config"
	"nurse-directory/internal/db"
	"nurse-directory/internal/model"
	"nurse-directory/internal/store"
)

func setupNurseRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := db.Init(&config.DatabaseConfig{DSN: "sqlite://:memory:"}, zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(gormDB, store.WithHashCost(bcrypt.MinCost))
	_, err = s.Seed(context.Background(), model.DemoNurses())
	require.NoError(t, err)

	cfg := config.Default().Server
	cfg.RateLimitPerSec = 1000
	cfg.RateBurst = 1000
	return NewRouter(s, cfg, zerolog.Nop())
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestListNurses(t *testing.T) {
	router := setupNurseRouter(t)

	w := doJSON(router, http.MethodGet, "/nurse/index", "")
	require.Equal(t, http.StatusOK, w.Code)

	var nurses []model.Nurse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nurses))
	require.Len(t, nurses, 8)
	assert.Equal(t, "alice.j", nurses[0].Username)
	for _, n := range nurses {
		assert.Empty(t, n.Password, "passwords never leave the server")
	}
}

func TestLogin(t *testing.T) {
	router := setupNurseRouter(t)

	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedBody string
	}{
		{name: "Valid credentials", body: `{"username":"bob.s","password":"abc123"}`, expectedCode: http.StatusOK, expectedBody: "true"},
		{name: "Wrong password", body: `{"username":"bob.s","password":"abc"}`, expectedCode: http.StatusUnauthorized, expectedBody: "false"},
		{name: "Unknown user", body: `{"username":"zoe","password":"abc123"}`, expectedCode: http.StatusUnauthorized, expectedBody: "false"},
		{name: "Missing password", body: `{"username":"bob.s"}`, expectedCode: http.StatusBadRequest, expectedBody: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/nurse/login", tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestCreateNurse(t *testing.T) {
	router := setupNurseRouter(t)

	w := doJSON(router, http.MethodPost, "/nurse/new",
		`{"name":"Ana","surname":"Ruiz","email":"ana@fatfox.com","user":"ana.r","password":"secret","profile":"Aw=="}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Nurse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, []byte{3}, created.Profile)
	assert.Empty(t, created.Password)

	w = doJSON(router, http.MethodPost, "/nurse/new",
		`{"name":"Ana","surname":"Ruiz","email":"other@fatfox.com","user":"ANA.R","password":"secret"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"username already exists: nurse conflicts with an existing record"}`, w.Body.String())

	w = doJSON(router, http.MethodPost, "/nurse/new",
		`{"name":"Ana","surname":"Ruiz","email":"not-an-email","user":"ana.x","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookups(t *testing.T) {
	router := setupNurseRouter(t)

	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedUser string
	}{
		{name: "By id", path: "/nurse/3", expectedCode: http.StatusOK, expectedUser: "bob.s"},
		{name: "Missing id", path: "/nurse/99", expectedCode: http.StatusNotFound},
		{name: "Invalid id", path: "/nurse/abc", expectedCode: http.StatusBadRequest},
		{name: "By name", path: "/nurse/name/Emma", expectedCode: http.StatusOK, expectedUser: "emma.w"},
		{name: "By name is exact", path: "/nurse/name/Em", expectedCode: http.StatusNotFound},
		{name: "By username", path: "/nurse/user/fiona.g", expectedCode: http.StatusOK, expectedUser: "fiona.g"},
		{name: "Escaped username", path: "/nurse/user/a%2Fb", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, tt.path, "")
			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedUser == "" {
				return
			}
			var n model.Nurse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
			assert.Equal(t, tt.expectedUser, n.Username)
		})
	}
}

func TestUpdateAndDeleteNurse(t *testing.T) {
	router := setupNurseRouter(t)

	w := doJSON(router, http.MethodPut, "/nurse/3",
		`{"name":"Bob","surname":"Smythe","email":"bob.smith@fatfox.com","user":"bob.s","password":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Nurse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, int64(3), updated.ID)
	assert.Equal(t, "Smythe", updated.Surname)

	// The old password still works.
	w = doJSON(router, http.MethodPost, "/nurse/login", `{"username":"bob.s","password":"abc123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/nurse/3",
		`{"name":"Bob","surname":"Smythe","email":"emma.wilson@fatfox.com","user":"bob.s"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPut, "/nurse/42",
		`{"name":"X","surname":"Y","email":"x@fatfox.com","user":"xy"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusNoContent, doJSON(router, http.MethodDelete, "/nurse/3", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodDelete, "/nurse/3", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/nurse/3", "").Code)
}
