package handler_test

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/odelyak/campboard/internal/config"
    "github.com/odelyak/campboard/internal/handler"
    "github.com/odelyak/campboard/internal/repository"
    "github.com/odelyak/campboard/internal/router"
    "github.com/odelyak/campboard/internal/utils"
)

const testSecret = "test-secret"

func testConfig() config.Config {
    return config.Config{
        Env:          "test",
        Port:         "0",
        JWTSecret:    testSecret,
        AccessTTLMin: 15,
    }
}

func userRow(t *testing.T, id uint64, email, password, role string, active bool) *sqlmock.Rows {
    t.Helper()
    hash, err := utils.HashPassword(password, bcrypt.MinCost)
    require.NoError(t, err)
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
        AddRow(id, email, hash, role, active, now, now)
}

func newAuthServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })

    e := echo.New()
    router.RegisterAuth(e, handler.NewAuthHandler(testConfig(), repository.NewUserRepo(db)), testSecret)
    return e, mock
}

func postLogin(e *echo.Echo, body string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestLoginIssuesAccessToken(t *testing.T) {
    e, mock := newAuthServer(t)
    mock.ExpectQuery("FROM users WHERE email").
        WithArgs("dana@example.org").
        WillReturnRows(userRow(t, 10, "dana@example.org", "secret123", "SCHEDULER", true))

    rec := postLogin(e, `{"email":"Dana@Example.org","password":"secret123"}`)
    require.Equal(t, http.StatusOK, rec.Code)

    var resp struct {
        User struct {
            ID   uint64 `json:"id"`
            Role string `json:"role"`
        } `json:"user"`
        Access struct {
            Token string `json:"token"`
        } `json:"access"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Equal(t, uint64(10), resp.User.ID)
    require.Equal(t, "SCHEDULER", resp.User.Role)
    require.NotEmpty(t, resp.Access.Token)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
    e, mock := newAuthServer(t)

    mock.ExpectQuery("FROM users WHERE email").
        WillReturnRows(userRow(t, 10, "dana@example.org", "secret123", "SCHEDULER", true))
    rec := postLogin(e, `{"email":"dana@example.org","password":"wrong"}`)
    require.Equal(t, http.StatusUnauthorized, rec.Code)

    // Unknown accounts look identical to wrong passwords.
    mock.ExpectQuery("FROM users WHERE email").
        WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}))
    rec = postLogin(e, `{"email":"ghost@example.org","password":"secret123"}`)
    require.Equal(t, http.StatusUnauthorized, rec.Code)

    // Deactivated accounts cannot log in even with the right password.
    mock.ExpectQuery("FROM users WHERE email").
        WillReturnRows(userRow(t, 11, "old@example.org", "secret123", "SCHEDULER", false))
    rec = postLogin(e, `{"email":"old@example.org","password":"secret123"}`)
    require.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = postLogin(e, `{"email":"","password":""}`)
    require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeReflectsToken(t *testing.T) {
    e, _ := newAuthServer(t)
    access, err := utils.NewAccessToken(testSecret, 42, "ADMIN", 15)
    require.NoError(t, err)

    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    req.Header.Set("Authorization", "Bearer "+access.Token)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    require.Equal(t, http.StatusOK, rec.Code)
    var resp struct {
        UserID uint64 `json:"user_id"`
        Role   string `json:"role"`
        Admin  bool   `json:"admin"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Equal(t, uint64(42), resp.UserID)
    require.Equal(t, "ADMIN", resp.Role)
    require.True(t, resp.Admin)

    // No token at all is a 401 from the JWT middleware.
    req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    require.Equal(t, http.StatusUnauthorized, rec.Code)
}
