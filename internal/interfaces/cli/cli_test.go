package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondhand/console/internal/domain/session"
	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
	"github.com/secondhand/console/internal/testutil"
)

const (
	testPassword = "secret"
	testToken    = "tok-console"
)

// harness runs the console against a fake backend. The session lives in a
// file so it survives between runs, like it does for an operator.
type harness struct {
	t           *testing.T
	backend     *testutil.Backend
	configPath  string
	sessionPath string
	role        string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	h := &harness{
		t:           t,
		backend:     testutil.NewBackend(t),
		configPath:  filepath.Join(dir, "config.toml"),
		sessionPath: filepath.Join(dir, "session.json"),
		role:        session.DefaultAdminRole,
	}

	body := fmt.Sprintf(`
[backend]
base_url = %q
asset_base_url = "http://cdn.test"

[session]
store = "file"
file_path = %q

[log]
level = "error"
`, h.backend.URL(), h.sessionPath)
	require.NoError(t, os.WriteFile(h.configPath, []byte(body), 0o600))

	login := func(c *gin.Context) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = c.ShouldBindJSON(&creds)
		if creds.Password != testPassword {
			c.JSON(http.StatusOK, testutil.Fail(1, "bad credentials"))
			return
		}
		c.JSON(http.StatusOK, testutil.OK(testToken))
	}
	h.backend.Handle(http.MethodPost, "/user/login", login)
	h.backend.Handle(http.MethodPost, "/user/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, testutil.OK(gin.H{"token": testToken}))
	})
	h.backend.Handle(http.MethodGet, "/user/info", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+testToken {
			c.JSON(http.StatusOK, testutil.Fail(401, "token expired"))
			return
		}
		c.JSON(http.StatusOK, testutil.OK(gin.H{
			"userId":   7,
			"username": "alice",
			"role":     h.role,
			"balance":  12.5,
		}))
	})
	return h
}

func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", h.configPath}, args...)
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (h *harness) login() {
	h.t.Helper()
	_, stderr, err := h.run("login", "-u", "alice", "-p", testPassword)
	require.NoError(h.t, err, stderr)
}

func (h *harness) status() statusView {
	h.t.Helper()
	stdout, stderr, err := h.run("status")
	require.NoError(h.t, err, stderr)
	var view statusView
	require.NoError(h.t, json.Unmarshal([]byte(stdout), &view))
	return view
}

func (h *harness) callsTo(path string) int {
	n := 0
	for _, call := range h.backend.Calls() {
		if call.Path == path {
			n++
		}
	}
	return n
}

func TestLogin(t *testing.T) {
	t.Run("persists the session between runs", func(t *testing.T) {
		h := newHarness(t)

		stdout, _, err := h.run("login", "-u", "alice", "-p", testPassword)
		require.NoError(t, err)

		var view statusView
		require.NoError(t, json.Unmarshal([]byte(stdout), &view))
		assert.True(t, view.LoggedIn)
		assert.True(t, view.Admin)
		assert.Equal(t, "/dashboard", view.Route)
		assert.Equal(t, session.FormatOpaque, view.Token.Format)
		require.NotNil(t, view.Profile)
		assert.Equal(t, "alice", view.Profile.Username)
		assert.NotContains(t, stdout, testToken)

		// the profile is not persisted, only the token
		later := h.status()
		assert.True(t, later.LoggedIn)
		assert.Nil(t, later.Profile)
		assert.FileExists(t, h.sessionPath)
	})

	t.Run("admin endpoint", func(t *testing.T) {
		h := newHarness(t)

		_, _, err := h.run("login", "--admin", "-u", "root", "-p", "anything")
		require.NoError(t, err)

		assert.Equal(t, 1, h.callsTo("/user/admin"))
		assert.Zero(t, h.callsTo("/user/login"))
		assert.True(t, h.status().LoggedIn)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		h := newHarness(t)

		_, stderr, err := h.run("login", "-u", "alice", "-p", "wrong")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrLoginFailed)
		assert.Contains(t, stderr, "! bad credentials")
		assert.False(t, h.status().LoggedIn)
		assert.NoFileExists(t, h.sessionPath)
	})

	t.Run("missing flags", func(t *testing.T) {
		h := newHarness(t)

		_, _, err := h.run("login", "-u", "alice")
		require.Error(t, err)
		assert.Empty(t, h.backend.Calls())
	})
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login()

	stdout, stderr, err := h.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "logged out\n", stdout)
	assert.NotContains(t, stderr, MessageSessionExpired)

	view := h.status()
	assert.False(t, view.LoggedIn)
	assert.Equal(t, "/login", view.Route)
	assert.NoFileExists(t, h.sessionPath)
}

func TestGuard(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		h := newHarness(t)

		_, stderr, err := h.run("orders", "list")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotLoggedIn)
		assert.Contains(t, stderr, "redirected to /login")
		assert.Empty(t, h.backend.Calls())
	})

	t.Run("requires an administrator", func(t *testing.T) {
		h := newHarness(t)
		h.role = "普通用户"
		h.login()

		_, stderr, err := h.run("analytics", "summary")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Contains(t, stderr, "redirected to /dashboard")
		assert.Zero(t, h.callsTo("/data/analysis/summary"))
	})

	t.Run("fetches the profile before an admin check", func(t *testing.T) {
		h := newHarness(t)
		h.login()
		h.backend.ReplyOK(http.MethodGet, "/data/analysis/summary", gin.H{"userCount": 3})

		stdout, _, err := h.run("analytics", "summary")
		require.NoError(t, err)
		assert.JSONEq(t, `{"userCount":3}`, stdout)
		// once at login, once for the guard
		assert.Equal(t, 2, h.callsTo("/user/info"))
	})

	t.Run("signed-in user pages", func(t *testing.T) {
		h := newHarness(t)
		h.role = "普通用户"
		h.login()

		stdout, _, err := h.run("whoami")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"username": "alice"`)
	})
}

func TestOpen(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run("open", "/register")
	require.NoError(t, err)
	assert.Equal(t, "/register\tRegister - Second-hand Market Admin\n", stdout)

	_, stderr, err := h.run("open", "/")
	assert.ErrorIs(t, err, shared.ErrNotLoggedIn)
	assert.Contains(t, stderr, "redirected to /login (Login - Second-hand Market Admin)")

	h.login()
	stdout, _, err = h.run("open", "/")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard\tDashboard - Second-hand Market Admin\n", stdout)

	_, _, err = h.run("open", "/nowhere")
	require.Error(t, err)
}

func TestRoutes(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run("routes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/analytics")
	assert.Contains(t, stdout, "-> /dashboard")
	assert.Contains(t, stdout, "public")
}

func TestSessionExpired(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.Reply(http.MethodGet, "/product/list", http.StatusOK, testutil.Fail(401, "token expired"))

	_, stderr, err := h.run("products", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrAuthExpired)
	assert.Contains(t, stderr, "! token expired")
	assert.Contains(t, stderr, MessageSessionExpired)

	view := h.status()
	assert.False(t, view.LoggedIn)
	assert.NoFileExists(t, h.sessionPath)
}

func TestVerboseLogging(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantLog bool
	}{
		{name: "quiet by default", args: []string{"products", "list"}},
		{name: "verbose logs requests with the operator", args: []string{"--verbose", "products", "list"}, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.login()
			h.backend.ReplyOK(http.MethodGet, "/product/list", gin.H{"list": []gin.H{}, "total": 0})

			_, stderr, err := h.run(tt.args...)
			require.NoError(t, err)
			if !tt.wantLog {
				assert.NotContains(t, stderr, "sending request")
				return
			}
			assert.Contains(t, stderr, "sending request")
			assert.Regexp(t, `"username":\s*"alice"`, stderr)
		})
	}
}

func TestProducts(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.ReplyOK(http.MethodGet, "/product/list", gin.H{
		"list":     []gin.H{{"productId": 1, "title": "lamp", "price": 9.9, "mainImage": "/uploads/lamp.png"}},
		"total":    1,
		"pageNum":  2,
		"pageSize": 5,
	})
	h.backend.ReplyOK(http.MethodGet, "/product/detail/:id", gin.H{
		"productId": 1,
		"title":     "lamp",
		"mainImage": "http://localhost:8080/uploads/lamp.png",
	})
	h.backend.ReplyOK(http.MethodDelete, "/product/delete/:id", nil)

	t.Run("list sends only given filters", func(t *testing.T) {
		stdout, _, err := h.run("products", "list", "--page", "2", "--size", "5", "--keyword", "lamp")
		require.NoError(t, err)
		assert.Contains(t, stdout, "http://cdn.test/uploads/lamp.png")

		call, ok := h.backend.LastCall()
		require.True(t, ok)
		assert.Equal(t, "2", call.Query.Get("pageNum"))
		assert.Equal(t, "5", call.Query.Get("pageSize"))
		assert.Equal(t, "lamp", call.Query.Get("keyword"))
		assert.False(t, call.Query.Has("categoryId"))
		assert.False(t, call.Query.Has("status"))
		assert.True(t, call.Query.Has(httpclient.CacheBustParam))
		assert.Equal(t, "Bearer "+testToken, call.Header.Get("Authorization"))
	})

	t.Run("get rewrites image hosts", func(t *testing.T) {
		stdout, _, err := h.run("products", "get", "1")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"mainImage": "http://cdn.test/uploads/lamp.png"`)
	})

	t.Run("delete", func(t *testing.T) {
		stdout, _, err := h.run("products", "delete", "1")
		require.NoError(t, err)
		assert.Equal(t, "product 1 deleted\n", stdout)
	})

	t.Run("invalid id", func(t *testing.T) {
		before := len(h.backend.Calls())
		_, _, err := h.run("products", "get", "abc")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		// only the guard's profile fetch reached the backend
		assert.Len(t, h.backend.Calls(), before+1)
	})
}

func TestOrdersShip(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.ReplyOK(http.MethodPost, "/order/ship/:id", nil)

	stdout, _, err := h.run("orders", "ship", "42", "--company", "SF", "--tracking", "SF100")
	require.NoError(t, err)
	assert.Equal(t, "order 42 shipped\n", stdout)

	call, ok := h.backend.LastCall()
	require.True(t, ok)
	assert.Equal(t, "/order/ship/42", call.Path)
	assert.JSONEq(t, `{"expressCompany":"SF","expressNo":"SF100"}`, string(call.Body))

	// validation fails before anything is sent
	before := h.callsTo("/order/ship/43")
	_, _, err = h.run("orders", "ship", "43", "--company", "SF")
	var confErr *httpclient.RequestConfigError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, before, h.callsTo("/order/ship/43"))
}

func TestPromotionsStatus(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.ReplyOK(http.MethodPut, "/admin/promotion/status", true)

	stdout, _, err := h.run("promotions", "status", "5", "online")
	require.NoError(t, err)
	assert.Equal(t, "true\n", stdout)

	call, ok := h.backend.LastCall()
	require.True(t, ok)
	assert.Equal(t, "5", call.Query.Get("promotionId"))
	assert.Equal(t, "1", call.Query.Get("status"))

	_, _, err = h.run("promotions", "status", "5", "paused")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestFeedback(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.ReplyOK(http.MethodPost, "/admin/feedback/reply", true)
	h.backend.ReplyOK(http.MethodPut, "/admin/feedback/priority", true)

	_, _, err := h.run("feedback", "reply", "9", "-m", "fixed")
	require.NoError(t, err)
	call, _ := h.backend.LastCall()
	assert.JSONEq(t, `{"feedbackId":9,"adminReply":"fixed","status":2}`, string(call.Body))

	_, _, err = h.run("feedback", "priority", "9", "2")
	require.NoError(t, err)
	call, _ = h.backend.LastCall()
	assert.Equal(t, "2", call.Query.Get("priorityLevel"))

	_, _, err = h.run("feedback", "priority", "9", "7")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestAnalytics(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.backend.ReplyOK(http.MethodGet, "/data/analysis/order/trend", []gin.H{{"date": "2024-01-01", "count": 4}})
	h.backend.ReplyOK(http.MethodGet, "/data/analysis/custom", gin.H{"orders": 1})

	t.Run("trend", func(t *testing.T) {
		_, _, err := h.run("analytics", "trend", "order", "--days", "7")
		require.NoError(t, err)
		call, _ := h.backend.LastCall()
		assert.Equal(t, "/data/analysis/order/trend", call.Path)
		assert.Equal(t, "7", call.Query.Get("days"))
	})

	t.Run("unknown trend", func(t *testing.T) {
		_, _, err := h.run("analytics", "trend", "weather")
		var confErr *httpclient.RequestConfigError
		assert.ErrorAs(t, err, &confErr)
	})

	t.Run("custom range", func(t *testing.T) {
		_, _, err := h.run("analytics", "custom", "--from", "2024-01-01", "--to", "2024-01-31")
		require.NoError(t, err)
		call, _ := h.backend.LastCall()
		assert.Equal(t, "2024-01-01", call.Query.Get("startDate"))
		assert.Equal(t, "2024-01-31", call.Query.Get("endDate"))
	})

	t.Run("custom range validation", func(t *testing.T) {
		_, _, err := h.run("analytics", "custom", "--from", "01/01/2024", "--to", "2024-01-31")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, _, err = h.run("analytics", "custom", "--from", "2024-02-01", "--to", "2024-01-31")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestMetricsFile(t *testing.T) {
	h := newHarness(t)
	metrics := filepath.Join(t.TempDir(), "console.prom")

	_, _, err := h.run("--metrics-file", metrics, "login", "-u", "alice", "-p", testPassword)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), httpclient.MetricRequestsTotal)
	assert.Contains(t, string(data), `method="POST",outcome="success"`)
}
