package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/internal/tokens"
	"github.com/gogotex/modelgate/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-xxxxxxxxxxx"

func protectedRouter(ver Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/", AuthMiddleware(ver), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientName": claims.ClientName, "domain": claims.Domain})
	})
	return g
}

func serve(g *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	before := testutil.ToFloat64(metrics.AccessDenied.WithLabelValues("missing_token"))
	rw := serve(protectedRouter(tokens.NewVerifier(testSecret)), "")

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.JSONEq(t, `{"error":"Access token required"}`, rw.Body.String())
	require.Equal(t, before+1, testutil.ToFloat64(metrics.AccessDenied.WithLabelValues("missing_token")))
}

func TestAuthMiddleware_HeaderWithoutToken(t *testing.T) {
	g := protectedRouter(tokens.NewVerifier(testSecret))
	for _, h := range []string{"BadHeader", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		require.Equal(t, http.StatusUnauthorized, serve(g, h).Code, "header %q", h)
	}
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	rw := serve(protectedRouter(tokens.NewVerifier(testSecret)), "Bearer garbage")
	require.Equal(t, http.StatusForbidden, rw.Code)
	require.JSONEq(t, `{"error":"Invalid token"}`, rw.Body.String())
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tok, err := tokens.Issue(testSecret, "Client 1", "client1.com", time.Hour, time.Now())
	require.NoError(t, err)

	rw := serve(protectedRouter(tokens.NewVerifier(testSecret)), "Bearer "+tok)
	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, map[string]string{"clientName": "Client 1", "domain": "client1.com"}, got)

	rw = serve(protectedRouter(tokens.NewVerifier(testSecret)), "bearer "+tok)
	require.Equal(t, http.StatusOK, rw.Code, "scheme is case-insensitive")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tok, err := tokens.Issue(testSecret, "c", "d", time.Hour, issued)
	require.NoError(t, err)

	now := issued.Add(30 * time.Minute)
	ver := &tokens.Verifier{Secret: testSecret, Now: func() time.Time { return now }}
	g := protectedRouter(ver)
	require.Equal(t, http.StatusOK, serve(g, "Bearer "+tok).Code)

	now = issued.Add(time.Hour + time.Second)
	require.Equal(t, http.StatusForbidden, serve(g, "Bearer "+tok).Code)
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", BearerToken("Bearer abc"))
	require.Equal(t, "abc", BearerToken("  Bearer   abc "))
	require.Empty(t, BearerToken("Token abc"))
	require.Empty(t, BearerToken("Bearer a b"))
	require.Empty(t, BearerToken(""))
}
