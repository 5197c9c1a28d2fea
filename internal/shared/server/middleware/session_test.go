package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func sessionTestRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(3600, false))
	r.GET("/", func(c *gin.Context) {
		*seen = SessionIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestSessionIssuesCookieWhenMissing(t *testing.T) {
	var seen string
	r := sessionTestRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid session id in context, got %q", seen)
	}

	cookies := resp.Result().Cookies()
	var cookie *http.Cookie
	for _, c := range cookies {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie, got %v", SessionCookie, cookies)
	}
	if cookie.Value != seen {
		t.Fatalf("expected cookie %q to match context id %q", cookie.Value, seen)
	}
	if !cookie.HttpOnly {
		t.Fatalf("expected http-only cookie")
	}
}

func TestSessionKeepsValidCookie(t *testing.T) {
	var seen string
	r := sessionTestRouter(&seen)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if seen != id {
		t.Fatalf("expected session id %q kept, got %q", id, seen)
	}
	for _, c := range resp.Result().Cookies() {
		if c.Name == SessionCookie {
			t.Fatalf("expected no cookie reissue for valid session")
		}
	}
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	var seen string
	r := sessionTestRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc/passwd"})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected fresh uuid for malformed cookie, got %q", seen)
	}
	if seen == "../../etc/passwd" {
		t.Fatalf("expected malformed id replaced")
	}
}
