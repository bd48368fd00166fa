package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

const testJwtKey = "test-key"

type identityCapture struct {
	identity model.Identity
	seen     bool
}

func newAuthRouter(t *testing.T) (*gin.Engine, *identityCapture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	capture := &identityCapture{}
	router := gin.New()
	router.GET("/socket", Authenticate(testJwtKey), func(c *gin.Context) {
		capture.identity = c.MustGet(model.IdentityContextKey).(model.Identity)
		capture.seen = true
		c.Status(http.StatusOK)
	})
	return router, capture
}

func signToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	token, err := utils.JwtSign(claims, testJwtKey)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return token
}

func request(router *gin.Engine, header, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/socket"+query, nil)
	if header != "" {
		req.Header.Set(model.HeaderTokenKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateBearerHeader(t *testing.T) {
	router, capture := newAuthRouter(t)
	token := signToken(t, map[string]interface{}{"userId": "user-1", "name": "Sana", "role": "candidate"})

	w := request(router, "Bearer "+token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	if !capture.seen {
		t.Fatal("handler was not reached")
	}
	if capture.identity.UserID != "user-1" || capture.identity.Nickname != "Sana" || capture.identity.Role != model.InterviewRoleCandidate {
		t.Fatalf("unexpected identity %+v", capture.identity)
	}
}

func TestAuthenticateQueryToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	token := signToken(t, map[string]interface{}{"userId": "user-1", "role": "interviewer"})

	w := request(router, "", "?token="+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	w := request(router, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	router, _ := newAuthRouter(t)
	w := request(router, "Bearer not-a-token", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateWrongKey(t *testing.T) {
	router, _ := newAuthRouter(t)
	token, err := utils.JwtSign(map[string]interface{}{"userId": "user-1", "role": "candidate"}, "other-key")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	w := request(router, "Bearer "+token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateDisallowedRole(t *testing.T) {
	router, _ := newAuthRouter(t)
	for _, role := range []string{"", "admin", "observer"} {
		token := signToken(t, map[string]interface{}{"userId": "user-1", "role": role})
		w := request(router, "Bearer "+token, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("role %q: expected 401, got %d", role, w.Code)
		}
	}
}
