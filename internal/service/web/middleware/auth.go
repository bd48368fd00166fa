package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

var (
	defaultLogger = xlog.New("middleware")
)

// Authenticate verifies the caller's credential and attaches the resolved
// identity to the request context. Connections without a valid credential,
// or whose role claim is neither candidate nor interviewer, are rejected
// before any room event can be processed. The token is read from the
// Authorization header, or the token query parameter for browser WebSocket
// clients that cannot set headers.
func Authenticate(jwtKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := defaultLogger
		if v, ok := c.Get(model.XLogKey); ok {
			if l, ok := v.(*xlog.Logger); ok {
				xl = l
			}
		}
		tokenString := strings.TrimPrefix(c.GetHeader(model.HeaderTokenKey), "Bearer ")
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			xl.Debugf("%s %s: request unauthorized, no credential", c.Request.Method, c.Request.URL.Path)
			abortUnauthorized(c, errors2.ServerErrorNotLoggedIn, "not logged in")
			return
		}
		claims, err := utils.JwtDecode(tokenString, jwtKey)
		if err != nil {
			xl.Debugf("%s %s: request unauthorized, error %v", c.Request.Method, c.Request.URL.Path, err)
			abortUnauthorized(c, errors2.ServerErrorBadToken, "bad token")
			return
		}
		userID, _ := claims["userId"].(string)
		if userID == "" {
			abortUnauthorized(c, errors2.ServerErrorBadToken, "bad token")
			return
		}
		nickname, _ := claims["name"].(string)
		role, _ := claims["role"].(string)
		identity := model.Identity{
			UserID:   userID,
			Nickname: nickname,
			Role:     model.InterviewRole(role),
		}
		if !identity.Role.Valid() {
			xl.Infof("user %s rejected, role %q not allowed on interview namespace", userID, role)
			abortUnauthorized(c, errors2.ServerErrorNoPermission, "role not allowed")
			return
		}
		c.Set(model.IdentityContextKey, identity)
		c.Set(model.UserIDContextKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code int, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"code": code, "message": message})
	c.Abort()
}
