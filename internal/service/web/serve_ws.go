package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/qiniu/x/xlog"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/signaling"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
	// Browsers on any hiring-site origin may connect; authorization is
	// enforced by the credential, not the origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AccountStore resolves display names for authenticated connections.
type AccountStore interface {
	GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error)
}

// serveSocket upgrades an authenticated request to a WebSocket and starts
// the connection's pumps. The identity verified by the middleware is
// attached to the connection for its lifetime.
func serveSocket(hub *signaling.Hub, accounts AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := c.MustGet(model.XLogKey).(*xlog.Logger)
		identity := c.MustGet(model.IdentityContextKey).(model.Identity)

		if accounts != nil {
			if account, err := accounts.GetAccountByID(xl, identity.UserID); err == nil {
				identity.Nickname = account.Nickname
			}
		}
		if identity.Nickname == "" {
			identity.Nickname = identity.UserID
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			xl.Errorf("failed to upgrade connection for user %s, error %v", identity.UserID, err)
			return
		}
		connID := utils.GenerateID()
		xl.Infof("user %s connected to interview namespace, conn %s", identity.UserID, connID)

		client := signaling.NewClient(hub, conn, identity, connID, xl)
		go client.WritePump()
		go client.ReadPump()
	}
}
