package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/cloud"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/db"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/signaling"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/web/middleware"
)

// NewRouter returns the gin router serving the interview socket namespace.
func NewRouter(config *utils.Config) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	interviewService, err := db.NewInterviewService(*config.Mongo, config.Signaling, nil)
	if err != nil {
		return nil, err
	}
	accountService, err := db.NewAccountService(*config.Mongo, nil)
	if err != nil {
		return nil, err
	}

	hub := signaling.NewHub(signaling.NewRegistry(), interviewService, nil)
	if config.RTC != nil && config.RTC.AppID != "" {
		hub.RTC = cloud.NewRTCService(*config)
	}
	if config.IM != nil && config.IM.Enabled {
		hub.IM = cloud.NewRongCloudIMService(*config.IM)
	}

	v1 := router.Group("/v1", addRequestID)
	{
		v1.GET("interview/socket", middleware.Authenticate(config.JwtKey), serveSocket(hub, accountService))
		v1.GET("healthz", returnOK)
	}

	router.NoRoute(addRequestID, returnNotFound)
	router.RedirectTrailingSlash = false

	return router, nil
}

func addRequestID(c *gin.Context) {
	requestID := ""
	if requestID = c.Request.Header.Get(model.RequestIDHeader); requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
}

func returnOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
}

func corsMiddleware() gin.HandlerFunc {
	conf := cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"POST", "OPTIONS", "GET", "PUT", "DELETE", "HEAD"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(conf)
}
