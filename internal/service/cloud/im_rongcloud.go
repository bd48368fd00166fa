package cloud

import (
	"sync"

	"github.com/qiniu/x/xlog"
	rcsdk "github.com/rongcloud/server-sdk-go/v3/sdk"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
)

// DefaultPortraitURL default IM avatar.
const DefaultPortraitURL = "https://developer.rongcloud.cn/static/images/newversion-logo.png"

// RongCloudIMService issues IM tokens for the text channel that sits next
// to the interview call. Tokens are cached per user for the process
// lifetime.
type RongCloudIMService struct {
	rongCloudClient *rcsdk.RongCloud
	tokenLock       sync.RWMutex
	tokens          map[string]string
	xl              *xlog.Logger
}

func NewRongCloudIMService(conf utils.RongCloudIMConfig) *RongCloudIMService {
	return &RongCloudIMService{
		rongCloudClient: rcsdk.NewRongCloud(conf.AppKey, conf.AppSecret),
		tokens:          map[string]string{},
		xl:              xlog.New("interview-im"),
	}
}

// UserToken registers the user with the IM provider and returns their
// connection token.
func (c *RongCloudIMService) UserToken(xl *xlog.Logger, userID, name string) (string, error) {
	if xl == nil {
		xl = c.xl
	}
	c.tokenLock.RLock()
	token, ok := c.tokens[userID]
	c.tokenLock.RUnlock()
	if ok {
		return token, nil
	}
	if name == "" {
		name = userID
	}
	userRes, err := c.rongCloudClient.UserRegister(userID, name, DefaultPortraitURL)
	if err != nil {
		xl.Errorf("failed to get user token from rongcloud, error %v", err)
		return "", err
	}
	c.tokenLock.Lock()
	c.tokens[userID] = userRes.Token
	c.tokenLock.Unlock()
	return userRes.Token, nil
}
