package cloud

import (
	"time"

	qiniuauth "github.com/qiniu/go-sdk/v7/auth"
	qiniurtc "github.com/qiniu/go-sdk/v7/rtc"
	"github.com/qiniu/x/xlog"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
)

// DefaultRTCRoomTokenTimeout default expiry of an RTC room token.
const DefaultRTCRoomTokenTimeout = 60 * time.Second

// RTCService mints media room tokens for interview calls.
type RTCService struct {
	*qiniurtc.Manager
	conf   utils.QiniuRTCConfig
	signer *qiniuauth.Credentials
	xl     *xlog.Logger
}

func NewRTCService(conf utils.Config) *RTCService {
	r := new(RTCService)
	r.conf = *conf.RTC
	r.xl = xlog.New("interview-rtc")
	r.signer = &qiniuauth.Credentials{
		AccessKey: conf.QiniuKeyPair.AccessKey,
		SecretKey: []byte(conf.QiniuKeyPair.SecretKey),
	}
	r.Manager = qiniurtc.NewManager(r.signer)
	return r
}

func (r *RTCService) RoomToken(roomID, userID, permission string) string {
	roomTimeout := DefaultRTCRoomTokenTimeout
	if r.conf.RoomTokenExpireSecond > 0 {
		roomTimeout = time.Duration(r.conf.RoomTokenExpireSecond) * time.Second
	}
	roomAccess := qiniurtc.RoomAccess{
		AppID:      r.conf.AppID,
		RoomName:   roomID,
		UserID:     userID,
		ExpireAt:   time.Now().Add(roomTimeout).Unix(),
		Permission: permission,
	}
	token, err := r.GetRoomToken(roomAccess)
	if err != nil {
		r.xl.Errorf("failed to generate room token for room %s user %s, error %v", roomID, userID, err)
		return ""
	}
	return token
}
