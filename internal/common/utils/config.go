package utils

import (
	"log"

	qconfig "github.com/qiniu/x/config"
)

var (
	DefaultConf Config
)

func InitConf(configFilePath string) {
	err := qconfig.LoadFile(&DefaultConf, configFilePath)
	if err != nil {
		log.Fatalf("failed to load config file, error %v", err)
	}
}

// MongoConfig mongo database settings.
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// QiniuKeyPair qiniu API access key/secret key pair.
type QiniuKeyPair struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// QiniuRTCConfig qiniu RTC settings used to mint room tokens for interview calls.
type QiniuRTCConfig struct {
	AppID                 string `json:"app_id"`
	RoomTokenExpireSecond int    `json:"room_token_expire_s"`
}

// RongCloudIMConfig rongcloud IM settings for call notices.
type RongCloudIMConfig struct {
	Enabled   bool   `json:"enabled"`
	AppKey    string `json:"app_key"`
	AppSecret string `json:"app_secret"`
}

// SignalingConfig knobs of the interview socket namespace.
type SignalingConfig struct {
	// EarlyJoinMinute how early a party may enter before the scheduled time.
	EarlyJoinMinute int `json:"early_join_minute"`
	// LateJoinMinute how long after the scheduled time a scheduled interview
	// stays joinable.
	LateJoinMinute int `json:"late_join_minute"`
}

// Config service configuration.
type Config struct {
	// DebugLevel 1 prints info/warn/error, 0 additionally prints debug.
	DebugLevel   int                `json:"debug_level"`
	ListenAddr   string             `json:"listen_addr"`
	JwtKey       string             `json:"jwt_key"`
	Mongo        *MongoConfig       `json:"mongo"`
	QiniuKeyPair QiniuKeyPair       `json:"qiniu_key_pair"`
	RTC          *QiniuRTCConfig    `json:"rtc"`
	IM           *RongCloudIMConfig `json:"im"`
	Signaling    SignalingConfig    `json:"signaling"`
}

// NewSample returns a sample configuration.
func NewSample() *Config {
	return &Config{
		DebugLevel: 0,
		ListenAddr: ":5000",
		JwtKey:     "ezy-jobs-dev-key",
		Mongo: &MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "ezy_jobs_test",
		},
		RTC: &QiniuRTCConfig{
			RoomTokenExpireSecond: 60,
		},
		IM: &RongCloudIMConfig{},
		Signaling: SignalingConfig{
			EarlyJoinMinute: 5,
			LateJoinMinute:  60,
		},
	}
}
