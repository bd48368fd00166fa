package utils

import (
	"encoding/base64"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// GenerateID utils func: for 12-digit random id generation
func GenerateID() string {
	alphaNum := "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength := 12
	id := ""
	for i := 0; i < idLength; i++ {
		index := rand.Intn(len(alphaNum))
		id = id + string(alphaNum[index])
	}
	return id
}

var pid = uint32(time.Now().UnixNano() % 4294967291)

// NewReqID for generate req id
func NewReqID() string {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[:], pid)
	binary.LittleEndian.PutUint64(b[4:], uint64(time.Now().UnixNano()))
	return base64.URLEncoding.EncodeToString(b[:])
}

// JwtSign sign map[string]interface{} data, return signed string
func JwtSign(data map[string]interface{}, key string) (string, error) {
	claims := jwt.MapClaims(data)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// JwtDecode will not validate exp, just decode with sha256 + key
func JwtDecode(token string, key string) (map[string]interface{}, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(key), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
