package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/argon2"
	"golang.org/x/oauth2"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 10
)

var (
	errInvalidHash         = errors.New("the encoded hash is not in the correct format")
	errIncompatibleVersion = errors.New("incompatible version of argon2")
)

type BaseConfig interface {
	GetPort() string
	GetTimeout() int
	GetReadBufferSize() int
	GetAppName() string
	GetIsProduction() bool
	GetCookieKey() string
	GetBodyLimit() int
}

func ConfigureLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func GenerateRandomBytes(size uint32) []byte {
	token := make([]byte, size)
	rand.Read(token)
	return token
}

func DecodeBase64(message []byte) ([]byte, error) {
	base64Text := make([]byte, base64.StdEncoding.DecodedLen(len(message)))

	_, err := base64.URLEncoding.Decode(base64Text, message)
	if err != nil {
		return nil, err
	}
	return base64Text, nil
}

func EncodeBase64(message []byte) []byte {
	base64Text := make([]byte, base64.StdEncoding.EncodedLen(len(message)))
	base64.URLEncoding.Encode(base64Text, message)
	return base64Text
}

func ParseFlags() bool {
	devMode := flag.Bool("dev", false, "Run in dev mode")
	envFile := flag.String("env", "", ".env file path")

	flag.Parse()

	if err := godotenv.Load(func() string {
		if len(*envFile) > 0 {
			return *envFile
		}

		return ".prod.env"
	}()); err != nil {
		log.Panic().Err(err).Msg("Could not load .env file")
	}

	return !*devMode
}

func IsInList(item string, list *[]string) int {
	for i, val := range *list {
		if val == item {
			return i
		}
	}
	return -1
}

// ParsePagination converts optional skip/limit query strings to offsets.
// Absent, non-numeric, or negative values fall back to DefaultSkip and
// DefaultLimit.
func ParsePagination(skip, limit string) (int, int) {
	s, err := strconv.Atoi(skip)
	if err != nil || s < 0 {
		s = DefaultSkip
	}

	l, err := strconv.Atoi(limit)
	if err != nil || l <= 0 {
		l = DefaultLimit
	}

	return s, l
}

type JwtConfig struct {
	User       string
	ExpireIn   time.Duration
	Scope      string
	Subject    string
	Data       map[string]string
	PrivateKey *rsa.PrivateKey
}

func CreateJwt(c JwtConfig) (string, error) {
	now := time.Now().UTC()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"user":  c.User,
		"data":  c.Data,
		"scope": c.Scope,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"sub":   c.Subject,
		"exp":   now.Add(c.ExpireIn).Unix(),
	}).SignedString(c.PrivateKey)

	if err != nil {
		return "", err
	}
	return token, nil
}

type params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

func VerifyHash(password string, hash string) bool {
	p, salt, plainHash, err := decodeHash(hash)
	if err != nil {
		return false
	}

	otherHash := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	if subtle.ConstantTimeCompare(plainHash, otherHash) == 1 {
		return true
	}
	return false
}

func decodeHash(encodedHash string) (p *params, salt, hash []byte, err error) {
	values := strings.Split(encodedHash, "$")
	if len(values) != 6 {
		return nil, nil, nil, errInvalidHash
	}

	var version int
	_, err = fmt.Sscanf(values[2], "v=%d", &version)
	if err != nil {
		return nil, nil, nil, err
	}
	if version != argon2.Version {
		return nil, nil, nil, errIncompatibleVersion
	}

	p = &params{}
	_, err = fmt.Sscanf(values[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism)
	if err != nil {
		return nil, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(values[4])
	if err != nil {
		return nil, nil, nil, err
	}
	p.saltLength = uint32(len(salt))

	hash, err = base64.RawStdEncoding.Strict().DecodeString(values[5])
	if err != nil {
		return nil, nil, nil, err
	}
	p.keyLength = uint32(len(hash))

	return p, salt, hash, nil
}

func HashPassword(password string) (encodedHash string, err error) {
	salt := GenerateRandomBytes(16)

	hash := argon2.IDKey([]byte(password), salt, 3, 64*1024, 2, 32)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return "$argon2id$v=19$m=65536,t=3,p=2$" + b64Salt + "$" + b64Hash, nil
}

func OAuthJwt(user, scope, role string, jwtPrivateKey *rsa.PrivateKey) (*oauth2.Token, error) {
	refreshJwt, err := CreateJwt(JwtConfig{
		User:       user,
		ExpireIn:   time.Minute * 90,
		Scope:      scope,
		Subject:    "refresh",
		Data:       map[string]string{"role": role},
		PrivateKey: jwtPrivateKey,
	})
	if err != nil {
		return nil, err
	}

	accessJwt, err := CreateJwt(JwtConfig{
		User:       user,
		ExpireIn:   time.Minute * 60,
		Scope:      scope,
		Subject:    "access",
		Data:       map[string]string{"role": role},
		PrivateKey: jwtPrivateKey,
	})
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  accessJwt,
		RefreshToken: refreshJwt,
		Expiry:       time.Now().Add(time.Minute * 60),
	}, nil
}

func ParsePublicKey(key string) *rsa.PublicKey {
	tempJwtPublicKey, err := DecodeBase64([]byte(key))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt public key")
	}
	jwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(tempJwtPublicKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt public key")
	}
	return jwtPublicKey
}

func ParsePrivateKey(key string) *rsa.PrivateKey {
	tempJwtPrivateKey, err := DecodeBase64([]byte(key))
	if err != nil {
		log.Panic().Err(err).Msg("Failed to decode jwt private key")
	}
	jwtPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEM(tempJwtPrivateKey)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to parse jwt private key")
	}
	return jwtPrivateKey
}

func ValidateStruct(err error) []*ErrorResponse {
	var errors []*ErrorResponse
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
