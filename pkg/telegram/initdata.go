package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInitDataSignature = errors.New("telegram: init data signature mismatch")
	ErrInitDataExpired   = errors.New("telegram: init data is too old")
)

// InitDataUser is the user block embedded in the signed init-data payload.
type InitDataUser struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// InitData is the verified content of a mini-app credential.
type InitData struct {
	User     *InitDataUser
	AuthDate time.Time
	QueryId  string
	Raw      url.Values
}

// ValidateInitData verifies the Telegram signature on a mini-app
// init-data string. maxAge of 0 skips the freshness check.
//
// Per Telegram's scheme: the secret key is HMAC-SHA256 of the bot token
// keyed with "WebAppData", and the signature covers the remaining fields
// sorted and joined as key=value lines.
func ValidateInitData(initData, botToken string, maxAge time.Duration) (*InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("telegram: parse init data: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, ErrInitDataSignature
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	sig := hmac.New(sha256.New, secret.Sum(nil))
	sig.Write([]byte(checkString))
	wantHash := hex.EncodeToString(sig.Sum(nil))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return nil, ErrInitDataSignature
	}

	parsed := &InitData{QueryId: values.Get("query_id"), Raw: values}

	if authDate := values.Get("auth_date"); authDate != "" {
		unix, err := strconv.ParseInt(authDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram: parse auth_date: %w", err)
		}
		parsed.AuthDate = time.Unix(unix, 0)
		if maxAge > 0 && time.Since(parsed.AuthDate) > maxAge {
			return nil, ErrInitDataExpired
		}
	}

	if rawUser := values.Get("user"); rawUser != "" {
		var user InitDataUser
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			return nil, fmt.Errorf("telegram: parse user: %w", err)
		}
		parsed.User = &user
	}

	return parsed, nil
}
