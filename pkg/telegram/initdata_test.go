package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:test-bot-token"

// signInitData builds a signed init-data string the way the Telegram
// client does: sorted key=value lines, HMAC keyed with the derived
// WebAppData secret.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	for key, value := range fields {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	sig := hmac.New(sha256.New, secret.Sum(nil))
	sig.Write([]byte(strings.Join(pairs, "\n")))
	hash := hex.EncodeToString(sig.Sum(nil))

	query := url.Values{}
	for key, value := range fields {
		query.Set(key, value)
	}
	query.Set("hash", hash)
	return query.Encode()
}

func TestValidateInitData(t *testing.T) {
	fields := map[string]string{
		"query_id":  "AAF9tW1Z",
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":987654321,"first_name":"Ada","username":"ada_l","language_code":"en"}`,
	}
	initData := signInitData(t, testBotToken, fields)

	parsed, err := ValidateInitData(initData, testBotToken, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "AAF9tW1Z", parsed.QueryId)
	require.NotNil(t, parsed.User)
	assert.Equal(t, int64(987654321), parsed.User.Id)
	assert.Equal(t, "ada_l", parsed.User.Username)
	assert.WithinDuration(t, time.Now(), parsed.AuthDate, time.Minute)
}

func TestValidateInitDataTamperedHash(t *testing.T) {
	fields := map[string]string{
		"query_id":  "AAF9tW1Z",
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
	}
	initData := signInitData(t, testBotToken, fields)

	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("hash", strings.Repeat("0", 64))

	_, err = ValidateInitData(values.Encode(), testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInitDataSignature)
}

func TestValidateInitDataWrongBotToken(t *testing.T) {
	fields := map[string]string{
		"query_id":  "AAF9tW1Z",
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
	}
	initData := signInitData(t, "999999:other-token", fields)

	_, err := ValidateInitData(initData, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInitDataSignature)
}

func TestValidateInitDataTamperedField(t *testing.T) {
	fields := map[string]string{
		"query_id":  "AAF9tW1Z",
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
		"user":      `{"id":987654321,"first_name":"Ada"}`,
	}
	initData := signInitData(t, testBotToken, fields)

	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("user", `{"id":1,"first_name":"Mallory"}`)

	_, err = ValidateInitData(values.Encode(), testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInitDataSignature)
}

func TestValidateInitDataExpired(t *testing.T) {
	fields := map[string]string{
		"query_id":  "AAF9tW1Z",
		"auth_date": fmt.Sprintf("%d", time.Now().Add(-2*time.Hour).Unix()),
	}
	initData := signInitData(t, testBotToken, fields)

	_, err := ValidateInitData(initData, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInitDataExpired)

	// A zero max age disables the freshness check.
	_, err = ValidateInitData(initData, testBotToken, 0)
	assert.NoError(t, err)
}

func TestValidateInitDataMissingHash(t *testing.T) {
	_, err := ValidateInitData("query_id=abc&auth_date=1", testBotToken, 0)
	assert.ErrorIs(t, err, ErrInitDataSignature)
}
