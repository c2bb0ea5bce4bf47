package remote

// CredentialKind selects which header carries the credential.
type CredentialKind string

const (
	// CredentialBearer is a standard bearer token (admin console sessions).
	CredentialBearer CredentialKind = "bearer"

	// CredentialInitData is the Telegram-signed init-data payload used by
	// the mini-app as an alternate credential.
	CredentialInitData CredentialKind = "init_data"
)

// Credential is an authentication context attached to outgoing calls.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// CredentialSource supplies the current credential, if any. Sources are
// consulted per call so a rotated token takes effect immediately.
type CredentialSource interface {
	Credential() (Credential, bool)
}

// StaticCredentials always returns the same credential. Used for the
// service-to-service secret (e.g. the bot token) and in tests.
type StaticCredentials struct {
	Cred Credential
}

func (s StaticCredentials) Credential() (Credential, bool) {
	if s.Cred.Value == "" {
		return Credential{}, false
	}
	return s.Cred, true
}

// NoCredentials never yields a credential.
type NoCredentials struct{}

func (NoCredentials) Credential() (Credential, bool) { return Credential{}, false }

// BearerToken is a convenience constructor for a static bearer source.
func BearerToken(token string) CredentialSource {
	return StaticCredentials{Cred: Credential{Kind: CredentialBearer, Value: token}}
}
