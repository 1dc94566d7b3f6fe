package directory

import (
	"time"

	"github.com/go-ldap/ldap/v3"
)

// =================================================
// Directory Client
// =================================================

type Config struct {
	URL              string        `envconfig:"DIR_URL" default:"ldaps://localhost:636"`
	BaseDN           string        `envconfig:"DIR_BASE_DN"`
	BindDN           string        `envconfig:"DIR_BIND_DN"`
	BindPassword     string        `envconfig:"DIR_BIND_PASSWORD"`
	ConnectTimeout   time.Duration `envconfig:"DIR_CONNECT_TIMEOUT" default:"5s"`
	OperationTimeout time.Duration `envconfig:"DIR_OPERATION_TIMEOUT" default:"10s"`
	UPNSuffix        string        `envconfig:"DIR_UPN_SUFFIX" default:"loomis.com"`
	AltUPNSuffix     string        `envconfig:"DIR_ALT_UPN_SUFFIX"`
	SkipTLSVerify    bool          `envconfig:"DIR_SKIP_TLS_VERIFY" default:"false"`
}

// conn is the subset of *ldap.Conn the client uses. Kept narrow so tests can
// stand in a fake server.
type conn interface {
	Bind(username, password string) error
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	SetTimeout(timeout time.Duration)
	Close() error
}

// Client talks to the directory server. Every operation dials its own
// connection and closes it before returning; nothing is shared or pooled
// across login attempts.
type Client struct {
	config *Config
	dial   func(config *Config) (conn, error)
}

// Identity is the transient result of a successful directory search. It is
// mapped onto a local user record and discarded; it is never persisted.
type Identity struct {
	DN            string `json:"-"`
	AccountName   string `json:"account_name"`
	PrincipalName string `json:"principal_name"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
}

// identityAttributes are the attributes requested for every resolution search.
var identityAttributes = []string{"sAMAccountName", "userPrincipalName", "displayName", "mail"}
