package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/kelseyhightower/envconfig"
)

func NewClient(config *Config) *Client {
	return &Client{config: config, dial: dialServer}
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process directory configuration: %w", err)
	}
	if config.BaseDN == "" {
		return nil, fmt.Errorf("DIR_BASE_DN is not set")
	}
	return &config, nil
}

func dialServer(config *Config) (conn, error) {
	opts := []ldap.DialOpt{
		ldap.DialWithDialer(&net.Dialer{Timeout: config.ConnectTimeout}),
	}
	if strings.HasPrefix(config.URL, "ldaps://") {
		opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: config.SkipTLSVerify}))
	} else if !strings.HasPrefix(config.URL, "ldap://") {
		return nil, fmt.Errorf("unsupported directory URL scheme: %s", config.URL)
	}
	return ldap.DialURL(config.URL, opts...)
}

// open dials the server and binds the service account. The caller owns the
// returned connection and must close it on every path.
func (c *Client) open(ctx context.Context) (conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	cn, err := c.dial(c.config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	cn.SetTimeout(c.config.OperationTimeout)

	if c.config.BindDN != "" {
		if err := cn.Bind(c.config.BindDN, c.config.BindPassword); err != nil {
			cn.Close()
			return nil, classifyBindError(err)
		}
	}

	return cn, nil
}

// HealthCheck dials, binds the service account and runs a base-object search,
// then tears the connection down again.
func (c *Client) HealthCheck(ctx context.Context) error {
	cn, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer cn.Close()

	searchRequest := ldap.NewSearchRequest(
		c.config.BaseDN,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 1, false,
		"(objectClass=*)",
		[]string{"objectClass"},
		nil,
	)

	if _, err := cn.Search(searchRequest); err != nil {
		return classifySearchError(err)
	}
	return nil
}

// VerifyCredentials proves the password by binding as the resolved entry's DN
// on a fresh connection. The service-account connection is never reused for
// this; success of this bind is the sole proof of validity.
func (c *Client) VerifyCredentials(ctx context.Context, dn, password string) error {
	// An empty password would be an unauthenticated bind, which servers
	// accept. Reject it before it reaches the wire.
	if password == "" {
		return fmt.Errorf("%w: empty password", ErrAuthentication)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	cn, err := c.dial(c.config)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer cn.Close()
	cn.SetTimeout(c.config.OperationTimeout)

	if err := cn.Bind(dn, password); err != nil {
		return classifyBindError(err)
	}
	return nil
}
