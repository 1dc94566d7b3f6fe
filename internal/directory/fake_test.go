package directory

import (
	"errors"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// fakeServer stands in for the directory server. Search results are keyed by
// the exact filter string so tests can pin down which strategy ran.
type fakeServer struct {
	results   map[string][]*ldap.Entry
	passwords map[string]string // dn -> password

	serviceDN       string
	servicePassword string

	opened  int
	closed  int
	filters []string

	dialErr   error
	searchErr error
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		results:         map[string][]*ldap.Entry{},
		passwords:       map[string]string{},
		serviceDN:       "cn=svc-kokpit,ou=Service Accounts,dc=loomis,dc=com",
		servicePassword: "svc-secret",
	}
}

func (s *fakeServer) dial(*Config) (conn, error) {
	if s.dialErr != nil {
		return nil, s.dialErr
	}
	s.opened++
	return &fakeConn{server: s}, nil
}

type fakeConn struct {
	server *fakeServer
}

func (c *fakeConn) Bind(username, password string) error {
	if username == c.server.serviceDN && password == c.server.servicePassword {
		return nil
	}
	if pw, ok := c.server.passwords[username]; ok && pw == password {
		return nil
	}
	return ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
}

func (c *fakeConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	c.server.filters = append(c.server.filters, req.Filter)
	if c.server.searchErr != nil {
		return nil, c.server.searchErr
	}
	return &ldap.SearchResult{Entries: c.server.results[req.Filter]}, nil
}

func (c *fakeConn) SetTimeout(time.Duration) {}

func (c *fakeConn) Close() error {
	c.server.closed++
	return nil
}

func testConfig() *Config {
	return &Config{
		URL:              "ldaps://dir.loomis.com:636",
		BaseDN:           "dc=loomis,dc=com",
		BindDN:           "cn=svc-kokpit,ou=Service Accounts,dc=loomis,dc=com",
		BindPassword:     "svc-secret",
		ConnectTimeout:   time.Second,
		OperationTimeout: time.Second,
		UPNSuffix:        "loomis.com",
		AltUPNSuffix:     "corp.loomis.net",
	}
}

func newTestClient(server *fakeServer) *Client {
	client := NewClient(testConfig())
	client.dial = server.dial
	return client
}

func directoryEntry(dn string, attributes map[string]string) *ldap.Entry {
	attrs := make(map[string][]string, len(attributes))
	for name, value := range attributes {
		attrs[name] = []string{value}
	}
	return ldap.NewEntry(dn, attrs)
}
