package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountFilter   = "(sAMAccountName=kokpituser2)"
	principalFilter = "(userPrincipalName=kokpituser2@loomis.com)"
	combinedOr      = "(|(sAMAccountName=kokpituser2)(userPrincipalName=kokpituser2@loomis.com)(userPrincipalName=kokpituser2@corp.loomis.net))"
)

func kokpitEntry() *ldap.Entry {
	return directoryEntry("cn=Kokpit User2,ou=Users,dc=loomis,dc=com", map[string]string{
		"sAMAccountName":    "kokpituser2",
		"userPrincipalName": "kokpituser2@loomis.com",
		"displayName":       "Kokpit User2",
		"mail":              "kokpituser2@loomis.com",
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Run("resolves via account name without trying later strategies", func(t *testing.T) {
		server := newFakeServer()
		server.results[accountFilter] = []*ldap.Entry{kokpitEntry()}
		client := newTestClient(server)

		identity, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.NoError(t, err)

		assert.Equal(t, "cn=Kokpit User2,ou=Users,dc=loomis,dc=com", identity.DN)
		assert.Equal(t, "kokpituser2", identity.AccountName)
		assert.Equal(t, "kokpituser2@loomis.com", identity.Email)
		assert.Equal(t, []string{accountFilter}, server.filters)
	})

	t.Run("falls back to principal name when account name misses", func(t *testing.T) {
		server := newFakeServer()
		server.results[principalFilter] = []*ldap.Entry{kokpitEntry()}
		client := newTestClient(server)

		identity, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.NoError(t, err)

		assert.Equal(t, "Kokpit User2", identity.DisplayName)
		assert.Equal(t, []string{accountFilter, principalFilter}, server.filters)
	})

	t.Run("falls back to combined OR filter last", func(t *testing.T) {
		server := newFakeServer()
		server.results[combinedOr] = []*ldap.Entry{kokpitEntry()}
		client := newTestClient(server)

		identity, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.NoError(t, err)

		assert.Equal(t, "kokpituser2", identity.AccountName)
		assert.Equal(t, []string{accountFilter, principalFilter, combinedOr}, server.filters)
	})

	t.Run("omits alternate suffix arm when not configured", func(t *testing.T) {
		server := newFakeServer()
		client := newTestClient(server)
		client.config.AltUPNSuffix = ""

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrIdentityNotFound)
		assert.Contains(t, server.filters, "(|(sAMAccountName=kokpituser2)(userPrincipalName=kokpituser2@loomis.com))")
	})

	t.Run("multiple matches fail without falling through", func(t *testing.T) {
		server := newFakeServer()
		server.results[accountFilter] = []*ldap.Entry{
			kokpitEntry(),
			directoryEntry("cn=Other,ou=Users,dc=loomis,dc=com", map[string]string{"sAMAccountName": "kokpituser2"}),
		}
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrAmbiguousIdentity)
		assert.Equal(t, []string{accountFilter}, server.filters, "later strategies must not run after an ambiguous match")
	})

	t.Run("multiple matches under the OR filter fail", func(t *testing.T) {
		server := newFakeServer()
		server.results[combinedOr] = []*ldap.Entry{
			kokpitEntry(),
			directoryEntry("cn=Other,ou=Users,dc=loomis,dc=com", map[string]string{"userPrincipalName": "kokpituser2@corp.loomis.net"}),
		}
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrAmbiguousIdentity)
	})

	t.Run("size limit blowout counts as ambiguity", func(t *testing.T) {
		server := newFakeServer()
		server.searchErr = ldap.NewError(ldap.LDAPResultSizeLimitExceeded, errors.New("size limit exceeded"))
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrAmbiguousIdentity)
	})

	t.Run("no match under any strategy", func(t *testing.T) {
		server := newFakeServer()
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "ghost")
		require.ErrorIs(t, err, ErrIdentityNotFound)
		assert.Len(t, server.filters, 3)
	})

	t.Run("empty identifier", func(t *testing.T) {
		server := newFakeServer()
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "")
		require.ErrorIs(t, err, ErrIdentityNotFound)
		assert.Zero(t, server.opened)
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := newFakeServer()
		server.dialErr = errors.New("dial tcp: i/o timeout")
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrConnection)
	})

	t.Run("server-side search fault", func(t *testing.T) {
		server := newFakeServer()
		server.searchErr = ldap.NewError(ldap.LDAPResultOperationsError, errors.New("operations error"))
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrSearch)
	})

	t.Run("rejected service bind", func(t *testing.T) {
		server := newFakeServer()
		server.servicePassword = "rotated"
		client := newTestClient(server)

		_, err := client.ResolveIdentity(context.Background(), "kokpituser2")
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, server.opened, server.closed, "failed bind must still close the connection")
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := newFakeServer()
		client := newTestClient(server)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ResolveIdentity(ctx, "kokpituser2")
		require.ErrorIs(t, err, ErrConnection)
		assert.Zero(t, server.opened)
	})
}

func TestResolutionFilters(t *testing.T) {
	config := testConfig()

	t.Run("filter metacharacters are escaped", func(t *testing.T) {
		assert.Equal(t, `(sAMAccountName=ko\2akpit)`, accountNameFilter(config, "ko*kpit"))
	})

	t.Run("UPN-shaped identifiers keep their suffix", func(t *testing.T) {
		assert.Equal(t,
			"(userPrincipalName=kokpituser2@corp.loomis.net)",
			principalNameFilter(config, "kokpituser2@corp.loomis.net"))
	})
}
