package directory

import (
	"context"
	"fmt"
	"log"

	"github.com/go-ldap/ldap/v3"
)

// Directory schemas are inconsistent across deployments: some accounts log in
// with the bare sAMAccountName, some with a UPN, and some directories carry a
// UPN under a different domain suffix than the authentication realm. The
// strategies below encode a priority of trust, exact attribute match first and
// the broad OR fallback last. UPN suffixes come from configuration because the
// topology varies per deployment.
type strategy struct {
	name   string
	filter func(config *Config, identifier string) string
}

func resolutionStrategies() []strategy {
	return []strategy{
		{name: "account-name", filter: accountNameFilter},
		{name: "principal-name", filter: principalNameFilter},
		{name: "combined", filter: combinedFilter},
	}
}

func accountNameFilter(config *Config, identifier string) string {
	return fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(identifier))
}

func principalNameFilter(config *Config, identifier string) string {
	return fmt.Sprintf("(userPrincipalName=%s)", ldap.EscapeFilter(principalName(identifier, config.UPNSuffix)))
}

func combinedFilter(config *Config, identifier string) string {
	filter := fmt.Sprintf("(sAMAccountName=%s)(userPrincipalName=%s)",
		ldap.EscapeFilter(identifier),
		ldap.EscapeFilter(principalName(identifier, config.UPNSuffix)))
	if config.AltUPNSuffix != "" {
		filter += fmt.Sprintf("(userPrincipalName=%s)", ldap.EscapeFilter(principalName(identifier, config.AltUPNSuffix)))
	}
	return "(|" + filter + ")"
}

// principalName appends the suffix unless the identifier is already UPN-shaped.
func principalName(identifier, suffix string) string {
	for _, r := range identifier {
		if r == '@' {
			return identifier
		}
	}
	return identifier + "@" + suffix
}

// ResolveIdentity maps a login identifier to exactly one directory entry. It
// opens a service-account connection, walks the strategies in order and closes
// the connection before returning.
//
// Each strategy is a three-way branch: zero entries advances to the next
// strategy, exactly one resolves, and more than one fails immediately with
// ErrAmbiguousIdentity. Picking the first of several matches is never correct.
func (c *Client) ResolveIdentity(ctx context.Context, identifier string) (*Identity, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrIdentityNotFound)
	}

	cn, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer cn.Close()

	for _, s := range resolutionStrategies() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}

		entries, err := c.searchStrategy(cn, s, identifier)
		if err != nil {
			return nil, err
		}

		switch len(entries) {
		case 0:
			continue
		case 1:
			return identityFromEntry(entries[0]), nil
		default:
			log.Printf("Directory returned %d entries for identifier %q under strategy %s", len(entries), identifier, s.name)
			return nil, fmt.Errorf("%w: strategy %s", ErrAmbiguousIdentity, s.name)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, identifier)
}

func (c *Client) searchStrategy(cn conn, s strategy, identifier string) ([]*ldap.Entry, error) {
	filter := s.filter(c.config, identifier)

	searchRequest := ldap.NewSearchRequest(
		c.config.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases,
		2, // two entries are enough to prove ambiguity
		int(c.config.OperationTimeout.Seconds()),
		false,
		filter,
		identityAttributes,
		nil,
	)

	result, err := cn.Search(searchRequest)
	if err != nil {
		// Blowing the size limit means the identifier matched more than the
		// request allowed, which is ambiguity, not a search fault.
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
			return nil, fmt.Errorf("%w: strategy %s", ErrAmbiguousIdentity, s.name)
		}
		log.Printf("Directory search failed for filter %s under base %s: %v", filter, c.config.BaseDN, err)
		return nil, classifySearchError(err)
	}

	return result.Entries, nil
}

func identityFromEntry(entry *ldap.Entry) *Identity {
	return &Identity{
		DN:            entry.DN,
		AccountName:   entry.GetAttributeValue("sAMAccountName"),
		PrincipalName: entry.GetAttributeValue("userPrincipalName"),
		DisplayName:   entry.GetAttributeValue("displayName"),
		Email:         entry.GetAttributeValue("mail"),
	}
}
