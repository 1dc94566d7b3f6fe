package directory

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// Error taxonomy for the directory layer. Callers branch with errors.Is; the
// HTTP boundary maps each one to a uniform client-facing response.
var (
	// ErrConnection covers transport and timeout failures reaching the server.
	ErrConnection = errors.New("directory: connection failed")

	// ErrAuthentication covers every rejected bind, service account or end
	// user. Wrong password, disabled account and locked account all collapse
	// into this one error so callers cannot leak which it was.
	ErrAuthentication = errors.New("directory: authentication failed")

	// ErrIdentityNotFound means no entry matched any resolution strategy.
	ErrIdentityNotFound = errors.New("directory: identity not found")

	// ErrAmbiguousIdentity means a single strategy matched more than one
	// entry. This is a directory data-integrity fault, never a reason to
	// guess.
	ErrAmbiguousIdentity = errors.New("directory: identifier matched multiple entries")

	// ErrSearch covers malformed filters and server-side search faults.
	ErrSearch = errors.New("directory: search failed")
)

// bindRejectCodes are the LDAP result codes a server returns for a bind it
// refused on credential grounds rather than transport grounds.
var bindRejectCodes = []uint16{
	ldap.LDAPResultInvalidCredentials,
	ldap.LDAPResultInappropriateAuthentication,
	ldap.LDAPResultInvalidDNSyntax,
	ldap.LDAPResultUnwillingToPerform,
}

func classifyBindError(err error) error {
	for _, code := range bindRejectCodes {
		if ldap.IsErrorWithCode(err, code) {
			return fmt.Errorf("%w: bind rejected", ErrAuthentication)
		}
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func classifySearchError(err error) error {
	if ldap.IsErrorWithCode(err, ldap.ErrorNetwork) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrSearch, err)
}
