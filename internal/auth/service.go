package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/mert-izgahi/loomis-app-sub001/internal/analytics"
	"github.com/mert-izgahi/loomis-app-sub001/internal/directory"
	"github.com/mert-izgahi/loomis-app-sub001/internal/store"
)

type Config struct {
	AutoProvision bool `envconfig:"AUTH_AUTO_PROVISION" default:"true"`
}

// Service authenticates a login identifier/password pair and yields the local
// user a session should be issued for.
type Service interface {
	Authenticate(ctx context.Context, identifier, password string) (*store.User, error)
	HealthCheck(ctx context.Context) error
}

// Directory is the slice of the directory client the service depends on.
type Directory interface {
	ResolveIdentity(ctx context.Context, identifier string) (*directory.Identity, error)
	VerifyCredentials(ctx context.Context, dn, password string) error
	HealthCheck(ctx context.Context) error
}

// UserStore is the slice of the user repository the service depends on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*store.User, error)
	GetByAccountName(ctx context.Context, accountName string) (*store.User, error)
	Create(ctx context.Context, user *store.User) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// DirectoryAuthService implements Service against the company directory.
type DirectoryAuthService struct {
	config    *Config
	directory Directory
	users     UserStore
	analytics *analytics.Recorder
}

func NewService(dir Directory, users UserStore, recorder *analytics.Recorder) (*DirectoryAuthService, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process auth configuration: %w", err)
	}

	return &DirectoryAuthService{
		config:    &config,
		directory: dir,
		users:     users,
		analytics: recorder,
	}, nil
}

// Authenticate walks the login sequence: resolve the identifier to exactly one
// directory entry, verify the password by binding as that entry, map the
// verified identity onto a local user, then hand the user back for session
// issuance. Failure at any step aborts; nothing partial is persisted.
func (s *DirectoryAuthService) Authenticate(ctx context.Context, identifier, password string) (*store.User, error) {
	identity, err := s.directory.ResolveIdentity(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := s.directory.VerifyCredentials(ctx, identity.DN, password); err != nil {
		return nil, err
	}

	user, err := s.localUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		// Indistinguishable from a wrong password on the outside.
		return nil, fmt.Errorf("%w: account %s is inactive", directory.ErrAuthentication, user.ID)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to update last login for user %s: %v", user.ID, err)
	}
	s.analytics.RecordLogin(ctx, user.ID)

	return user, nil
}

// localUser maps a verified directory identity onto the local user table,
// creating the record on first login when auto-provisioning is on.
func (s *DirectoryAuthService) localUser(ctx context.Context, identity *directory.Identity) (*store.User, error) {
	if identity.Email != "" {
		user, err := s.users.GetByEmail(ctx, identity.Email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	// Some directory entries never had their mail attribute populated.
	if identity.AccountName != "" {
		user, err := s.users.GetByAccountName(ctx, identity.AccountName)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if !s.config.AutoProvision {
		return nil, fmt.Errorf("%w: no local account for %s", directory.ErrIdentityNotFound, identity.AccountName)
	}

	firstName, lastName := splitDisplayName(identity.DisplayName, identity.AccountName)
	user := &store.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     provisionEmail(identity),
		Role:      store.RoleUser,
		Active:    true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user for %s: %w", identity.AccountName, err)
	}

	log.Printf("Provisioned local user %s for directory account %s", user.ID, identity.AccountName)
	return user, nil
}

func (s *DirectoryAuthService) HealthCheck(ctx context.Context) error {
	return s.directory.HealthCheck(ctx)
}

// splitDisplayName breaks "Mert Izgahi" into first/last at the final space,
// falling back to the account name when the directory has no display name.
func splitDisplayName(displayName, accountName string) (string, string) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return accountName, ""
	}
	if i := strings.LastIndex(displayName, " "); i > 0 {
		return displayName[:i], displayName[i+1:]
	}
	return displayName, ""
}

func provisionEmail(identity *directory.Identity) string {
	if identity.Email != "" {
		return identity.Email
	}
	if identity.PrincipalName != "" {
		return identity.PrincipalName
	}
	return identity.AccountName
}
