package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
	"github.com/gracechapel/content-api/internal/session"
)

// AuthService implements the authorization gate. It resolves session tokens
// to administrator identities, fails closed on anything short of a matching
// admin record, and mirrors the outcome into the shared session cache.
type AuthService struct {
	authRepo   ports.AuthRepository
	adminRepo  ports.AdminRepository
	sessions   ports.SessionStore
	cache      *session.Cache
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	authRepo ports.AuthRepository,
	adminRepo ports.AdminRepository,
	sessions ports.SessionStore,
	cache *session.Cache,
	jwtSecret string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		authRepo:   authRepo,
		adminRepo:  adminRepo,
		sessions:   sessions,
		cache:      cache,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register provisions a credential record in the session-store boundary.
// The matching admin row is provisioned separately, by email.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.AuthUser{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.authRepo.Create(ctx, user)
}

// Login verifies credentials, issues a session and runs it through the gate.
// A valid credential whose bearer is not an administrator gets no session:
// the freshly issued one is revoked again before returning.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.AdminIdentity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.authRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:         newSessionID(),
		IdentityID: user.ID,
		Email:      user.Email,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}
	if err := s.sessions.Issue(ctx, sess); err != nil {
		return "", nil, err
	}

	identity, err := s.admit(ctx, sess)
	if err != nil {
		return "", nil, err
	}

	if err := s.adminRepo.RecordLogin(ctx, identity.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("admin_id", identity.ID).Msg("failed to record last login")
	}

	token, err := s.signToken(sess)
	if err != nil {
		_ = s.sessions.Revoke(ctx, sess.ID)
		return "", nil, err
	}

	s.logger.Info().Str("email", identity.Email).Str("role", identity.Role).Msg("admin signed in")
	return token, identity, nil
}

// Resolve maps a session token to an AdminIdentity and refreshes the cache.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.AdminIdentity, error) {
	sess, err := s.currentSession(ctx, token)
	if err != nil {
		s.cache.Clear()
		return nil, err
	}
	return s.admit(ctx, sess)
}

// Deauthorize clears the cache and signs the session out.
func (s *AuthService) Deauthorize(ctx context.Context, token string) error {
	s.cache.Clear()
	sess, err := s.currentSession(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return nil
		}
		return err
	}
	return s.sessions.Revoke(ctx, sess.ID)
}

// admit is the gate proper: the session bearer must have an admin record,
// found by email rather than identity id because admin rows may be
// provisioned before the login record exists. Any lookup failure is treated
// as "not an admin" and the session is terminated.
func (s *AuthService) admit(ctx context.Context, sess *domain.Session) (*domain.AdminIdentity, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, sess.Email)
	if err != nil || !domain.AdminRole(admin.Role) {
		if err != nil {
			s.logger.Warn().Err(err).Str("email", sess.Email).Msg("admin lookup failed, denying")
		}
		s.cache.Clear()
		if revokeErr := s.sessions.Revoke(ctx, sess.ID); revokeErr != nil {
			s.logger.Warn().Err(revokeErr).Str("session_id", sess.ID).Msg("failed to revoke session")
		}
		return nil, domain.ErrNotAuthorized
	}

	// First login after provisioning by email: reconcile the identity keys.
	if admin.IdentityID != sess.IdentityID {
		if err := s.adminRepo.ReconcileIdentity(ctx, admin.ID, sess.IdentityID); err != nil {
			s.logger.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to reconcile identity id")
		}
	}

	identity := &domain.AdminIdentity{
		ID:          admin.ID,
		Email:       admin.Email,
		DisplayName: admin.Name,
		Role:        admin.Role,
	}
	s.cache.Put(identity)
	return identity, nil
}

// currentSession verifies the token signature and looks the session up in
// the store, so revocation takes effect even before the token expires.
func (s *AuthService) currentSession(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNotAuthenticated
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.sessions.Find(ctx, sid)
}

func (s *AuthService) signToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.ID,
		"sub":   sess.IdentityID,
		"email": sess.Email,
		"exp":   sess.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a random 128-bit session identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))[:32]
	}
	return hex.EncodeToString(b)
}
