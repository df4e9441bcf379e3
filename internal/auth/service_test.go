package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/internal/users"
	pkgAuth "github.com/tahmidr/matrimony-backend/pkg/auth"
	"github.com/tahmidr/matrimony-backend/pkg/config"
	pkgmodels "github.com/tahmidr/matrimony-backend/pkg/db/models"
	"github.com/tahmidr/matrimony-backend/pkg/enums"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
	"github.com/tahmidr/matrimony-backend/pkg/security"
)

type stubAuthUserRepo struct {
	data     map[string]*pkgmodels.User
	upserted *pkgmodels.User
}

func newStubAuthUserRepo() *stubAuthUserRepo {
	return &stubAuthUserRepo{data: map[string]*pkgmodels.User{}}
}

func (s *stubAuthUserRepo) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthUserRepo) Upsert(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if existing, ok := s.data[dto.Email]; ok {
		existing.Name = dto.Name
		existing.PhotoURL = dto.PhotoURL
		s.upserted = existing
		return existing, nil
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.upserted = user
	return user, nil
}

func (s *stubAuthUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubSessionManager struct {
	generated []string
	err       error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

type stubGoogleVerifier struct {
	profile *GoogleProfile
	err     error
}

func (s *stubGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	return s.profile, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "matrimony", ExpirationMinutes: 30}
}

func newAuthTestService(t *testing.T, repo *stubAuthUserRepo, sessions *stubSessionManager, google GoogleTokenVerifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		GoogleVerifier: google,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedPasswordUser(t *testing.T, repo *stubAuthUserRepo, email, password, role string) *pkgmodels.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &pkgmodels.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Seeded",
		PasswordHash: &hash,
		Role:         role,
		IsActive:     true,
	}
	repo.data[email] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubAuthUserRepo()
	sessions := &stubSessionManager{}
	svc := newAuthTestService(t, repo, sessions, nil)
	seedPasswordUser(t, repo, "amina@example.com", "Secret123!", "user")

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Amina@Example.com", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "amina@example.com" {
		t.Fatalf("unexpected email claim %s", claims.Email)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("unexpected role claim %s", claims.Role)
	}
	if claims.ID != sessions.generated[0] {
		t.Fatalf("jti should match the stored session id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubAuthUserRepo()
	svc := newAuthTestService(t, repo, &stubSessionManager{}, nil)
	seedPasswordUser(t, repo, "amina@example.com", "Secret123!", "user")

	_, err := svc.Login(context.Background(), LoginRequest{Email: "amina@example.com", Password: "wrong"})
	assertUnauthorized(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthTestService(t, newStubAuthUserRepo(), &stubSessionManager{}, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "pw"})
	assertUnauthorized(t, err)
}

func TestLoginGoogleOnlyAccountHasNoPassword(t *testing.T) {
	repo := newStubAuthUserRepo()
	repo.data["google@example.com"] = &pkgmodels.User{
		ID:       uuid.New(),
		Email:    "google@example.com",
		Role:     "user",
		IsActive: true,
	}
	svc := newAuthTestService(t, repo, &stubSessionManager{}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "google@example.com", Password: "anything"})
	assertUnauthorized(t, err)
}

func TestGoogleLoginUpsertsAndIssuesSession(t *testing.T) {
	repo := newStubAuthUserRepo()
	sessions := &stubSessionManager{}
	verifier := &stubGoogleVerifier{profile: &GoogleProfile{
		Email:    "NewUser@Example.com",
		Name:     "New User",
		PhotoURL: "https://example.com/p.png",
	}}
	svc := newAuthTestService(t, repo, sessions, verifier)

	resp, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token"})
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if repo.upserted == nil || repo.upserted.Email != "newuser@example.com" {
		t.Fatalf("expected upserted user with lowercased email")
	}
	if resp.User == nil || resp.User.Role != "user" {
		t.Fatalf("expected default role user")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected session generated")
	}
}

func TestGoogleLoginInvalidToken(t *testing.T) {
	verifier := &stubGoogleVerifier{err: errors.New("bad token")}
	svc := newAuthTestService(t, newStubAuthUserRepo(), &stubSessionManager{}, verifier)

	_, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "bad"})
	assertUnauthorized(t, err)
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	svc := newAuthTestService(t, newStubAuthUserRepo(), &stubSessionManager{}, nil)

	_, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}

func TestTokenExchangeNeverMintsAdminRole(t *testing.T) {
	repo := newStubAuthUserRepo()
	sessions := &stubSessionManager{}
	svc := newAuthTestService(t, repo, sessions, nil)
	admin := seedPasswordUser(t, repo, "admin@example.com", "pw123456", "admin")

	resp, err := svc.TokenExchange(context.Background(), TokenRequest{Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("token exchange: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	// The exchange is public and proves nothing beyond knowing an email, so
	// even an admin account's exchange token carries the user role.
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected user role on exchange token, got %s", claims.Role)
	}
	if claims.UserID != admin.ID {
		t.Fatalf("expected user id claim")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected session stored for the minted jti")
	}
}

func TestTokenExchangeUnknownEmailDefaultsToUserRole(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newAuthTestService(t, newStubAuthUserRepo(), sessions, nil)

	resp, err := svc.TokenExchange(context.Background(), TokenRequest{Email: "stranger@example.com"})
	if err != nil {
		t.Fatalf("token exchange: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected fallback role user, got %s", claims.Role)
	}
	if claims.UserID != uuid.Nil {
		t.Fatalf("expected nil user id for unknown email")
	}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}
