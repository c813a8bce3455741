package service

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/auth"
	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

const (
	guestName  = "Guest"
	guestEmail = "guest@join.local"
)

type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenId string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenId string) (bool, error)
}

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptPolicy    bool   `json:"accept_policy"`
}

type UserView struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
	Guest    bool   `json:"guest"`
}

type LoginResult struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserView `json:"user"`
}

type AuthService struct {
	jwt     config.JWT
	params  config.Params
	log     *slog.Logger
	db      Database
	revoker TokenRevoker
	now     func() time.Time
}

func NewAuthService(jwtCfg config.JWT, params config.Params, log *slog.Logger, db Database, revoker TokenRevoker) *AuthService {
	return &AuthService{jwt: jwtCfg, params: params, log: log, db: db, revoker: revoker, now: time.Now}
}

func (s *AuthService) logger(ctx context.Context) *slog.Logger {
	return contextkeys.GetLoggerOr(ctx, s.log)
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*UserView, error) {
	log := s.logger(ctx)
	log.Debug("signup attempt")

	name := processText(in.Name)
	email := normalizeEmail(in.Email)

	if !lenIsValid(name, s.params.Name) {
		return nil, status.Error(codes.InvalidArgument, ErrInvalidNameMessage)
	}
	if !emailIsValid(email) {
		return nil, status.Error(codes.InvalidArgument, ErrInvalidEmailMessage)
	}
	if !lenIsValid(in.Password, s.params.Password) || len(in.Password) > auth.MaxPasswordBytes {
		return nil, status.Error(codes.InvalidArgument, ErrInvalidPasswordMessage)
	}
	if in.Password != in.ConfirmPassword {
		return nil, status.Error(codes.InvalidArgument, ErrPasswordMismatchMessage)
	}
	if !in.AcceptPolicy {
		return nil, status.Error(codes.InvalidArgument, ErrPolicyMessage)
	}

	users, err := loadUsers(ctx, s.db)
	if err != nil {
		log.Error("db error", logging.DbErr("loadUsers", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			log.Info("signup rejected, email taken")
			return nil, status.Error(codes.AlreadyExists, ErrUserExistsMessage)
		}
	}

	hash, err := auth.HashPassword(in.Password, s.jwt.BcryptCost)
	if err != nil {
		log.Error("hash password", logging.Err(err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Initials: Initials(name),
	}
	if _, err := s.db.Post(ctx, usersPath, user); err != nil {
		log.Error("db error", logging.DbErr("Post users", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	log.Info("user signed up", slog.String("email", email))
	return &UserView{Name: user.Name, Email: user.Email, Initials: user.Initials}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := s.logger(ctx)
	log.Debug("login attempt")

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, status.Error(codes.Unauthenticated, ErrWrongCredentialsMessage)
	}

	users, err := loadUsers(ctx, s.db)
	if err != nil {
		log.Error("db error", logging.DbErr("loadUsers", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	var found *models.User
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			found = u
			break
		}
	}
	if found == nil {
		log.Info("login failed, unknown email")
		return nil, status.Error(codes.Unauthenticated, ErrWrongCredentialsMessage)
	}

	ok, err := auth.CheckPassword(found.Password, password)
	if err != nil {
		log.Error("stored password is not a bcrypt hash", slog.String("email", email), logging.Err(err))
		return nil, status.Error(codes.Unauthenticated, ErrWrongCredentialsMessage)
	}
	if !ok {
		log.Info("login failed, wrong password")
		return nil, status.Error(codes.Unauthenticated, ErrWrongCredentialsMessage)
	}

	initials := found.Initials
	if initials == "" {
		initials = Initials(found.Name)
	}
	return s.issue(ctx, auth.Identity{Email: found.Email, Name: found.Name, Initials: initials})
}

func (s *AuthService) GuestLogin(ctx context.Context) (*LoginResult, error) {
	return s.issue(ctx, auth.Identity{Email: guestEmail, Name: guestName, Initials: Initials(guestName), Guest: true})
}

func (s *AuthService) issue(ctx context.Context, id auth.Identity) (*LoginResult, error) {
	log := s.logger(ctx)

	token, claims, err := auth.EncodeJWTToken(id, s.jwt.Secret, s.jwt.TTL, s.now())
	if err != nil {
		log.Error("token error", logging.Err(err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	log.Info("token issued", slog.String("email", id.Email), slog.Bool("guest", id.Guest))
	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Unix(),
		User:      UserView{Name: id.Name, Email: id.Email, Initials: id.Initials, Guest: id.Guest},
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) (*contextkeys.TokenClaims, error) {
	log := s.logger(ctx)

	claims, err := auth.DecodeJWTToken(token, s.jwt.Secret)
	if err != nil {
		log.Debug("token rejected", logging.Err(err))
		return nil, status.Error(codes.Unauthenticated, ErrInvalidTokenMessage)
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Error("revocation lookup failed", logging.Err(err))
			return nil, status.Error(codes.Internal, ErrInternalMessage)
		}
		if revoked {
			log.Debug("token revoked", slog.String("jti", claims.ID))
			return nil, status.Error(codes.Unauthenticated, ErrInvalidTokenMessage)
		}
	}

	var exp int64
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Unix()
	}
	return &contextkeys.TokenClaims{
		TokenId:   claims.ID,
		Email:     claims.Email,
		Name:      claims.Name,
		Initials:  claims.Initials,
		Guest:     claims.Guest,
		ExpiresAt: exp,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *contextkeys.TokenClaims) error {
	log := s.logger(ctx)
	if s.revoker == nil || claims == nil {
		return nil
	}

	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if err := s.revoker.RevokeToken(ctx, claims.TokenId, ttl); err != nil {
		log.Error("revoke token", logging.Err(err))
		return status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("logged out", slog.String("email", claims.Email))
	return nil
}
