package usecase

import (
	"context"
	"strings"

	"smilematch-api/internal/converter"
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/internal/service"
	"smilematch-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session is an authenticated access token resolved to its current identity
type Session struct {
	Identity entity.Identity
	TokenID  string
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, session Session, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, identity entity.Identity) (*dto.UserResponse, error)
	// Authenticate validates an access token and reads the caller's role from the user table
	Authenticate(ctx context.Context, accessToken string) (*Session, error)
}

type authUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	jwtService        *jwt.JWTService
	sessionStore      service.SessionStore
	auditService      service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	jwtService *jwt.JWTService,
	sessionStore service.SessionStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		jwtService:        jwtService,
		sessionStore:      sessionStore,
		auditService:      auditService,
	}
}

// Register creates a patient account. Every new account starts as a patient.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashedPassword),
		FullName: strings.TrimSpace(req.FullName),
		Image:    req.Image,
		Role:     entity.RolePatient,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, storeError(err)
	}

	response := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	u.log.Infof("User registered: id=%s", user.ID)
	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{"email": user.Email})
	return tokens, nil
}

// Logout revokes the current access token and, when given, the refresh token of the same user
func (u *authUsecase) Logout(ctx context.Context, session Session, req *dto.LogoutRequest) error {
	if err := requireIdentity(session.Identity); err != nil {
		return err
	}

	if err := u.sessionStore.Revoke(ctx, session.Identity.UserID, jwt.AccessToken, session.TokenID); err != nil {
		return err
	}

	if req == nil || req.RefreshToken == "" {
		return nil
	}

	claims, err := u.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil || claims.UserID != session.Identity.UserID {
		return ErrInvalidToken
	}

	return u.sessionStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
}

// RefreshToken rotates a refresh token. The old refresh token is revoked before new ones are issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exists, err := u.sessionStore.Exists(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.sessionStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user.ID, user.Email)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, identity entity.Identity) (*dto.UserResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Role == entity.RoleDoctor {
		profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), user.ID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, storeError(err)
		}
		user.DoctorProfile = profile
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := u.jwtService.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exists, err := u.sessionStore.Exists(ctx, claims.UserID, jwt.AccessToken, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity for user %s: %+v", claims.UserID, err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return &Session{Identity: user.Identity(), TokenID: claims.TokenID}, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string) (*dto.TokenResponse, error) {
	access, err := u.jwtService.GenerateAccessToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refresh, err := u.jwtService.GenerateRefreshToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	err = u.sessionStore.Register(ctx, userID,
		service.RegisteredToken{TokenType: jwt.AccessToken, TokenID: access.TokenID, TTL: access.ExpiresIn},
		service.RegisteredToken{TokenType: jwt.RefreshToken, TokenID: refresh.TokenID, TTL: refresh.ExpiresIn},
	)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(access.ExpiresIn.Seconds()),
	}, nil
}
