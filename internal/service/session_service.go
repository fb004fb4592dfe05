package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/college-events-api/internal/domain"
	"github.com/noah-isme/college-events-api/internal/dto"
	"github.com/noah-isme/college-events-api/internal/models"
	appErrors "github.com/noah-isme/college-events-api/pkg/errors"
)

const sessionIssuer = "college-events-api"

// SessionConfig controls token signing.
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	AvatarBaseURL string
}

// SessionService owns the role switcher and the capability tokens that name the acting user.
type SessionService struct {
	store     stateStore
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
	now       func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(store stateStore, validate *validator.Validate, logger *zap.Logger, config SessionConfig) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &SessionService{store: store, validator: validate, logger: logger, config: config, now: time.Now}
}

// Current returns the session user with a fresh token.
func (s *SessionService) Current(ctx context.Context) (*models.SessionInfo, error) {
	state, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read state")
	}
	user, ok := state.CurrentUser()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no session user")
	}
	return s.issue(user)
}

// Switch makes the first user with the requested role current. When nobody holds
// the role the session is unchanged and Switched is false.
func (s *SessionService) Switch(ctx context.Context, req dto.SwitchRoleRequest) (*dto.SwitchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role is required")
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "role must be admin, coordinator or student")
	}

	var (
		user     models.User
		switched bool
	)
	_, err := s.store.Update(ctx, func(state models.AppState) (models.AppState, error) {
		next, u, ok := domain.SwitchTo(state, role)
		user, switched = u, ok
		return next, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to switch role")
	}
	if switched {
		s.logger.Info("session switched", zap.String("role", string(role)), zap.Int64("user_id", user.ID))
	}

	info, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.SwitchResult{Switched: switched, Session: *info}, nil
}

// ValidateToken checks the signature and that the token still names the session user.
func (s *SessionService) ValidateToken(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token claims")
	}

	state, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read state")
	}
	current, err := actorIn(state, claims.UserID)
	if err != nil {
		return nil, err
	}
	if current.Role != claims.Role {
		return nil, errStaleSession
	}
	return claims, nil
}

func (s *SessionService) issue(user models.User) (*models.SessionInfo, error) {
	issuedAt := s.now().UTC()
	claims := &models.SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return &models.SessionInfo{
		User:      user,
		AvatarURL: domain.AvatarURL(s.config.AvatarBaseURL, user.AvatarSeed),
		Token:     signed,
		ExpiresIn: int64(s.config.TTL.Seconds()),
	}, nil
}
