// File: services/account/account.go
package account

import (
	"context"
	"strings"
	"time"

	clientRepo "clinibook/database/repository/client"
	professionalRepo "clinibook/database/repository/professional"
	userRepo "clinibook/database/repository/user"
	"clinibook/models"
	"clinibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of issued session tokens.
const TokenTTL = 72 * time.Hour

// RegisterInput is the payload for creating an account. Specialty is required
// for professionals, ignored for clients.
type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Specialty string `json:"specialty,omitempty"`
}

// UpdateInput carries optional profile changes; empty fields are left as is.
type UpdateInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthResult is the login/registration response: the account plus a session token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AccountService handles registration, login and profile management for both
// sides of the marketplace.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, in UpdateInput) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

// DefaultAccountService is the production AccountService.
type DefaultAccountService struct {
	UserRepo   userRepo.UserRepository
	ClientRepo clientRepo.ClientRepository
	ProRepo    professionalRepo.ProfessionalRepository
}

// NewAccountService creates a new DefaultAccountService.
func NewAccountService(
	users userRepo.UserRepository,
	clients clientRepo.ClientRepository,
	pros professionalRepo.ProfessionalRepository,
) *DefaultAccountService {
	return &DefaultAccountService{UserRepo: users, ClientRepo: clients, ProRepo: pros}
}

func (s *DefaultAccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, utils.NewDomainError(utils.CodeFormat, "name, email and password are required")
	}
	switch in.Role {
	case models.RoleClient:
	case models.RoleProfessional:
		if in.Specialty == "" {
			return nil, utils.NewDomainError(utils.CodeFormat, "specialty is required for professionals")
		}
	default:
		return nil, utils.NewDomainErrorf(utils.CodeFormat, "unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	switch in.Role {
	case models.RoleClient:
		err = s.ClientRepo.Create(ctx, &models.Client{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			History:   []string{},
			CreatedAt: now,
			UpdatedAt: now,
		})
	case models.RoleProfessional:
		err = s.ProRepo.Create(ctx, &models.Professional{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Specialty: in.Specialty,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		// Best-effort rollback of the half-created account.
		if delErr := s.UserRepo.Delete(ctx, user.ID); delErr != nil {
			utils.GetLogger().Error("failed to roll back user after profile creation failure",
				zap.String("userID", user.ID), zap.Error(delErr))
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *DefaultAccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.HasCode(err, utils.CodeNotFound) {
			return nil, utils.NewDomainError(utils.CodeNotFound, "invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewDomainError(utils.CodeNotFound, "invalid email or password")
	}
	return s.issueToken(user)
}

func (s *DefaultAccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}

func (s *DefaultAccountService) Update(ctx context.Context, userID string, in UpdateInput) (*models.User, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account and its role-side record. Reservations and
// notifications are left in place; they reference ids that simply no longer
// resolve.
func (s *DefaultAccountService) Delete(ctx context.Context, userID string) error {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	switch user.Role {
	case models.RoleClient:
		if client, err := s.ClientRepo.GetByUserID(ctx, userID); err == nil {
			if err := s.ClientRepo.Delete(ctx, client.ID); err != nil {
				return err
			}
		}
	case models.RoleProfessional:
		if pro, err := s.ProRepo.GetByUserID(ctx, userID); err == nil {
			if err := s.ProRepo.Delete(ctx, pro.ID); err != nil {
				return err
			}
		}
	}
	return s.UserRepo.Delete(ctx, userID)
}

// issueToken generates a session JWT and caches its hash so the auth
// middleware can skip the DB on subsequent requests.
func (s *DefaultAccountService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, TokenTTL)
	if err != nil {
		return nil, err
	}

	cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Set(cacheCtx, key, user.ID+"|"+user.Role, TokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("auth cache write failed", zap.Error(err))
	}

	return &AuthResult{User: user, Token: token}, nil
}
