package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
	"github.com/nexahost/portal-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase authentication: account registration and login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates an account with a bcrypt-hashed credential. Returns
// domain.ErrDuplicate when the email is taken. Role defaults to PARTNER.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RolePartner
	}
	now := time.Now()
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		CompanyName:  in.CompanyName,
		TaxID:        in.TaxID,
		Address:      in.Address,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies the credentials and returns a signed token plus the user.
// Accounts auto-created by the approval flow carry an empty credential and
// cannot log in.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// ListUsers returns accounts newest first (admin listing).
func (uc *UseCase) ListUsers(limit, offset int) ([]*dto.UserResponse, error) {
	list, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		CompanyName: u.CompanyName,
		TaxID:       u.TaxID,
		Address:     u.Address,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
