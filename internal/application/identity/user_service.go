package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/shared"
)

// UserService manages user accounts within one organization
type UserService struct {
	userRepo       identity.UserRepository
	departmentRepo identity.DepartmentRepository
}

// NewUserService creates a UserService
func NewUserService(userRepo identity.UserRepository, departmentRepo identity.DepartmentRepository) *UserService {
	return &UserService{userRepo: userRepo, departmentRepo: departmentRepo}
}

// Create creates a user account with a tenant-unique username
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(tenantID, req.Username, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}
	user.SetFullName(req.FullName)
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByIDForTenant(ctx, tenantID, *req.DepartmentID); err != nil {
			return nil, err
		}
		user.SetDepartment(req.DepartmentID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Get loads one user
func (s *UserService) Get(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List returns the organization's users
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]UserResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, 0, len(users))
	for idx := range users {
		responses = append(responses, *toUserResponse(&users[idx]))
	}
	return responses, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Unlock clears an account lock before its expiry
func (s *UserService) Unlock(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	user.Unlock()
	return s.userRepo.Save(ctx, user)
}
