package user

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workflow-approval/internal"
)

// Repository defines the record-store operations the directory needs.
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetAll() ([]*User, error)
	GetByRole(role string) ([]*User, error)
	GetByDepartment(department string) ([]*User, error)
	Update(u *User) error
	Delete(id string) error
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
}

// Service is the user directory: provisioning, profile updates and the
// lookups the workflow engine uses to resolve submitters and deciders.
type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "username", dto.Username)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if taken, err := s.repo.ExistsByUsername(dto.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, internal.ErrDuplicateUser
	}
	if taken, err := s.repo.ExistsByEmail(dto.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, internal.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &User{
		ID:           uuid.NewString(),
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Department:   dto.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *Service) UpdateUser(id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Username = dto.Username
	existing.Email = dto.Email
	existing.Role = dto.Role
	existing.Department = dto.Department
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		existing.PasswordHash = string(hash)
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "username", existing.Username)
	return existing, nil
}

// DeleteUser removes a user if present. Deleting an unknown id is a no-op,
// matching the directory's provisioning semantics.
func (s *Service) DeleteUser(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) GetUserByID(id string) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetUserByUsername(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}

func (s *Service) GetAllUsers() ([]*User, error) {
	return s.repo.GetAll()
}

func (s *Service) GetUsersByRole(role string) ([]*User, error) {
	return s.repo.GetByRole(role)
}

func (s *Service) GetUsersByDepartment(department string) ([]*User, error) {
	return s.repo.GetByDepartment(department)
}
