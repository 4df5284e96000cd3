package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workflow-approval/internal"
	"github.com/frahmantamala/workflow-approval/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[string]*user.User
	createError error
	getError    error
	deleteError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*user.User)}
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(id string) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, exists := m.users[id]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) GetAll() ([]*user.User, error) {
	all := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	return all, nil
}

func (m *mockUserRepository) GetByRole(role string) ([]*user.User, error) {
	result := make([]*user.User, 0)
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepository) GetByDepartment(department string) ([]*user.User, error) {
	result := make([]*user.User, 0)
	for _, u := range m.users {
		if u.Department == department {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) ExistsByUsername(username string) (bool, error) {
	_, err := m.GetByUsername(username)
	return err == nil, nil
}

func (m *mockUserRepository) ExistsByEmail(email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("UserService", func() {
	var (
		userService *user.Service
		mockRepo    *mockUserRepository
		logger      *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		userService = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	Describe("CreateUser", func() {
		It("should create a user and hash the password", func() {
			dto := user.CreateUserDTO{
				Username:   "alice",
				Email:      "alice@company.com",
				Password:   "secret",
				Role:       user.RoleUser,
				Department: "Engineering",
			}

			result, err := userService.CreateUser(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).ToNot(BeEmpty())
			Expect(result.PasswordHash).ToNot(Equal("secret"))
			Expect(bcrypt.CompareHashAndPassword([]byte(result.PasswordHash), []byte("secret"))).To(Succeed())
		})

		It("should reject a duplicate username", func() {
			dto := user.CreateUserDTO{
				Username: "alice", Email: "alice@company.com", Password: "secret", Role: user.RoleUser,
			}
			_, err := userService.CreateUser(dto)
			Expect(err).ToNot(HaveOccurred())

			dto.Email = "other@company.com"
			_, err = userService.CreateUser(dto)

			Expect(err).To(MatchError(internal.ErrDuplicateUser))
		})

		It("should reject a duplicate email", func() {
			dto := user.CreateUserDTO{
				Username: "alice", Email: "alice@company.com", Password: "secret", Role: user.RoleUser,
			}
			_, err := userService.CreateUser(dto)
			Expect(err).ToNot(HaveOccurred())

			dto.Username = "alice2"
			_, err = userService.CreateUser(dto)

			Expect(err).To(MatchError(internal.ErrDuplicateUser))
		})

		It("should reject missing required fields", func() {
			_, err := userService.CreateUser(user.CreateUserDTO{Username: "alice"})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("UpdateUser", func() {
		var existing *user.User

		BeforeEach(func() {
			var err error
			existing, err = userService.CreateUser(user.CreateUserDTO{
				Username: "alice", Email: "alice@company.com", Password: "secret", Role: user.RoleUser, Department: "Engineering",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should keep the stored credential when password is empty", func() {
			originalHash := existing.PasswordHash

			updated, err := userService.UpdateUser(existing.ID, user.UpdateUserDTO{
				Username: "alice", Email: "alice@company.com", Role: user.RoleManager, Department: "Engineering",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(user.RoleManager))
			Expect(updated.PasswordHash).To(Equal(originalHash))
		})

		It("should re-hash when a new password is supplied", func() {
			originalHash := existing.PasswordHash

			updated, err := userService.UpdateUser(existing.ID, user.UpdateUserDTO{
				Username: "alice", Email: "alice@company.com", Password: "newsecret", Role: user.RoleUser,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.PasswordHash).ToNot(Equal(originalHash))
			Expect(bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newsecret"))).To(Succeed())
		})

		It("should return not found for an unknown id", func() {
			_, err := userService.UpdateUser("missing", user.UpdateUserDTO{
				Username: "x", Email: "x@company.com", Role: user.RoleUser,
			})

			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("DeleteUser", func() {
		It("should delete an existing user", func() {
			created, err := userService.CreateUser(user.CreateUserDTO{
				Username: "alice", Email: "alice@company.com", Password: "secret", Role: user.RoleUser,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(userService.DeleteUser(created.ID)).To(Succeed())

			_, err = userService.GetUserByID(created.ID)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should treat deleting an unknown id as a no-op", func() {
			Expect(userService.DeleteUser("missing")).To(Succeed())
		})

		It("should surface store failures", func() {
			mockRepo.deleteError = errors.New("db down")

			Expect(userService.DeleteUser("any")).To(MatchError("db down"))
		})
	})

	Describe("lookups", func() {
		BeforeEach(func() {
			for _, dto := range []user.CreateUserDTO{
				{Username: "alice", Email: "alice@company.com", Password: "x", Role: user.RoleUser, Department: "Engineering"},
				{Username: "bob", Email: "bob@company.com", Password: "x", Role: user.RoleManager, Department: "Engineering"},
				{Username: "carol", Email: "carol@company.com", Password: "x", Role: user.RoleAdmin, Department: "IT"},
			} {
				_, err := userService.CreateUser(dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should filter by role", func() {
			managers, err := userService.GetUsersByRole(user.RoleManager)

			Expect(err).ToNot(HaveOccurred())
			Expect(managers).To(HaveLen(1))
			Expect(managers[0].Username).To(Equal("bob"))
		})

		It("should filter by department", func() {
			engineers, err := userService.GetUsersByDepartment("Engineering")

			Expect(err).ToNot(HaveOccurred())
			Expect(engineers).To(HaveLen(2))
		})

		It("should resolve by username", func() {
			u, err := userService.GetUserByUsername("carol")

			Expect(err).ToNot(HaveOccurred())
			Expect(u.IsManager()).To(BeTrue())
		})
	})
})
