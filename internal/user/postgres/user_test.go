package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/workflow-approval/internal"
	"github.com/frahmantamala/workflow-approval/internal/user"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserRepository Suite")
}

type SQLiteUser struct {
	ID           string    `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"not null"`
	Department   string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	newUser := func(id, username, role, department string) *user.User {
		now := time.Now()
		return &user.User{
			ID:           id,
			Username:     username,
			Email:        username + "@company.com",
			PasswordHash: "$2a$10$hash",
			Role:         role,
			Department:   department,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and lookups", func() {
		It("should round-trip a user", func() {
			Expect(repo.Create(newUser("u-1", "alice", user.RoleUser, "Engineering"))).To(Succeed())

			stored, err := repo.GetByID("u-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Username).To(Equal("alice"))
			Expect(stored.PasswordHash).To(Equal("$2a$10$hash"))
		})

		It("should resolve by username", func() {
			Expect(repo.Create(newUser("u-1", "alice", user.RoleUser, "Engineering"))).To(Succeed())

			stored, err := repo.GetByUsername("alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ID).To(Equal("u-1"))
		})

		It("should return the not-found sentinel for unknown lookups", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(MatchError(internal.ErrUserNotFound))

			_, err = repo.GetByUsername("ghost")
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should filter by role and department", func() {
			Expect(repo.Create(newUser("u-1", "alice", user.RoleUser, "Engineering"))).To(Succeed())
			Expect(repo.Create(newUser("u-2", "bob", user.RoleManager, "Engineering"))).To(Succeed())
			Expect(repo.Create(newUser("u-3", "carol", user.RoleAdmin, "IT"))).To(Succeed())

			managers, err := repo.GetByRole(user.RoleManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(managers).To(HaveLen(1))
			Expect(managers[0].Username).To(Equal("bob"))

			engineers, err := repo.GetByDepartment("Engineering")
			Expect(err).NotTo(HaveOccurred())
			Expect(engineers).To(HaveLen(2))
		})
	})

	Describe("existence checks", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUser("u-1", "alice", user.RoleUser, "Engineering"))).To(Succeed())
		})

		It("should report a taken username", func() {
			taken, err := repo.ExistsByUsername("alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())

			taken, err = repo.ExistsByUsername("bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})

		It("should report a taken email", func() {
			taken, err := repo.ExistsByEmail("alice@company.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should persist profile changes", func() {
			u := newUser("u-1", "alice", user.RoleUser, "Engineering")
			Expect(repo.Create(u)).To(Succeed())

			u.Role = user.RoleManager
			u.Department = "Platform"
			Expect(repo.Update(u)).To(Succeed())

			stored, err := repo.GetByID("u-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Role).To(Equal(user.RoleManager))
			Expect(stored.Department).To(Equal("Platform"))
		})
	})

	Describe("Delete", func() {
		It("should remove an existing user", func() {
			Expect(repo.Create(newUser("u-1", "alice", user.RoleUser, "Engineering"))).To(Succeed())

			Expect(repo.Delete("u-1")).To(Succeed())

			_, err := repo.GetByID("u-1")
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should be a no-op for an unknown id", func() {
			Expect(repo.Delete("missing")).To(Succeed())
		})
	})
})
