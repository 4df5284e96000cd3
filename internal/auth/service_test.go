package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workflow-approval/internal"
	"github.com/frahmantamala/workflow-approval/internal/auth"
	"github.com/frahmantamala/workflow-approval/internal/user"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock user directory for testing
type mockUserDirectory struct {
	users map[string]*user.User
}

func newMockUserDirectory() *mockUserDirectory {
	return &mockUserDirectory{users: make(map[string]*user.User)}
}

func (m *mockUserDirectory) addUser(username, password, role string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.users[username] = &user.User{
		ID:           "id-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
}

func (m *mockUserDirectory) GetUserByUsername(username string) (*user.User, error) {
	u, exists := m.users[username]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

var _ = Describe("AuthService", func() {
	var (
		authService *auth.Service
		mockUsers   *mockUserDirectory
		tokenGen    *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockUsers = newMockUserDirectory()
		mockUsers.addUser("alice", "secret", user.RoleUser)
		tokenGen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		authService = auth.NewService(mockUsers, tokenGen)
	})

	Describe("Authenticate", func() {
		It("should issue a token pair for valid credentials", func() {
			result, err := authService.Authenticate(auth.LoginDTO{Username: "alice", Password: "secret"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Tokens.AccessToken).ToNot(BeEmpty())
			Expect(result.Tokens.RefreshToken).ToNot(BeEmpty())
			Expect(result.User.Username).To(Equal("alice"))
		})

		It("should embed username and role in the access token", func() {
			result, err := authService.Authenticate(auth.LoginDTO{Username: "alice", Password: "secret"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := tokenGen.ValidateToken(result.Tokens.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Username).To(Equal("alice"))
			Expect(claims.Role).To(Equal(user.RoleUser))
		})

		It("should reject a wrong password", func() {
			_, err := authService.Authenticate(auth.LoginDTO{Username: "alice", Password: "wrong"})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown user with the same error as a wrong password", func() {
			_, err := authService.Authenticate(auth.LoginDTO{Username: "ghost", Password: "secret"})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("should reject an empty username", func() {
			_, err := authService.Authenticate(auth.LoginDTO{Password: "secret"})

			Expect(err).To(MatchError("username is required"))
		})

		It("should reject an empty password", func() {
			_, err := authService.Authenticate(auth.LoginDTO{Username: "alice"})

			Expect(err).To(MatchError("password is required"))
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair from a valid refresh token", func() {
			result, err := authService.Authenticate(auth.LoginDTO{Username: "alice", Password: "secret"})
			Expect(err).ToNot(HaveOccurred())

			tokens, err := authService.RefreshTokens(result.Tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject a garbage token", func() {
			_, err := authService.RefreshTokens("not-a-token")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("should reject an access token signed with the wrong secret", func() {
			other := auth.NewJWTTokenGenerator("other-access", "other-refresh", 15*time.Minute, 7*24*time.Hour)
			foreign, err := other.GenerateRefreshToken("alice", user.RoleUser)
			Expect(err).ToNot(HaveOccurred())

			_, err = authService.RefreshTokens(foreign)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("JWTTokenGenerator", func() {
		It("should reject an expired token", func() {
			expired := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Nanosecond, 7*24*time.Hour)
			token, err := expired.GenerateAccessToken("alice", user.RoleUser)
			Expect(err).ToNot(HaveOccurred())

			time.Sleep(10 * time.Millisecond)
			_, err = tokenGen.ValidateToken(token)

			Expect(err).To(MatchError(internal.ErrTokenExpired))
		})

		It("should validate a refresh token against the refresh secret", func() {
			token, err := tokenGen.GenerateRefreshToken("alice", user.RoleManager)
			Expect(err).ToNot(HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Role).To(Equal(user.RoleManager))
		})
	})
})
