package user

import "errors"

// CreateUserDTO is the provisioning payload. Password arrives in plaintext
// over the wire and is hashed before it ever reaches the record store.
type CreateUserDTO struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Username == "" {
		return errors.New("username is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	if dto.Role == "" {
		return errors.New("role is required")
	}
	return nil
}

// UpdateUserDTO mirrors the provisioning payload; an empty password means
// the stored credential is kept as-is.
type UpdateUserDTO struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Username == "" {
		return errors.New("username is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Role == "" {
		return errors.New("role is required")
	}
	return nil
}
