package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/errors"
	"github.com/studycircle-dev/studycircle/internal/logger"
)

// Auth is a thin identity boundary: the collaboration core only needs a
// verified viewer id, so this stays at register/login issuing tokens.
type AuthService interface {
	Register(creds domain.Credentials, displayName string) error
	Login(creds domain.Credentials) (string, error)
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

func (a *Auth) Register(creds domain.Credentials, displayName string) error {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" {
		return errors.NewValidation("Email is required")
	}
	if len(creds.Password) < 8 {
		return errors.NewValidation("Password must be at least 8 characters")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	if _, err := a.storage.SaveUser(domain.User{Email: email, DisplayName: displayName, PassHash: passHash}); err != nil {
		if errors.IsConflict(err) {
			return errors.NewConflict("Email already registered")
		}
		return err
	}
	return nil
}

func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", &errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: 401}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(creds.Password)); err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Wrong email or password", StatusCode: 401}
	}

	return a.jwt.NewToken(user)
}
