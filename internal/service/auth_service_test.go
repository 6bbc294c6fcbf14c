package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafacile/quote-service/internal/auth"
	"github.com/casafacile/quote-service/internal/model"
)

type fakeUserStore struct {
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	return &user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, auth.NewIssuer("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	valid := RegisterInput{
		Email:     "Mario.Rossi@Example.com",
		Password:  "segreta1",
		FirstName: "Mario",
		LastName:  "Rossi",
		Phone:     "+39 333 1234567",
	}

	t.Run("creates the user and issues a token", func(t *testing.T) {
		store := newFakeUserStore()
		result, err := newAuthService(store).Register(context.Background(), valid)
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if result.User.Email != "mario.rossi@example.com" {
			t.Fatalf("expected lowercased email, got %q", result.User.Email)
		}
		if result.Token == "" {
			t.Fatal("expected a token")
		}
		if result.User.PasswordHash == valid.Password {
			t.Fatal("password must not be stored in clear")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		input := valid
		input.FirstName = " "
		if _, err := newAuthService(newFakeUserStore()).Register(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		input := valid
		input.Email = "not-an-email"
		if _, err := newAuthService(newFakeUserStore()).Register(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		input := valid
		input.Password = "corta"
		if _, err := newAuthService(newFakeUserStore()).Register(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := newFakeUserStore()
		svc := newAuthService(store)
		if _, err := svc.Register(context.Background(), valid); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if _, err := svc.Register(context.Background(), valid); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:     "mario@example.com",
		Password:  "segreta1",
		FirstName: "Mario",
		LastName:  "Rossi",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(context.Background(), LoginInput{Email: "MARIO@example.com", Password: "segreta1"})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if result.User.ID != registered.User.ID {
			t.Fatal("expected the registered user")
		}
		if result.Token == "" {
			t.Fatal("expected a token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Login(context.Background(), LoginInput{Email: "mario@example.com", Password: "sbagliata"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Login(context.Background(), LoginInput{Email: "nessuno@example.com", Password: "segreta1"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
