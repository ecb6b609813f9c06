// Package devserver is a small local implementation of the user API the edit
// form talks to. It exists so the CLI can be run end to end without the real
// backend.
package devserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/idilsaglam/profile/internal/model"
	"github.com/idilsaglam/profile/internal/store/jsonstore"
	"github.com/idilsaglam/profile/internal/validate"
)

const ctxAccountKey = "account"

var (
	errNotFound      = errors.New("User not found")
	errEmailTaken    = errors.New("Email already exists")
	errNameRequired  = errors.New("Name is required")
	errEmailInvalid  = errors.New("Please fill a valid email address")
	errPasswordReq   = errors.New("Password is required")
	errPasswordShort = fmt.Errorf("Password must be at least %d characters.", validate.MinPasswordLen)
	errPasswordLong  = fmt.Errorf("Password must be at most %d bytes.", maxPasswordBytes)
)

// bcrypt refuses longer input
const maxPasswordBytes = 72

type Server struct {
	mu       sync.Mutex
	store    *jsonstore.Store
	accounts []model.Account
	logger   *slog.Logger
	now      func() time.Time
	cost     int // bcrypt cost
}

// New loads the accounts from store.
func New(store *jsonstore.Store, logger *slog.Logger) (*Server, error) {
	accounts, err := store.Load()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{store: store, accounts: accounts, logger: logger, now: time.Now, cost: bcrypt.DefaultCost}, nil
}

// Router builds the gin engine. Middleware is left to the caller.
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)

	api := r.Group("/api/users")
	{
		api.POST("", s.createHandler)
		api.GET("/:userId", s.requireSignin, s.readHandler)
		api.PUT("/:userId", s.requireSignin, s.hasAuthorization, s.updateHandler)
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

// Seed creates a demo account when the store is empty and returns the first
// account either way.
func (s *Server) Seed(name, email, password string) (model.Account, error) {
	s.mu.Lock()
	if len(s.accounts) > 0 {
		acc := s.accounts[0]
		s.mu.Unlock()
		return acc, nil
	}
	s.mu.Unlock()
	return s.Create(name, email, password)
}

// Create registers a new account and persists it.
func (s *Server) Create(name, email, password string) (model.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return model.Account{}, errNameRequired
	}
	if !validate.Email(email) {
		return model.Account{}, errEmailInvalid
	}
	if password == "" {
		return model.Account{}, errPasswordReq
	}
	if !validate.Password(password) {
		return model.Account{}, errPasswordShort
	}
	if len(password) > maxPasswordBytes {
		return model.Account{}, errPasswordLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(email, "") {
		return model.Account{}, errEmailTaken
	}
	now := s.now().UTC()
	acc := model.Account{
		User: model.User{
			ID:      uuid.NewString(),
			Name:    name,
			Email:   email,
			Created: &now,
		},
		HashedPassword: string(hash),
		Token:          uuid.NewString(),
	}
	next := append(append([]model.Account{}, s.accounts...), acc)
	if err := s.store.Save(next); err != nil {
		return model.Account{}, err
	}
	s.accounts = next
	s.logger.Info("account created", "user_id", acc.ID)
	return acc, nil
}

// Update applies patch to the account with id.
func (s *Server) Update(id string, patch model.Patch) (model.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.User{}, errNameRequired
	}
	if patch.Email != nil && !validate.Email(strings.TrimSpace(*patch.Email)) {
		return model.User{}, errEmailInvalid
	}
	var hash []byte
	if patch.Password != nil {
		if !validate.Password(*patch.Password) {
			return model.User{}, errPasswordShort
		}
		if len(*patch.Password) > maxPasswordBytes {
			return model.User{}, errPasswordLong
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(*patch.Password), s.cost)
		if err != nil {
			return model.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.User{}, errNotFound
	}
	acc := s.accounts[i]
	if patch.Name != nil {
		acc.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if s.emailTakenLocked(email, id) {
			return model.User{}, errEmailTaken
		}
		acc.Email = email
	}
	if hash != nil {
		acc.HashedPassword = string(hash)
	}
	now := s.now().UTC()
	acc.Updated = &now

	next := append([]model.Account{}, s.accounts...)
	next[i] = acc
	if err := s.store.Save(next); err != nil {
		return model.User{}, err
	}
	s.accounts = next
	s.logger.Info("account updated", "user_id", id)
	return acc.User, nil
}

// User returns the public record for id.
func (s *Server) User(id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.User{}, errNotFound
	}
	return s.accounts[i].User, nil
}

func (s *Server) accountByToken(token string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Token == token {
			return a, true
		}
	}
	return model.Account{}, false
}

func (s *Server) indexLocked(id string) int {
	for i, a := range s.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) emailTakenLocked(email, exceptID string) bool {
	for _, a := range s.accounts {
		if a.ID != exceptID && strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}
