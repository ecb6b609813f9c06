package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/profile/internal/model"
)

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) createHandler(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, err := s.Create(req.Name, req.Email, req.Password); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully signed up!"})
}

func (s *Server) readHandler(c *gin.Context) {
	u, err := s.User(c.Param("userId"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) updateHandler(c *gin.Context) {
	var patch model.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	u, err := s.Update(c.Param("userId"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// requireSignin resolves the bearer token to an account.
func (s *Server) requireSignin(c *gin.Context) {
	h := c.GetHeader("Authorization")
	token := strings.TrimSpace(h)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UnauthorizedError: No authorization token was found"})
		return
	}
	acc, ok := s.accountByToken(token)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "UnauthorizedError: invalid token"})
		return
	}
	c.Set(ctxAccountKey, acc)
	c.Next()
}

// hasAuthorization only lets a user modify their own record.
func (s *Server) hasAuthorization(c *gin.Context) {
	raw, _ := c.Get(ctxAccountKey)
	acc, ok := raw.(model.Account)
	if !ok || acc.ID != c.Param("userId") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User is not authorized"})
		return
	}
	c.Next()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNotFound),
		errors.Is(err, errEmailTaken),
		errors.Is(err, errNameRequired),
		errors.Is(err, errEmailInvalid),
		errors.Is(err, errPasswordReq),
		errors.Is(err, errPasswordShort),
		errors.Is(err, errPasswordLong):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
