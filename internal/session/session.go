// Package session resolves the signed-in identity (user id and bearer token).
// The result is passed explicitly to whoever needs it; nothing here is global.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirName      = ".profile-cli"
	credFileName = "credentials.json"

	SourceEnv  = "env"
	SourceFile = "file"
)

// ErrNotLoggedIn is returned when neither the environment nor the
// credentials file provide a token.
var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	UserID    string     `json:"user_id"`
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional (JWT exp)
}

func credsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the credentials file location.
func Path() (string, error) {
	dir, err := credsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// Load resolves the session. A non-empty token (normally PROFILE_TOKEN) wins
// over the credentials file; userID, when set, overrides the stored one.
// A missing user id is filled from the token's "_id" claim when the token is
// a JWT.
func Load(token, userID string) (*Session, error) {
	var s *Session
	if tok := stripBearer(strings.TrimSpace(token)); tok != "" {
		s = &Session{Token: tok, Source: SourceEnv}
	} else {
		fromFile, err := readFile()
		if err != nil {
			return nil, err
		}
		s = fromFile
	}
	if id := strings.TrimSpace(userID); id != "" {
		s.UserID = id
	}
	if s.UserID == "" || s.ExpiresAt == nil {
		if c, err := DecodeClaims(s.Token); err == nil {
			if s.UserID == "" {
				s.UserID = c.UserID
			}
			if s.ExpiresAt == nil && c.ExpiresAt != nil {
				s.ExpiresAt = c.ExpiresAt
			}
		}
	}
	return s, nil
}

func readFile() (*Session, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	s.Token = stripBearer(s.Token)
	if strings.TrimSpace(s.Token) == "" {
		return nil, ErrNotLoggedIn
	}
	s.Source = SourceFile
	return &s, nil
}

// Save writes the credentials file with owner-only permissions.
func Save(token, userID string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	dir, err := credsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	s := Session{
		UserID:    strings.TrimSpace(userID),
		Token:     token,
		Source:    SourceFile,
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, credFileName), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes the credentials file. A missing file is not an error.
func Delete() error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Claims is the subset of a JWT payload we care about.
type Claims struct {
	UserID    string
	ExpiresAt *time.Time
	Raw       string
}

// DecodeClaims reads a JWT payload without verifying the signature.
func DecodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("opaque token")
	}
	payload, err := decodeB64URL(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	var body struct {
		ID  string `json:"_id"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	c := &Claims{UserID: body.ID, Raw: string(payload)}
	if body.Exp > 0 {
		exp := time.Unix(body.Exp, 0)
		c.ExpiresAt = &exp
	}
	return c, nil
}

func decodeB64URL(s string) ([]byte, error) {
	dec, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, err
	}
	return dec, nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
