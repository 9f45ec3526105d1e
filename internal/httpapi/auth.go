package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venicelab/orders/internal/config"
)

// TokenService issues and verifies HS256 bearer tokens. Credential
// verification is out of scope here; any non-empty username/password pair
// gets a token.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenService(cfg config.Auth) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
	}
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func (t *TokenService) Generate(userID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username: username,
	})
	return token.SignedString(t.secret)
}

func (t *TokenService) verify(raw string) error {
	_, err := jwt.ParseWithClaims(raw, &claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return t.secret, nil
		},
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)
	return err
}

func (t *TokenService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "bearer token required"})
			return
		}
		if err := t.verify(raw); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	TokenType string `json:"token_type"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "bad json"})
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "username and password are required"})
		return
	}

	token, err := s.tokens.Generate(uuid.NewString(), req.Username)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "service error"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int(s.tokens.ttl.Seconds()),
		TokenType: "Bearer",
	})
}
