package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"notemind-backend/internal/middleware"
	"notemind-backend/internal/models"
	"notemind-backend/internal/repository"
)

type AuthService struct {
	userRepo       *repository.UserRepo
	redis          *redis.Client
	jwt            *middleware.JWTAuth
	googleClientID string
}

func NewAuthService(userRepo *repository.UserRepo, redisClient *redis.Client, jwt *middleware.JWTAuth, googleClientID string) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		redis:          redisClient,
		jwt:            jwt,
		googleClientID: googleClientID,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	// Validate all fields at once
	fieldErrors := make(map[string]string)

	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Check uniqueness
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, &ConflictError{Message: "Email already in use"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"credentials": "Email and password are required",
		}}
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.issueTokens(ctx, user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userIDStr, err := s.redis.Get(ctx, "refresh:"+refreshToken).Result()
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	// Delete old token (rotation)
	s.redis.Del(ctx, "refresh:"+refreshToken)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.redis.Del(ctx, "refresh:"+refreshToken).Err()
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.AuthTokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(64)
	if err != nil {
		return nil, err
	}

	// Store refresh token in Redis (7 days)
	err = s.redis.Set(ctx, "refresh:"+refreshToken, user.ID.String(), 7*24*time.Hour).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
	}, nil
}

// GoogleLogin verifies a Google ID token and logs in or creates the user.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*models.AuthTokens, error) {
	if s.googleClientID == "" {
		return nil, &ValidationError{Fields: map[string]string{"google": "Google sign-in is not configured"}}
	}

	// Verify the ID token using Google's tokeninfo endpoint
	resp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Google token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnauthorizedError{Message: "Invalid Google token"}
	}

	var tokenInfo struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
		Aud     string `json:"aud"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, fmt.Errorf("failed to decode Google token info: %w", err)
	}

	// Verify audience matches our client ID
	if tokenInfo.Aud != s.googleClientID {
		return nil, &UnauthorizedError{Message: "Google token audience mismatch"}
	}

	if tokenInfo.Email == "" || tokenInfo.Sub == "" {
		return nil, &ValidationError{Fields: map[string]string{"google": "Google account missing email"}}
	}

	// Try to find existing user by Google ID
	user, err := s.userRepo.GetByGoogleID(ctx, tokenInfo.Sub)
	if err == nil {
		s.userRepo.UpdateLastLogin(ctx, user.ID)
		return s.issueTokens(ctx, user)
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Try to find existing user by email and link the Google account
	user, err = s.userRepo.GetByEmail(ctx, tokenInfo.Email)
	if err == nil {
		s.userRepo.LinkGoogle(ctx, user.ID, tokenInfo.Sub)
		s.userRepo.UpdateLastLogin(ctx, user.ID)
		return s.issueTokens(ctx, user)
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// New user
	googleID := tokenInfo.Sub
	var avatarURL *string
	if tokenInfo.Picture != "" {
		avatarURL = &tokenInfo.Picture
	}

	newUser := &models.User{
		Email:        tokenInfo.Email,
		Name:         tokenInfo.Name,
		AvatarURL:    avatarURL,
		AuthProvider: "google",
		GoogleID:     &googleID,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, newUser)
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Passwords are 8-20 characters, letters and digits only, with at
// least one of each.
func validatePassword(pw string) error {
	if len(pw) < 8 || len(pw) > 20 {
		return fmt.Errorf("Password must be 8-20 characters")
	}
	hasLetter, hasDigit := false, false
	for _, ch := range pw {
		switch {
		case unicode.IsLetter(ch):
			hasLetter = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			return fmt.Errorf("Password may only contain letters and numbers")
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("Password must contain at least one letter and one number")
	}
	return nil
}
