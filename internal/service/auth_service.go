package service

import (
	"math/rand"
	"strings"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/roster"

	"github.com/golang-jwt/jwt/v5"
)

// DTOs for Request validation
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string         `json:"token"`
	Identity model.Identity `json:"identity"`
}

// AuthService validates login pairs against the static roster and issues
// session tokens.
type AuthService interface {
	Authenticate(loginID, password string) *model.Identity
	Login(req LoginRequest) (*LoginResponse, error)
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

// Authenticate checks a login pair against the fixed admin credentials and
// the employee roster. Both inputs are trimmed first; the result is nil
// when either is empty, when the pair does not verify, or when the ID is
// not on the roster. Department is not decided here — it is assigned at
// login, keeping this a deterministic function of the inputs and roster.
func (s *authService) Authenticate(loginID, password string) *model.Identity {
	trimmedID := strings.TrimSpace(loginID)
	trimmedPassword := strings.TrimSpace(password)

	if trimmedID == "" || trimmedPassword == "" {
		return nil
	}

	if trimmedID == roster.AdminID {
		if !roster.VerifyCredential(roster.AdminID, trimmedPassword) {
			return nil
		}
		return &model.Identity{
			EmployeeID: roster.AdminID,
			Name:       roster.AdminName,
			Role:       model.RoleAdmin,
		}
	}

	// Employee policy: the password is the employee ID itself, so the
	// stored credential hash only verifies when the pair matches exactly.
	if !roster.VerifyCredential(trimmedID, trimmedPassword) {
		return nil
	}

	employee, ok := roster.Lookup(trimmedID)
	if !ok {
		return nil
	}

	return &model.Identity{
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       model.RoleEmployee,
	}
}

// Login authenticates the pair, assigns the session department and returns
// a signed JWT carrying the identity claims.
func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	identity := s.Authenticate(req.LoginID, req.Password)
	if identity == nil {
		return nil, ErrInvalidCredentials
	}

	if identity.IsAdmin() {
		identity.Department = roster.AdminName
	} else {
		identity.Department = roster.Departments[rand.Intn(len(roster.Departments))]
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        identity.EmployeeID,
		"name":       identity.Name,
		"department": identity.Department,
		"role":       identity.Role,
		"iat":        now.Unix(),
		"exp":        now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: signed, Identity: *identity}, nil
}
