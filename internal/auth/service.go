package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	emailService "github.com/finflow/finflow/internal/email"
	"github.com/finflow/finflow/internal/user"
)

const (
	CodeVerifyType = "verify"
	CodePassType   = "password"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInternalError            = errors.New("internal Server Error")
	ErrInvalidVerificationCode  = errors.New("invalid verification code")
	ErrVerificationCodeExpired  = errors.New("verification code expired")
	ErrUserNotVerified          = errors.New("user has not been verified")
	ErrTooManyEmailCodeRequests = errors.New("too many email code requests")
	ErrInvalidCodeType          = errors.New("invalid code type")
)

type Service interface {
	Login(emailOrLogin, password string) (*user.User, string, string, error)
	RefreshAccessToken(userID string) (string, string, error)
	RequestPasswordReset(email string) error
	ResetPassword(email, code, newPassword string) error
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService  user.Service
	jwtManager   JWTManagerInterface
	emailService emailService.EmailSender
	log          *logrus.Logger
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, emailSender emailService.EmailSender, logger *logrus.Logger) Service {
	return &service{
		userService:  userService,
		jwtManager:   jwtManager,
		emailService: emailSender,
		log:          logger,
	}
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func (s *service) Login(emailOrLogin, password string) (*user.User, string, string, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		s.log.WithError(err).Error("user lookup failed during login")
		return nil, "", "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	// Password checked first so an unverified-account response never leaks
	// whether a password guess was right.
	if !existingUser.IsActive {
		if err := s.userService.ResendVerificationCode(existingUser); err != nil &&
			!errors.Is(err, user.ErrTooManyEmailCodeRequests) {
			return nil, "", "", ErrInternalError
		}
		return nil, "", "", ErrUserNotVerified
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, defaultJWTDuration)
	if err != nil {
		s.log.WithError(err).Error("access token generation failed")
		return nil, "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		s.log.WithError(err).Error("refresh token generation failed")
		return nil, "", "", ErrInternalError
	}

	return existingUser, jwtToken, refreshToken, nil
}

// RefreshAccessToken trusts its caller: requests reach it only through the
// refresh token middleware, which has already validated the token.
func (s *service) RefreshAccessToken(userID string) (string, string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", ErrInternalError
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshJWT(userID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	return jwtToken, newRefreshToken, nil
}

func (s *service) RequestPasswordReset(email string) error {
	existingUser, err := s.userService.GetUserByLoginOrEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	code, err := user.GenerateVerificationCode()
	if err != nil {
		return ErrInternalError
	}

	expirationTime := time.Now().UTC().Add(10 * time.Minute)
	if err := s.userService.SaveEmailVerificationCode(existingUser.ID, code, expirationTime, CodePassType); err != nil {
		s.log.WithError(err).Error("saving password reset code failed")
		return ErrInternalError
	}

	s.emailService.QueueEmail(existingUser.Email, emailService.ResetPasswordData{
		UserName: existingUser.Login,
		Code:     code,
	})
	return nil
}

func (s *service) ResetPassword(email, verificationCode, newPassword string) error {
	existingUser, err := s.userService.GetUserByLoginOrEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	storedCode, codeType, expiryTime, _, err := s.userService.GetEmailVerificationCode(existingUser.ID)
	if err != nil {
		if errors.Is(err, user.ErrNoVerificationCode) {
			return user.ErrNoVerificationCode
		}
		return ErrInternalError
	}
	if codeType != CodePassType {
		return ErrInvalidCodeType
	}
	if storedCode != verificationCode {
		return ErrInvalidVerificationCode
	}
	if time.Now().After(expiryTime) {
		return ErrVerificationCodeExpired
	}

	if err := s.userService.DeleteEmailVerificationCode(existingUser.ID); err != nil {
		return ErrInternalError
	}

	if err := s.userService.ResetPassword(existingUser.ID, newPassword); err != nil {
		return ErrInternalError
	}
	return nil
}
