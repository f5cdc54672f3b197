package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/notifier"
)

const (
	otpTTL       = 5 * time.Minute
	magicLinkTTL = 15 * time.Minute
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*entity.User, error)

	RequestOTP(ctx context.Context, req dto.RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) error
	VerifyMagicLink(ctx context.Context, req dto.VerifyMagicLinkRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	rdb       *redis.Client
	sms       notifier.SMSSender
	email     notifier.EmailSender
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(
	repo repository.UserRepository,
	rdb *redis.Client,
	sms notifier.SMSSender,
	email notifier.EmailSender,
	jwtSecret string,
	jwtTTL time.Duration,
) AuthService {
	return &authService{
		repo:      repo,
		rdb:       rdb,
		sms:       sms,
		email:     email,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	taken, err := s.repo.UsernameTaken(ctx, req.Username)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if taken {
		return nil, apperror.New(apperror.CodeUsernameTaken)
	}

	taken, err = s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if taken {
		return nil, apperror.New(apperror.CodeEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleMember,
		PhoneNumber:  req.PhoneNumber,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeInvalidCredentials)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.CodeInvalidCredentials)
	}

	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*entity.User, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	profile, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		profile = &entity.NurseProfile{UserID: userID}
	}

	if req.Specialty != nil {
		profile.Specialty = req.Specialty
	}
	if req.LicenseNumber != nil {
		// Changing the license number voids any earlier verification.
		profile.LicenseNumber = req.LicenseNumber
		profile.LicenseVerified = false
	}
	if req.HospitalAffiliation != nil {
		profile.HospitalAffiliation = req.HospitalAffiliation
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = req.YearsOfExperience
	}
	if req.Education != nil {
		profile.Education = req.Education
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.ConsentToMentorship != nil {
		profile.ConsentToMentorship = *req.ConsentToMentorship
	}
	if req.AvailableForShiftSwaps != nil {
		profile.AvailableForShiftSwaps = *req.AvailableForShiftSwaps
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.Me(ctx, userID)
}

func (s *authService) RequestOTP(ctx context.Context, req dto.RequestOTPRequest) error {
	if _, err := s.repo.FindByPhone(ctx, req.PhoneNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeUserNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if s.rdb == nil {
		return apperror.New(apperror.CodeInternal)
	}
	if err := s.rdb.Set(ctx, otpKey(req.PhoneNumber), code, otpTTL).Err(); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.sms.SendOTPSMS(ctx, req.PhoneNumber, code); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	if s.rdb == nil {
		return nil, apperror.New(apperror.CodeInternal)
	}

	stored, err := s.rdb.Get(ctx, otpKey(req.PhoneNumber)).Result()
	if err != nil || stored != req.Code {
		return nil, apperror.New(apperror.CodeInvalidCredentials)
	}
	s.rdb.Del(ctx, otpKey(req.PhoneNumber))

	user, err := s.repo.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.issueToken(user)
}

func (s *authService) RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) error {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeUserNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	token := hex.EncodeToString(buf)

	if s.rdb == nil {
		return apperror.New(apperror.CodeInternal)
	}
	if err := s.rdb.Set(ctx, magicLinkKey(token), req.Email, magicLinkTTL).Err(); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.email.SendMagicLinkEmail(ctx, req.Email, token); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *authService) VerifyMagicLink(ctx context.Context, req dto.VerifyMagicLinkRequest) (*dto.AuthResponse, error) {
	if s.rdb == nil {
		return nil, apperror.New(apperror.CodeInternal)
	}

	email, err := s.rdb.Get(ctx, magicLinkKey(req.Token)).Result()
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidCredentials)
	}
	s.rdb.Del(ctx, magicLinkKey(req.Token))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpKey(phone string) string {
	return "otp:" + phone
}

func magicLinkKey(token string) string {
	return "magic_link:" + token
}
