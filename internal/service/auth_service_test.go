package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/notifier"
)

// captureSMS records the codes handed to it so tests can replay them.
type captureSMS struct {
	codes []string
}

func (c *captureSMS) SendOTPSMS(_ context.Context, _ string, code string) error {
	c.codes = append(c.codes, code)
	return nil
}

func newAuthService(t *testing.T, db *gorm.DB, rdb *redis.Client, sms notifier.SMSSender) AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		rdb,
		sms,
		notifier.NewMockEmail(),
		"test-secret",
		time.Hour,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db, nil, notifier.NewMockSMS())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "nurse1",
		Email:    "nurse1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "nurse1", registered.User.Username)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "nurse1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db, nil, notifier.NewMockSMS())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "nurse1",
		Email:    "nurse1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Username: "nurse1",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.True(t, apperror.Is(err, apperror.CodeUsernameTaken))
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db, nil, notifier.NewMockSMS())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "nurse1",
		Email:    "nurse1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "nurse1@example.com",
		Password: "wrong-password",
	})
	assert.True(t, apperror.Is(err, apperror.CodeInvalidCredentials))
}

func TestOTPRoundTrip(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sms := &captureSMS{}
	svc := newAuthService(t, db, rdb, sms)
	ctx := context.Background()

	phone := "09120000000"
	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username:    "nurse1",
		Email:       "nurse1@example.com",
		Password:    "password123",
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RequestOTP(ctx, dto.RequestOTPRequest{PhoneNumber: phone}))
	require.Len(t, sms.codes, 1)

	resp, err := svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		PhoneNumber: phone,
		Code:        sms.codes[0],
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// a code is single use
	_, err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		PhoneNumber: phone,
		Code:        sms.codes[0],
	})
	assert.True(t, apperror.Is(err, apperror.CodeInvalidCredentials))
}

func TestOTPUnknownPhone(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newAuthService(t, db, rdb, notifier.NewMockSMS())

	err := svc.RequestOTP(context.Background(), dto.RequestOTPRequest{PhoneNumber: "09129999999"})
	assert.True(t, apperror.Is(err, apperror.CodeUserNotFound))
}

func TestUpdateProfileLicenseResetsVerification(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db, nil, notifier.NewMockSMS())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Username: "nurse1",
		Email:    "nurse1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	license := "RN-12345"
	user, err := svc.UpdateProfile(ctx, registered.User.ID, dto.UpdateProfileRequest{
		LicenseNumber: &license,
	})
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.False(t, user.Profile.LicenseVerified)

	require.NoError(t, db.Model(user.Profile).
		Where("user_id = ?", user.ID).
		Update("license_verified", true).Error)

	changed := "RN-67890"
	user, err = svc.UpdateProfile(ctx, registered.User.ID, dto.UpdateProfileRequest{
		LicenseNumber: &changed,
	})
	require.NoError(t, err)
	assert.False(t, user.Profile.LicenseVerified)
}
