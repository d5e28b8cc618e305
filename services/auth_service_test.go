package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rebeauty-backend/config"
	"rebeauty-backend/models"
	"rebeauty-backend/utils"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		SecretKey:          "test-secret",
		BootstrapCode:      "letmein",
		TokenExpireMinutes: 60,
	}
}

func newAuthService(t *testing.T, cfg *config.Config) *AuthService {
	return NewAuthService(openTestDB(t), cfg)
}

func TestCreateStaffBootstrapFlow(t *testing.T) {
	svc := newAuthService(t, testAuthConfig())

	// Empty store, wrong code: forbidden.
	_, err := svc.CreateStaff(CreateStaffInput{
		Email:    "owner@example.com",
		Password: "password123",
	}, "wrong-code", nil)
	assert.ErrorIs(t, err, ErrForbidden)

	// Empty store, correct code, no token: allowed.
	first, err := svc.CreateStaff(CreateStaffInput{
		Email:    "owner@example.com",
		Password: "password123",
	}, "letmein", nil)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	require.NotNil(t, first.StaffCode)
	assert.NotEmpty(t, *first.StaffCode)

	// One account exists: the bootstrap code no longer suffices.
	_, err = svc.CreateStaff(CreateStaffInput{
		Email:    "second@example.com",
		Password: "password123",
	}, "letmein", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// An authenticated caller can add accounts.
	caller := &models.Identity{ID: first.ID, Email: first.Email, Role: "staff"}
	second, err := svc.CreateStaff(CreateStaffInput{
		StaffCode: strPtr("ST-0002"),
		Name:      strPtr("Second"),
		Email:     "second@example.com",
		Password:  "password123",
	}, "", caller)
	require.NoError(t, err)
	assert.Equal(t, "ST-0002", *second.StaffCode)
}

func TestCreateStaffMisconfigured(t *testing.T) {
	cfg := testAuthConfig()
	cfg.BootstrapCode = ""
	svc := newAuthService(t, cfg)

	_, err := svc.CreateStaff(CreateStaffInput{
		Email:    "owner@example.com",
		Password: "password123",
	}, "anything", nil)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestAuthenticate(t *testing.T) {
	svc := newAuthService(t, testAuthConfig())

	staff, err := svc.CreateStaff(CreateStaffInput{
		Name:     strPtr("Owner"),
		Email:    "owner@example.com",
		Password: "password123",
	}, "letmein", nil)
	require.NoError(t, err)

	token, identity, err := svc.Authenticate("owner@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, staff.ID, identity.ID)
	assert.Equal(t, "staff", identity.Role)

	_, _, err = svc.Authenticate("owner@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate("ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The password hash never leaves the server via the identity.
	assert.NotContains(t, token, "password123")
}

func TestResolveUser(t *testing.T) {
	cfg := testAuthConfig()
	svc := newAuthService(t, cfg)

	staff, err := svc.CreateStaff(CreateStaffInput{
		Email:    "owner@example.com",
		Password: "password123",
	}, "letmein", nil)
	require.NoError(t, err)

	token, _, err := svc.Authenticate("owner@example.com", "password123")
	require.NoError(t, err)

	identity, err := svc.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, identity.ID)
	assert.Equal(t, "owner@example.com", identity.Email)

	_, err = svc.ResolveUser("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Expired tokens are rejected even with a valid signature.
	expiredCfg := *cfg
	expiredCfg.TokenExpireMinutes = -1
	expiredToken, err := utils.GenerateToken(&expiredCfg, staff)
	require.NoError(t, err)
	_, err = svc.ResolveUser(expiredToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// A token for a staff row that no longer exists is rejected too.
	require.NoError(t, svc.db.Delete(&models.Staff{}, staff.ID).Error)
	_, err = svc.ResolveUser(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveOptionalUser(t *testing.T) {
	svc := newAuthService(t, testAuthConfig())

	assert.Nil(t, svc.ResolveOptionalUser(""))
	assert.Nil(t, svc.ResolveOptionalUser("garbage"))

	_, err := svc.CreateStaff(CreateStaffInput{
		Email:    "owner@example.com",
		Password: "password123",
	}, "letmein", nil)
	require.NoError(t, err)

	token, _, err := svc.Authenticate("owner@example.com", "password123")
	require.NoError(t, err)

	identity := svc.ResolveOptionalUser(token)
	require.NotNil(t, identity)
	assert.Equal(t, "owner@example.com", identity.Email)
}

func TestListStaffsOrdered(t *testing.T) {
	svc := newAuthService(t, testAuthConfig())

	first, err := svc.CreateStaff(CreateStaffInput{
		Email:    "a@example.com",
		Password: "password123",
	}, "letmein", nil)
	require.NoError(t, err)

	caller := &models.Identity{ID: first.ID, Email: first.Email, Role: "staff"}
	_, err = svc.CreateStaff(CreateStaffInput{
		Email:    "b@example.com",
		Password: "password123",
	}, "", caller)
	require.NoError(t, err)

	staffs, err := svc.ListStaffs()
	require.NoError(t, err)
	require.Len(t, staffs, 2)
	assert.Equal(t, "a@example.com", staffs[0].Email)
	assert.Equal(t, "b@example.com", staffs[1].Email)
}

func TestCreateStaffConcurrentBootstrap(t *testing.T) {
	svc := newAuthService(t, testAuthConfig())

	emails := []string{"first@example.com", "second@example.com"}
	errs := make([]error, len(emails))

	var wg sync.WaitGroup
	for i := range emails {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateStaff(CreateStaffInput{
				Email:    emails[i],
				Password: "password123",
			}, "letmein", nil)
		}(i)
	}
	wg.Wait()

	// Exactly one caller may win the empty-table bootstrap, even though the
	// emails never collide on the unique index.
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, svc.db.Model(&models.Staff{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
