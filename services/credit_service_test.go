package services

import (
	"testing"

	"github.com/anjiri1684/tutor_marketplace/database"
	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	database.DB = db
}

func newProfile(t *testing.T, role, name string) models.Profile {
	t.Helper()
	profile := models.Profile{Role: role, FullName: name}
	require.NoError(t, CreateProfile(&profile))
	return profile
}

func balance(t *testing.T, userID uuid.UUID) (int, int) {
	t.Helper()
	credit, err := GetCredits(database.DB, userID)
	require.NoError(t, err)
	return credit.AvailableBalance, credit.ReservedBalance
}

func TestCreditsForDuration(t *testing.T) {
	tests := []struct {
		minutes  int
		expected int
	}{
		{0, 0},
		{-15, 0},
		{15, 1},
		{30, 1},
		{45, 2},
		{60, 2},
		{90, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CreditsForDuration(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestCreateProfile_InitialisesCredits(t *testing.T) {
	setupDB(t)
	profile := newProfile(t, models.RoleStudent, "Grace Hopper")

	available, reserved := balance(t, profile.ID)
	assert.Equal(t, 0, available)
	assert.Equal(t, 0, reserved)

	duplicate := models.Profile{ID: profile.ID, Role: models.RoleStudent, FullName: "Again"}
	assert.ErrorIs(t, CreateProfile(&duplicate), ErrProfileExists)
}

func TestAddCredits(t *testing.T) {
	setupDB(t)
	profile := newProfile(t, models.RoleStudent, "Grace Hopper")

	credit, err := AddCredits(profile.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, credit.AvailableBalance)

	_, err = AddCredits(profile.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidCreditAmount)

	_, err = AddCredits(uuid.New(), 5)
	assert.ErrorIs(t, err, ErrCreditsNotFound)
}

func TestReserveReleaseSettle(t *testing.T) {
	setupDB(t)
	profile := newProfile(t, models.RoleStudent, "Grace Hopper")
	_, err := AddCredits(profile.ID, 4)
	require.NoError(t, err)

	require.NoError(t, ReserveCredits(database.DB, profile.ID, 3))
	available, reserved := balance(t, profile.ID)
	assert.Equal(t, 1, available)
	assert.Equal(t, 3, reserved)

	assert.ErrorIs(t, ReserveCredits(database.DB, profile.ID, 2), ErrInsufficientCredits)

	require.NoError(t, ReleaseCredits(database.DB, profile.ID, 1))
	available, reserved = balance(t, profile.ID)
	assert.Equal(t, 2, available)
	assert.Equal(t, 2, reserved)

	assert.ErrorIs(t, ReleaseCredits(database.DB, profile.ID, 3), ErrInsufficientReserved)

	require.NoError(t, SettleCredits(database.DB, profile.ID, 2))
	available, reserved = balance(t, profile.ID)
	assert.Equal(t, 2, available)
	assert.Equal(t, 0, reserved)

	assert.ErrorIs(t, SettleCredits(database.DB, profile.ID, 1), ErrInsufficientReserved)
	assert.ErrorIs(t, ReserveCredits(database.DB, uuid.New(), 1), ErrCreditsNotFound)
	assert.ErrorIs(t, ReserveCredits(database.DB, profile.ID, -1), ErrInvalidCreditAmount)
	assert.NoError(t, ReserveCredits(database.DB, profile.ID, 0))
}
