package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLifecycle(t *testing.T) {
	repos := openTestRepositories(t)
	owner := createServiceTestUser(t, repos, "owner@example.com", "owner-password")
	stranger := createServiceTestUser(t, repos, "stranger@example.com", "stranger-password")
	service := NewLogService(repos, time.UTC)
	service.now = fixedClock(time.Date(2026, time.October, 15, 7, 45, 12, 900, time.UTC))

	created, err := service.Create(owner.ID, LogInput{Note: ptr("woke up groggy")})
	require.NoError(t, err)
	assert.True(t, created.LogTime.Equal(time.Date(2026, time.October, 15, 7, 45, 12, 0, time.UTC)), "log_time %s", created.LogTime)
	assert.Equal(t, "woke up groggy", created.Note)

	_, err = service.Update(stranger.ID, created.ID, LogInput{Note: ptr("hijack")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := service.Update(owner.ID, created.ID, LogInput{LogTime: ptr("2026-10-15T09:00:00+02:00")})
	require.NoError(t, err)
	assert.True(t, updated.LogTime.Equal(time.Date(2026, time.October, 15, 7, 0, 0, 0, time.UTC)), "log_time %s", updated.LogTime)
	assert.Equal(t, "woke up groggy", updated.Note)

	_, err = service.Update(owner.ID, created.ID, LogInput{LogTime: ptr("yesterday")})
	assert.ErrorIs(t, err, ErrValidation)

	prodromes := NewUserProdromeService(repos)
	_, err = prodromes.Create(owner.ID, UserProdromeInput{
		LogID:              ptr(created.ID),
		ProdromeID:         ptr(testHeadacheProdromeID),
		UserProdromeUpdate: UserProdromeUpdate{Intensity: ptr(4)},
	})
	require.NoError(t, err)

	require.ErrorIs(t, service.Delete(stranger.ID, created.ID), ErrNotFoundOrDenied)
	require.NoError(t, service.Delete(owner.ID, created.ID))
	assert.ErrorIs(t, service.Delete(owner.ID, created.ID), ErrReferenceNotFound)

	views, err := service.All(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestLogCreateForUnknownUser(t *testing.T) {
	service := NewLogService(openTestRepositories(t), time.UTC)

	_, err := service.Create(42, LogInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAllLogsIncludeNestedObservations(t *testing.T) {
	repos := openTestRepositories(t)
	owner := createServiceTestUser(t, repos, "owner@example.com", "owner-password")
	other := createServiceTestUser(t, repos, "other@example.com", "other-password")
	first := createServiceTestLog(t, repos, owner.ID, time.Date(2026, time.October, 13, 21, 0, 0, 0, time.UTC))
	second := createServiceTestLog(t, repos, owner.ID, time.Date(2026, time.October, 14, 6, 0, 0, 0, time.UTC))
	createServiceTestLog(t, repos, other.ID, time.Date(2026, time.October, 14, 6, 0, 0, 0, time.UTC))

	prodrome, err := NewUserProdromeService(repos).Create(owner.ID, UserProdromeInput{
		LogID:              ptr(first.ID),
		ProdromeID:         ptr(testHeadacheProdromeID),
		UserProdromeUpdate: UserProdromeUpdate{Intensity: ptr(6), Note: ptr("dull")},
	})
	require.NoError(t, err)
	_, err = NewSeizureEpisodeService(repos).Create(owner.ID, SeizureEpisodeInput{
		LogID:                ptr(second.ID),
		SeizureTypeID:        ptr(testTonicClonicTypeID),
		SeizureEpisodeUpdate: SeizureEpisodeUpdate{DurationSec: ptr(120)},
	})
	require.NoError(t, err)

	views, err := NewLogService(repos, time.UTC).All(owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, first.ID, views[0].LogID)
	assert.False(t, views[0].HasSeizures)
	require.Len(t, views[0].Prodromes, 1)
	assert.Equal(t, ProdromeView{ID: testHeadacheProdromeID, EntryID: prodrome.ID, Name: "Headache", Intensity: 6, Note: "dull"}, views[0].Prodromes[0])

	assert.Equal(t, second.ID, views[1].LogID)
	assert.True(t, views[1].HasSeizures)
	require.Len(t, views[1].SeizureEpisodes, 1)
	assert.Equal(t, "Generalized Tonic-Clonic", views[1].SeizureEpisodes[0].SeizureType)
	assert.Equal(t, "2026-10-14T06:00:00Z", views[1].LogTime)
}

func TestLogsByDateUsesConfiguredTimezone(t *testing.T) {
	repos := openTestRepositories(t)
	owner := createServiceTestUser(t, repos, "owner@example.com", "owner-password")
	location := time.FixedZone("UTC+3", 3*60*60)

	// 22:30 UTC on the 13th is already the 14th at UTC+3.
	late := createServiceTestLog(t, repos, owner.ID, time.Date(2026, time.October, 13, 22, 30, 0, 0, time.UTC))
	createServiceTestLog(t, repos, owner.ID, time.Date(2026, time.October, 13, 12, 0, 0, 0, time.UTC))
	createServiceTestLog(t, repos, owner.ID, time.Date(2026, time.October, 14, 21, 0, 0, 0, time.UTC))

	service := NewLogService(repos, location)
	views, err := service.ByDate(owner.ID, "2026-10-14")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, late.ID, views[0].LogID)
	assert.Equal(t, "2026-10-14T01:30:00+03:00", views[0].LogTime)
}

func TestLogsByDateRejectsBadInput(t *testing.T) {
	service := NewLogService(openTestRepositories(t), time.UTC)

	_, err := service.ByDate(1, "")
	assert.EqualError(t, err, "No date provided")

	for _, raw := range []string{"2026-13-01", "14.10.2026", "2026-10-14T00:00:00Z"} {
		_, err = service.ByDate(1, raw)
		assert.EqualError(t, err, "Invalid date format, expected YYYY-MM-DD", raw)
	}
}

func TestWeeklyLogsSummarizeTrailingWeekNewestFirst(t *testing.T) {
	repos := openTestRepositories(t)
	owner := createServiceTestUser(t, repos, "owner@example.com", "owner-password")
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	createServiceTestLog(t, repos, owner.ID, now.AddDate(0, 0, -9))
	older := createServiceTestLog(t, repos, owner.ID, now.AddDate(0, 0, -3))
	newer := createServiceTestLog(t, repos, owner.ID, now.Add(-2*time.Hour))

	triggers := NewUserTriggerService(repos)
	for _, input := range []UserTriggerInput{
		{LogID: ptr(newer.ID), TriggerID: ptr(testSleepQualityID), UserTriggerUpdate: UserTriggerUpdate{ValueNumeric: ptr(4.0)}},
		{LogID: ptr(newer.ID), TriggerID: ptr(testStressLevelID), UserTriggerUpdate: UserTriggerUpdate{ValueNumeric: ptr(3.0)}},
		{LogID: ptr(newer.ID), TriggerID: ptr(testCaffeineID), UserTriggerUpdate: UserTriggerUpdate{ValueBoolean: ptr(true)}},
		{LogID: ptr(older.ID), TriggerID: ptr(testSleepQualityID), UserTriggerUpdate: UserTriggerUpdate{ValueNumeric: ptr(8.0)}},
		{LogID: ptr(older.ID), TriggerID: ptr(testSleepDurationID), UserTriggerUpdate: UserTriggerUpdate{ValueNumeric: ptr(5.5)}},
	} {
		_, err := triggers.Create(owner.ID, input)
		require.NoError(t, err)
	}

	prodromes := NewUserProdromeService(repos)
	for _, intensity := range []int{2, 3} {
		_, err := prodromes.Create(owner.ID, UserProdromeInput{
			LogID:              ptr(newer.ID),
			ProdromeID:         ptr(testHeadacheProdromeID),
			UserProdromeUpdate: UserProdromeUpdate{Intensity: ptr(intensity)},
		})
		require.NoError(t, err)
	}

	auras := NewUserAuraService(repos)
	for _, isPresent := range []bool{true, false} {
		_, err := auras.Create(owner.ID, UserAuraInput{
			LogID:          ptr(newer.ID),
			AuraID:         ptr(testVisualAuraID),
			UserAuraUpdate: UserAuraUpdate{IsPresent: ptr(isPresent)},
		})
		require.NoError(t, err)
	}

	_, err := NewSeizureEpisodeService(repos).Create(owner.ID, SeizureEpisodeInput{
		LogID:         ptr(newer.ID),
		SeizureTypeID: ptr(testTonicClonicTypeID),
		SeizureEpisodeUpdate: SeizureEpisodeUpdate{
			DurationSec:                 ptr(75),
			PostictalConfusionDuration:  ptr(5.0),
			PostictalConfusionIntensity: ptr(6),
			PostictalFatigueDuration:    ptr(1.0),
			Note:                        ptr("fell in kitchen"),
		},
	})
	require.NoError(t, err)

	service := NewLogService(repos, time.UTC)
	service.now = fixedClock(now)
	views, err := service.Weekly(owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, WeeklyLogView{
		Date:      "2026-10-15",
		Triggers:  []string{"Poor Sleep", "Caffeine"},
		Prodromes: []string{"Headache"},
		Auras:     []string{"Visual Disturbances"},
		Notes:     "",
		Seizure: []WeeklySeizureView{{
			Type:              "Generalized Tonic-Clonic",
			Duration:          75,
			Frequency:         1,
			PostictalSymptoms: "6/10 confusion for 5 minutes",
			Note:              "fell in kitchen",
		}},
	}, views[0])

	assert.Equal(t, "2026-10-12", views[1].Date)
	assert.Equal(t, []string{"Lack of Sleep"}, views[1].Triggers)
	assert.Empty(t, views[1].Seizure)
}
