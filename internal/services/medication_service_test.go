package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMedicationService(t *testing.T) (*MedicationService, uint, uint) {
	t.Helper()

	repos := openTestRepositories(t)
	owner := createServiceTestUser(t, repos, "owner@example.com", "owner-password")
	stranger := createServiceTestUser(t, repos, "stranger@example.com", "stranger-password")
	service := NewMedicationService(repos, time.UTC)
	service.now = fixedClock(time.Date(2026, time.October, 15, 23, 30, 0, 0, time.UTC))
	return service, owner.ID, stranger.ID
}

func TestMedicationCreateDefaultsAndRoundTrip(t *testing.T) {
	service, ownerID, _ := newTestMedicationService(t)

	created, err := service.Create(ownerID, MedicationInput{
		Name:      ptr(" Lamotrigine "),
		DosageMg:  ptr(100.0),
		Frequency: ptr(2),
		FirstDose: ptr("08:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lamotrigine", created.Name)
	assert.Equal(t, "2026-10-15", FormatCalendarDate(created.StartDate))
	assert.Equal(t, "08:30", FormatFirstDose(created.FirstDose))
	assert.False(t, created.IsStopped)

	page, err := service.List(ownerID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	stored := page.Items[0]
	assert.Equal(t, created.ID, stored.ID)
	assert.Equal(t, 100.0, stored.DosageMg)
	assert.Equal(t, 2, stored.Frequency)
	assert.Equal(t, "08:30", FormatFirstDose(stored.FirstDose))
	assert.Equal(t, "2026-10-15", FormatCalendarDate(stored.StartDate))
	assert.Nil(t, stored.EndDate)
}

func TestMedicationCalendarDateFollowsLocation(t *testing.T) {
	service, ownerID, _ := newTestMedicationService(t)
	service.location = time.FixedZone("UTC+3", 3*60*60)

	created, err := service.Create(ownerID, MedicationInput{Name: ptr("Keppra"), DosageMg: ptr(500.0), Frequency: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", FormatCalendarDate(created.StartDate))
}

func TestMedicationValidation(t *testing.T) {
	service, ownerID, _ := newTestMedicationService(t)

	tests := []struct {
		name    string
		input   MedicationInput
		message string
	}{
		{name: "missing fields", input: MedicationInput{Name: ptr("  ")}, message: "Missing name, dosage_mg, frequency"},
		{name: "negative dose", input: MedicationInput{Name: ptr("A"), DosageMg: ptr(-1.0), Frequency: ptr(1)}, message: "Invalid dosage_mg"},
		{name: "frequency too high", input: MedicationInput{Name: ptr("A"), DosageMg: ptr(1.0), Frequency: ptr(6)}, message: "Invalid frequency"},
		{name: "bad first dose", input: MedicationInput{Name: ptr("A"), DosageMg: ptr(1.0), Frequency: ptr(1), FirstDose: ptr("8am")}, message: "Invalid time format, please use HH:MM"},
		{name: "bad start date", input: MedicationInput{Name: ptr("A"), DosageMg: ptr(1.0), Frequency: ptr(1), StartDate: ptr("15/10/2026")}, message: "Invalid date format, please use YYYY-MM-DD"},
		{
			name:    "end before start",
			input:   MedicationInput{Name: ptr("A"), DosageMg: ptr(1.0), Frequency: ptr(1), StartDate: ptr("2026-10-10"), EndDate: ptr("2026-10-10")},
			message: "End date must be after start date",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Create(ownerID, testCase.input)
			assert.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, testCase.message)
		})
	}
}

func TestMedicationUpdateDeleteOwnership(t *testing.T) {
	service, ownerID, strangerID := newTestMedicationService(t)

	created, err := service.Create(ownerID, MedicationInput{Name: ptr("Keppra"), DosageMg: ptr(500.0), Frequency: ptr(2)})
	require.NoError(t, err)

	_, err = service.Update(strangerID, created.ID, MedicationInput{DosageMg: ptr(750.0)})
	assert.ErrorIs(t, err, ErrNotFoundOrDenied)

	updated, err := service.Update(ownerID, created.ID, MedicationInput{DosageMg: ptr(750.0)})
	require.NoError(t, err)
	assert.Equal(t, 750.0, updated.DosageMg)
	assert.Equal(t, "Keppra", updated.Name)

	assert.ErrorIs(t, service.Delete(strangerID, created.ID), ErrNotFoundOrDenied)
	require.NoError(t, service.Delete(ownerID, created.ID))
	assert.ErrorIs(t, service.Delete(ownerID, created.ID), ErrNotFoundOrDenied)
}

func TestMedicationStopTransition(t *testing.T) {
	service, ownerID, _ := newTestMedicationService(t)

	created, err := service.Create(ownerID, MedicationInput{
		Name:      ptr("Valproate"),
		DosageMg:  ptr(250.0),
		Frequency: ptr(3),
		StartDate: ptr("2026-09-01"),
	})
	require.NoError(t, err)

	_, err = service.Stop(ownerID, created.ID, StopMedicationInput{EndDate: ptr("2026-08-01")})
	assert.EqualError(t, err, "End date must be after start date")

	_, err = service.Stop(ownerID, created.ID, StopMedicationInput{EndDate: ptr("01-10-2026")})
	assert.EqualError(t, err, "Invalid date format, please use YYYY-MM-DD")

	stopped, err := service.Stop(ownerID, created.ID, StopMedicationInput{
		EndDate:       ptr("2026-10-01"),
		ReasonForStop: ptr("<i>rash</i>"),
	})
	require.NoError(t, err)
	assert.True(t, stopped.IsStopped)
	assert.Equal(t, "rash", stopped.ReasonForStop)
	require.NotNil(t, stopped.EndDate)
	assert.Equal(t, "2026-10-01", FormatCalendarDate(*stopped.EndDate))

	_, err = service.Stop(ownerID, created.ID, StopMedicationInput{})
	assert.ErrorIs(t, err, ErrMedicationAlreadyStopped)
}

func TestMedicationListPaging(t *testing.T) {
	service, ownerID, strangerID := newTestMedicationService(t)

	for _, startDate := range []string{"2026-01-01", "2026-03-01", "2026-02-01"} {
		_, err := service.Create(ownerID, MedicationInput{
			Name:      ptr("Dose from " + startDate),
			DosageMg:  ptr(10.0),
			Frequency: ptr(1),
			StartDate: ptr(startDate),
		})
		require.NoError(t, err)
	}

	page, err := service.List(ownerID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages())
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Dose from 2026-03-01", page.Items[0].Name)
	assert.Equal(t, "Dose from 2026-02-01", page.Items[1].Name)

	page, err = service.List(ownerID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Dose from 2026-01-01", page.Items[0].Name)

	page, err = service.List(ownerID, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxMedicationsPerPage, page.PerPage)

	page, err = service.List(strangerID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}
