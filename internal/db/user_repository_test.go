package db

import (
	"testing"
	"time"

	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
)

func TestDeleteAccountAndRelatedDataRemovesOwnedRowsOnly(t *testing.T) {
	database := openTestDatabase(t, "ictus-delete-account.db")
	repos := NewRepositories(database)

	doomed := createTestUser(t, database, "doomed@ictus.local")
	survivor := createTestUser(t, database, "survivor@ictus.local")

	doomedLog := createTestLog(t, database, doomed.ID, time.Now())
	survivorLog := createTestLog(t, database, survivor.ID, time.Now())
	for _, logID := range []uint{doomedLog.ID, survivorLog.ID} {
		if err := repos.Prodromes.Create(&models.UserProdrome{LogID: logID, ProdromeID: 2, Intensity: 4}); err != nil {
			t.Fatalf("create prodrome: %v", err)
		}
		if err := repos.SeizureEpisodes.Create(&models.SeizureEpisode{LogID: logID, SeizureTypeID: 1, Frequency: 1}); err != nil {
			t.Fatalf("create episode: %v", err)
		}
	}
	if err := repos.Medications.Create(&models.Medication{UserID: doomed.ID, Name: "Keppra", DosageMg: 500, Frequency: 2, StartDate: time.Now().UTC()}); err != nil {
		t.Fatalf("create medication: %v", err)
	}

	if err := repos.Users.DeleteAccountAndRelatedData(doomed.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, found, err := repos.Users.FindByID(doomed.ID); err != nil || found {
		t.Fatalf("expected deleted user to be gone, found=%v err=%v", found, err)
	}
	assertRowCount(t, database, &models.UserLog{}, "user_id = ?", doomed.ID, 0)
	assertRowCount(t, database, &models.Medication{}, "user_id = ?", doomed.ID, 0)
	assertRowCount(t, database, &models.UserProdrome{}, "log_id = ?", doomedLog.ID, 0)
	assertRowCount(t, database, &models.SeizureEpisode{}, "log_id = ?", doomedLog.ID, 0)

	assertRowCount(t, database, &models.UserLog{}, "user_id = ?", survivor.ID, 1)
	assertRowCount(t, database, &models.UserProdrome{}, "log_id = ?", survivorLog.ID, 1)
	assertRowCount(t, database, &models.SeizureEpisode{}, "log_id = ?", survivorLog.ID, 1)
}

func TestFindByNormalizedEmail(t *testing.T) {
	database := openTestDatabase(t, "ictus-find-email.db")
	created := createTestUser(t, database, "finder@ictus.local")
	repo := NewUserRepository(database)

	user, found, err := repo.FindByNormalizedEmail("finder@ictus.local")
	if err != nil || !found {
		t.Fatalf("expected user to be found, found=%v err=%v", found, err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user id %d, got %d", created.ID, user.ID)
	}

	if _, found, err := repo.FindByNormalizedEmail("missing@ictus.local"); err != nil || found {
		t.Fatalf("expected missing email lookup to report not found, found=%v err=%v", found, err)
	}
}

func TestRepositoriesTransactionRollsBackOnError(t *testing.T) {
	database := openTestDatabase(t, "ictus-tx.db")
	repos := NewRepositories(database)
	user := createTestUser(t, database, "tx@ictus.local")

	rollback := errSentinel("stop")
	err := repos.Transaction(func(tx *Repositories) error {
		if err := tx.UserLogs.Create(&models.UserLog{UserID: user.ID, LogTime: time.Now().UTC()}); err != nil {
			return err
		}
		return rollback
	})
	if err != rollback {
		t.Fatalf("expected rollback sentinel, got %v", err)
	}
	assertRowCount(t, database, &models.UserLog{}, "user_id = ?", user.ID, 0)
}

type errSentinel string

func (err errSentinel) Error() string { return string(err) }

func assertRowCount(t *testing.T, database *gorm.DB, model any, where string, arg any, expected int64) {
	t.Helper()

	var count int64
	if err := database.Model(model).Where(where, arg).Count(&count).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	if count != expected {
		t.Fatalf("expected %d rows of %T where %s %v, got %d", expected, model, where, arg, count)
	}
}
