package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
	"github.com/noah-isme/tutor-marketplace-api/pkg/database"
	"github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"
)

// newSQLiteDB returns a migrated in-memory database.
func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Driver: config.DriverSQLite, Path: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator, err := database.NewMigrator(db, nil)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(context.Background()))
	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func search(t *testing.T, repo *ClassRepository, subject string, day int, at string) []models.ClassSearchResult {
	t.Helper()
	results, err := repo.Search(context.Background(), models.ClassSearchFilter{Subject: subject, WeekDay: day, Time: timeofday.MustEncode(at)})
	require.NoError(t, err)
	return results
}

func TestSQLiteRegisterCommitsAllRows(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	class, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
		models.ScheduleEntry{WeekDay: 3, From: "14:00", To: "16:00"},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, db, "tutors"))
	assert.Equal(t, 1, countRows(t, db, "classes"))
	assert.Equal(t, 2, countRows(t, db, "class_schedules"))

	slots, err := repo.ListSchedules(context.Background(), class.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, timeofday.Minutes(540), slots[0].From)
	assert.Equal(t, timeofday.Minutes(960), slots[1].To)
	assert.Equal(t, class.ID, slots[0].ClassID)
}

func TestSQLiteRegisterMalformedTimeLeavesNoRows(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "bad"},
	))
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, db, "tutors"))
	assert.Equal(t, 0, countRows(t, db, "classes"))
	assert.Equal(t, 0, countRows(t, db, "class_schedules"))
}

func TestSQLiteRegisterSecondSlotFailureLeavesNoRows(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
		models.ScheduleEntry{WeekDay: 9, From: "09:00", To: "10:00"},
	))
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, db, "tutors"))
	assert.Equal(t, 0, countRows(t, db, "classes"))
	assert.Equal(t, 0, countRows(t, db, "class_schedules"))
}

func TestSQLiteSearchReturnsClassOnceForOverlappingSlots(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "08:00", To: "12:00"},
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
		models.ScheduleEntry{WeekDay: 1, From: "09:15", To: "09:45"},
	))
	require.NoError(t, err)

	results := search(t, repo, "Física", 1, "09:30")
	require.Len(t, results, 1)
	assert.Equal(t, "Diego Fernandes", results[0].Name)
	assert.Equal(t, "5511999999999", results[0].Whatsapp)
	assert.Equal(t, 80.0, results[0].Cost)
}

func TestSQLiteSearchBoundaries(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
	))
	require.NoError(t, err)

	assert.Len(t, search(t, repo, "Física", 1, "09:30"), 1)
	assert.Len(t, search(t, repo, "Física", 1, "09:00"), 1, "lower bound is inclusive")
	assert.Empty(t, search(t, repo, "Física", 1, "10:00"), "upper bound is exclusive")
	assert.Empty(t, search(t, repo, "Física", 1, "08:59"))
	assert.Empty(t, search(t, repo, "Física", 2, "09:30"), "other weekday")
	assert.Empty(t, search(t, repo, "Química", 1, "09:30"), "other subject")
}

func TestSQLiteSlotEndingAtMidnight(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	class, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 5, From: "22:00", To: "24:00"},
	))
	require.NoError(t, err)

	assert.Len(t, search(t, repo, "Física", 5, "23:59"), 1)
	assert.Empty(t, search(t, repo, "Física", 6, "00:00"))

	slots, err := repo.ListSchedules(context.Background(), class.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, timeofday.EndOfDay, slots[0].To)
}

func TestSQLiteSlotStartingAtMidnightBoundIsRejected(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 5, From: "24:00", To: "24:00"},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, timeofday.ErrInvalidTimeFormat)
	assert.Equal(t, 0, countRows(t, db, "classes"))
}

func TestSQLiteSearchIsStableAcrossClasses(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewClassRepository(db)

	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		reg := sampleRegistration(models.ScheduleEntry{WeekDay: 5, From: "18:00", To: "20:00"})
		reg.Tutor.Name = name
		_, err := repo.Register(context.Background(), reg)
		require.NoError(t, err)
	}

	first := search(t, repo, "Física", 5, "19:00")
	second := search(t, repo, "Física", 5, "19:00")
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "Ana", first[0].Name)
	assert.Equal(t, "Carla", first[2].Name)
}

func TestSQLiteTutorsAndConnections(t *testing.T) {
	db := newSQLiteDB(t)
	classes := NewClassRepository(db)
	tutors := NewTutorRepository(db)
	connections := NewConnectionRepository(db)

	class, err := classes.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 2, From: "07:00", To: "08:00"},
	))
	require.NoError(t, err)

	tutor, err := tutors.FindByID(context.Background(), class.TutorID)
	require.NoError(t, err)
	assert.Equal(t, "Diego Fernandes", tutor.Name)

	exists, err := tutors.Exists(context.Background(), class.TutorID+100)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, connections.Create(context.Background(), &models.Connection{TutorID: class.TutorID}))
	require.NoError(t, connections.Create(context.Background(), &models.Connection{TutorID: class.TutorID}))
	total, err := connections.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
