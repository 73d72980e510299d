package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"
)

func newClassRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleRegistration(schedule ...models.ScheduleEntry) models.ClassRegistration {
	return models.ClassRegistration{
		Tutor: models.Tutor{
			Name:     "Diego Fernandes",
			Avatar:   "https://example.com/diego.png",
			Whatsapp: "5511999999999",
			Bio:      "Physics enthusiast",
		},
		Subject:  "Física",
		Cost:     80,
		Schedule: schedule,
	}
}

func TestClassRepositorySearch(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows([]string{"id", "subject", "cost", "tutor_id", "name", "avatar", "whatsapp", "bio"}).
		AddRow(10, "Física", 80.0, 1, "Diego", "https://example.com/d.png", "5511", "bio")
	mock.ExpectQuery(regexp.QuoteMeta("FROM classes c")).
		WithArgs("Física", 1, 570, 570).
		WillReturnRows(rows)

	results, err := repo.Search(context.Background(), models.ClassSearchFilter{Subject: "Física", WeekDay: 1, Time: timeofday.MustEncode("09:30")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(10), results[0].ID)
	assert.Equal(t, "Diego", results[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositorySearchEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM classes c")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject", "cost", "tutor_id", "name", "avatar", "whatsapp", "bio"}))

	results, err := repo.Search(context.Background(), models.ClassSearchFilter{Subject: "Artes", WeekDay: 3, Time: 600})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestClassRepositoryRegister(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutors (name, avatar, whatsapp, bio) VALUES (?, ?, ?, ?) RETURNING id")).
		WithArgs("Diego Fernandes", "https://example.com/diego.png", "5511999999999", "Physics enthusiast").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO classes (subject, cost, tutor_id) VALUES (?, ?, ?) RETURNING id")).
		WithArgs("Física", 80.0, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_schedules (class_id, week_day, from_minutes, to_minutes)")).
		WithArgs(int64(10), 1, 540, 600, int64(10), 3, 840, 960).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	class, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
		models.ScheduleEntry{WeekDay: 3, From: "14:00", To: "16:00"},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(10), class.ID)
	assert.Equal(t, int64(1), class.TutorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryRegisterRollsBackOnMalformedTime(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutors")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO classes")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "bad"},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, timeofday.ErrInvalidTimeFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryRegisterRollsBackOnInvertedRange(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutors")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO classes")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "10:00", To: "10:00"},
	))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryRegisterRollsBackOnScheduleInsertFailure(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutors")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO classes")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_schedules")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
	))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryRegisterRollsBackOnTutorInsertFailure(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutors")).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), sampleRegistration(
		models.ScheduleEntry{WeekDay: 1, From: "09:00", To: "10:00"},
	))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
