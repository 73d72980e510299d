package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/pkg/database"
	"github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"
)

// ClassRepository persists classes together with their tutor and weekly schedule.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Search returns classes available at the filter's weekday and time.
func (r *ClassRepository) Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassSearchResult, error) {
	query, args := BuildAvailabilityQuery(filter)
	results := []models.ClassSearchResult{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("search classes: %w", err)
	}
	return results, nil
}

// Register stores the tutor, the class and its slots in one transaction.
// Nothing is persisted unless every step succeeds, including time parsing.
func (r *ClassRepository) Register(ctx context.Context, reg models.ClassRegistration) (*models.Class, error) {
	tutor := reg.Tutor
	class := &models.Class{Subject: reg.Subject, Cost: reg.Cost}

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const insertTutor = `INSERT INTO tutors (name, avatar, whatsapp, bio) VALUES (?, ?, ?, ?)`
		tutorID, err := database.InsertID(ctx, tx, insertTutor, tutor.Name, tutor.Avatar, tutor.Whatsapp, tutor.Bio)
		if err != nil {
			return fmt.Errorf("insert tutor: %w", err)
		}
		class.TutorID = tutorID

		const insertClass = `INSERT INTO classes (subject, cost, tutor_id) VALUES (?, ?, ?)`
		classID, err := database.InsertID(ctx, tx, insertClass, class.Subject, class.Cost, class.TutorID)
		if err != nil {
			return fmt.Errorf("insert class: %w", err)
		}
		class.ID = classID

		slots, err := encodeSchedule(classID, reg.Schedule)
		if err != nil {
			return err
		}
		return insertSchedules(ctx, tx, slots)
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

func encodeSchedule(classID int64, entries []models.ScheduleEntry) ([]models.ClassSchedule, error) {
	slots := make([]models.ClassSchedule, 0, len(entries))
	for i, entry := range entries {
		from, err := timeofday.Encode(entry.From)
		if err != nil {
			return nil, fmt.Errorf("schedule[%d].from: %w", i, err)
		}
		to, err := timeofday.EncodeEnd(entry.To)
		if err != nil {
			return nil, fmt.Errorf("schedule[%d].to: %w", i, err)
		}
		if from >= to {
			return nil, fmt.Errorf("schedule[%d]: from %s must be before to %s", i, from, to)
		}
		if entry.WeekDay < models.MinWeekDay || entry.WeekDay > models.MaxWeekDay {
			return nil, fmt.Errorf("schedule[%d]: week_day %d out of range", i, entry.WeekDay)
		}
		slots = append(slots, models.ClassSchedule{ClassID: classID, WeekDay: entry.WeekDay, From: from, To: to})
	}
	return slots, nil
}

type scheduleRow struct {
	ClassID int64 `db:"class_id"`
	WeekDay int   `db:"week_day"`
	From    int   `db:"from_minutes"`
	To      int   `db:"to_minutes"`
}

// insertSchedules writes all slots with one multi-row INSERT.
func insertSchedules(ctx context.Context, tx *sqlx.Tx, slots []models.ClassSchedule) error {
	if len(slots) == 0 {
		return nil
	}
	rows := make([]scheduleRow, len(slots))
	for i, slot := range slots {
		rows[i] = scheduleRow{ClassID: slot.ClassID, WeekDay: slot.WeekDay, From: slot.From.Int(), To: slot.To.Int()}
	}
	const query = `INSERT INTO class_schedules (class_id, week_day, from_minutes, to_minutes)
VALUES (:class_id, :week_day, :from_minutes, :to_minutes)`
	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("insert class schedules: %w", err)
	}
	return nil
}

// ListSchedules returns the slots of a class ordered by day and start.
func (r *ClassRepository) ListSchedules(ctx context.Context, classID int64) ([]models.ClassSchedule, error) {
	const query = `SELECT id, class_id, week_day, from_minutes, to_minutes FROM class_schedules WHERE class_id = ? ORDER BY week_day ASC, from_minutes ASC`
	var slots []models.ClassSchedule
	if err := r.db.SelectContext(ctx, &slots, r.db.Rebind(query), classID); err != nil {
		return nil, fmt.Errorf("list class schedules: %w", err)
	}
	return slots, nil
}
