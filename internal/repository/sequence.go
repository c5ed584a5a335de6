package repository

import (
	"context"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository interface {
	Ensure(ctx context.Context, name string, start int64) error
	Next(ctx context.Context, name string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Ensure seeds the counter row once; an existing row keeps its value.
func (r *sequenceRepository) Ensure(ctx context.Context, name string, start int64) error {
	counter := model.SequenceCounter{Name: name, Value: start}

	return GetTx(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&counter).Error
}

// Next increments the counter row and reads it back. Callers must run it
// inside a transaction so the row lock covers the read.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.SequenceCounter{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrSequenceNotFound
	}

	var counter model.SequenceCounter
	if err := db.Where("name = ?", name).First(&counter).Error; err != nil {
		return 0, err
	}

	return counter.Value, nil
}
