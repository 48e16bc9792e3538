// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"errors"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"gorm.io/gorm"
)

// AggregatedMetricFacadeInterface is the store behind the aggregation query layer.
type AggregatedMetricFacadeInterface interface {
	// Save upserts one bucket keyed by account, record type and window.
	Save(ctx context.Context, record *model.AggregatedMetricRecord) error
	BatchSave(ctx context.Context, records []*model.AggregatedMetricRecord) error
	// ListOverlapping returns buckets intersecting [start, end), ordered by window start.
	ListOverlapping(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time, limit int) ([]*model.AggregatedMetricRecord, error)
	CleanupBefore(ctx context.Context, before time.Time) (int64, error)
}

type AggregatedMetricFacade struct {
	db *gorm.DB
}

func NewAggregatedMetricFacade(db *gorm.DB) AggregatedMetricFacadeInterface {
	return &AggregatedMetricFacade{db: db}
}

func (f *AggregatedMetricFacade) Save(ctx context.Context, record *model.AggregatedMetricRecord) error {
	return f.save(f.db.WithContext(ctx), record)
}

func (f *AggregatedMetricFacade) save(tx *gorm.DB, record *model.AggregatedMetricRecord) error {
	record.TimeRangeStart = record.TimeRangeStart.UTC()
	record.TimeRangeEnd = record.TimeRangeEnd.UTC()

	var existing model.AggregatedMetricRecord
	err := tx.
		Where("account_id = ? AND record_type = ? AND time_range_start = ? AND time_range_end = ?",
			record.AccountID, record.RecordType, record.TimeRangeStart, record.TimeRangeEnd).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return tx.Save(record).Error
	}
	return tx.Create(record).Error
}

func (f *AggregatedMetricFacade) BatchSave(ctx context.Context, records []*model.AggregatedMetricRecord) error {
	if len(records) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := f.save(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *AggregatedMetricFacade) ListOverlapping(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time, limit int) ([]*model.AggregatedMetricRecord, error) {
	var records []*model.AggregatedMetricRecord
	q := f.db.WithContext(ctx).
		Where("account_id = ? AND record_type = ?", accountID, recordType).
		Where("time_range_start < ? AND time_range_end > ?", end.UTC(), start.UTC()).
		Order("time_range_start ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (f *AggregatedMetricFacade) CleanupBefore(ctx context.Context, before time.Time) (int64, error) {
	result := f.db.WithContext(ctx).
		Where("time_range_end <= ?", before.UTC()).
		Delete(&model.AggregatedMetricRecord{})
	return result.RowsAffected, result.Error
}
