// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	"github.com/robfig/cron/v3"
)

const retentionSchedule = "@every 1h"

var retentionDeleted = metrics.NewCounterVec("retention_deleted_records",
	"Aggregated records removed by the retention job", nil)

// RetentionJob deletes aggregated records whose window ended before now minus the retention.
type RetentionJob struct {
	facade    database.AggregatedMetricFacadeInterface
	retention time.Duration
	now       func() time.Time
}

func NewRetentionJob(facade database.AggregatedMetricFacadeInterface, retention time.Duration) *RetentionJob {
	return &RetentionJob{facade: facade, retention: retention, now: time.Now}
}

func (j *RetentionJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.retention)
	deleted, err := j.facade.CleanupBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	retentionDeleted.Add(float64(deleted))
	if deleted > 0 {
		log.Infof("Retention removed %d aggregated records ending before %s", deleted, cutoff.Format(time.RFC3339))
	}
	return deleted, nil
}

// Schedule runs the job on a cron until ctx is done.
func (j *RetentionJob) Schedule(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(retentionSchedule, func() {
		if _, err := j.Run(ctx); err != nil {
			log.Errorf("retention run failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c, nil
}
