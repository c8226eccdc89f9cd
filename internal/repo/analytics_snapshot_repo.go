package repo

import (
	"context"

	"github.com/go-orz/orz"
	"github.com/linyuan/tradenote/internal/models"
	"gorm.io/gorm"
)

func NewAnalyticsSnapshotRepo(db *gorm.DB) *AnalyticsSnapshotRepo {
	return &AnalyticsSnapshotRepo{
		Repository: orz.NewRepository[models.AnalyticsSnapshot, string](db),
	}
}

type AnalyticsSnapshotRepo struct {
	orz.Repository[models.AnalyticsSnapshot, string]
}

// FindRecent 获取最近的统计快照
func (r AnalyticsSnapshotRepo) FindRecent(ctx context.Context, limit int) ([]models.AnalyticsSnapshot, error) {
	var snapshots []models.AnalyticsSnapshot
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}

// FindAllOrderByRecordedAt 按记录时间升序返回全部快照
func (r AnalyticsSnapshotRepo) FindAllOrderByRecordedAt(ctx context.Context) ([]models.AnalyticsSnapshot, error) {
	var snapshots []models.AnalyticsSnapshot
	db := r.GetDB(ctx)
	err := db.Table(r.GetTableName()).
		Order("recorded_at ASC").
		Find(&snapshots).Error
	return snapshots, err
}
