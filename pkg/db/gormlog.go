package db

import (
	"context"
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/producers-backend/pkg/logger"
)

// queryLog forwards gorm's slow query and error reports to the service logger.
type queryLog struct {
	logg *logger.Logger
}

func (q queryLog) Printf(format string, args ...any) {
	ctx := q.logg.WithField(context.Background(), "gorm", fmt.Sprintf(format, args...))
	q.logg.Warn(ctx, "db.query_report")
}

func newGormLogger(logg *logger.Logger, slow time.Duration) gormlogger.Interface {
	if logg == nil || slow <= 0 {
		return gormlogger.Discard
	}
	return gormlogger.New(queryLog{logg: logg}, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
