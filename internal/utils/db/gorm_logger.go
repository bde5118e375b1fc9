package db

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

type gormHclogAdapter struct {
	logger hclog.Logger
	level  logger.LogLevel
}

// NewGormLogger faz o gorm escrever no hclog. Começa em Warn: erros e queries lentas.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormHclogAdapter{logger: log, level: logger.Warn}
}

func (g *gormHclogAdapter) LogMode(level logger.LogLevel) logger.Interface {
	return &gormHclogAdapter{logger: g.logger, level: level}
}

func (g *gormHclogAdapter) Info(_ context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Info {
		g.logger.Info(msg, data...)
	}
}

func (g *gormHclogAdapter) Warn(_ context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Warn {
		g.logger.Warn(msg, data...)
	}
}

func (g *gormHclogAdapter) Error(_ context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Error {
		g.logger.Error(msg, data...)
	}
}

func (g *gormHclogAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		sql, rows := fc()
		g.logger.Error("query falhou", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > slowQuery && g.level >= logger.Warn:
		sql, rows := fc()
		g.logger.Warn("query lenta", "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= logger.Info:
		sql, rows := fc()
		g.logger.Debug("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
