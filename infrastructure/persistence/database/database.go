package database

import (
	"context"
	"time"

	"github.com/hilthontt/roomly/infrastructure/config"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var dbClient *gorm.DB

func InitDb(cfg *config.Config, log *zap.Logger) error {
	db, err := gorm.Open(postgres.Open(cfg.GetPostgresConnectionString()), &gorm.Config{
		Logger:  logger.NewGormLogger(log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return errors.Wrap(err, "open postgres")
	}

	sqlDb, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "postgres handle")
	}

	sqlDb.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	sqlDb.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDb.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDb.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping postgres")
	}

	dbClient = db
	log.Info("Db connection established",
		zap.String("host", cfg.Postgres.Host),
		zap.String("database", cfg.Postgres.DbName),
	)
	return nil
}

func GetDb() *gorm.DB {
	return dbClient
}

func CloseDb() {
	if dbClient == nil {
		return
	}
	sqlDb, err := dbClient.DB()
	if err != nil {
		return
	}
	_ = sqlDb.Close()
}
