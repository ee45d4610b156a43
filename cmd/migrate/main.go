package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/migration"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/pkg/log"
)

func main() {
	down := flag.Bool("down", false, "desfaz todas as migrações")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.Env, cfg.App.LogLevel)

	if *down {
		if err := migration.Rollback(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Erro ao desfazer migrações")
		}
		logrus.Info("Migrações desfeitas")
		return
	}

	if err := migration.Migrate(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}
}
