package main

import (
	"flag"
	"os"

	"openvdm.io/openvdm/configs"
	"openvdm.io/openvdm/configs/configsdatabase"
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Run table migrations")
	seedFlag := flag.Bool("seed", false, "Seed core vars and required extra directories")
	levelFlag := flag.String("log-level", "", "Override LOG_LEVEL (debug shows every SQL statement)")
	flag.Parse()
	if *levelFlag != "" {
		configslog.SetLevel(*levelFlag)
	}

	cfg := configs.Load()
	configsdatabase.InitDB(cfg.Database)
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configslog.SyncLogger()
		os.Exit(1)
	}
}
