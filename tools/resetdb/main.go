// Command resetdb drops and re-migrates the friendchat schema. Development
// helper only.
package main

import (
	"fmt"
	"os"

	"friendchat/config"
	"friendchat/internal/model"
	dbPkg "friendchat/pkg/db"
)

func main() {
	cfg := config.LoadConfig()

	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database connection failed:", err)
		os.Exit(1)
	}
	defer dbPkg.CloseDB()

	tables := []interface{}{&model.Message{}, &model.Notification{}, &model.Relationship{}}

	if err := db.Migrator().DropTable(tables...); err != nil {
		fmt.Fprintln(os.Stderr, "drop tables failed:", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(tables...); err != nil {
		fmt.Fprintln(os.Stderr, "migration failed:", err)
		os.Exit(1)
	}

	fmt.Println("schema reset complete")
}
