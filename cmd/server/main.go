// The server binary runs the billing and inventory backend.
//
//	go build -o clothshop ./cmd/server && ./clothshop serve
package main

import (
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/jobs"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/routes"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/app"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/router"

	"github.com/Akibsaiyad14/clothsbillingandinventory/database/seeders"
)

func main() {
	app.New().
		Routes(func(r *router.Router) {
			routes.RegisterAPI(r, database.DB)
		}).
		Seeders(func() error {
			return seeders.RunAll(database.DB)
		}).
		AutoMigrate(
			&models.User{},
			&models.ClothItem{},
			&models.Stock{},
			&models.Bill{},
			&models.BillItem{},
		).
		Jobs(jobs.Register).
		Run()
}
