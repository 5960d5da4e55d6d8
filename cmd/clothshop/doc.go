// Package main provides the clothshop admin CLI.
//
// Install:
//
//	go install github.com/Akibsaiyad14/clothsbillingandinventory/cmd/clothshop@latest
//
// Commands:
//
//	clothshop migrate          # run pending migrations
//	clothshop migrate:rollback # roll back the last batch
//	clothshop migrate:status   # show migration status
//	clothshop seed             # seed catalog and demo users
//	clothshop queue:work       # run delivery workers in the foreground
//	clothshop schedule:run     # run the low-stock scheduler standalone
//	clothshop route:list       # list API routes
//	clothshop stock:low        # print items at or below their threshold
package main
