// Package main implements the entry point for the uploader CLI, which
// publishes products to a WooCommerce store through a bounded worker
// pool. Subcommands cover single uploads, bulk imports from disk or
// CSV, category inspection, an HTTP submission surface, and
// connectivity checks.
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	Execute()
}
