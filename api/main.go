package main

import (
	"github.com/joho/godotenv"

	hubspotbridge "github.com/bsscrm/hubspot-bridge/api/cmd/hubspot-bridge"
)

func main() {
	_ = godotenv.Load()
	hubspotbridge.Execute()
}
