package main

import (
	"log"
	"os"

	_ "github.com/dimos082/website-monitor/docs"
	"github.com/dimos082/website-monitor/internal/app"
)

var run = app.Run
var exitFunc = os.Exit

// @title           Website Monitor API
// @version         1.0
// @description     Crawls websites for broken images and serves the findings.
// @BasePath        /
// @securityDefinitions.apikey JWTAuth
// @in header
// @name Authorization
// @securityDefinitions.basic BasicAuth
func main() {
	if err := run(); err != nil {
		log.Printf("error: %v\n", err)
		exitFunc(1)
	}
}
