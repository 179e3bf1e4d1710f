package main

import "github.com/danilloubr/workplace-tasks-challenge/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustBootstrapAdmin()

	app.MustListenAndServeHTTP()
}
