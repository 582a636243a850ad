/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/stationcast/cmd"

// @title           stationcast API
// @version         1.0.0
// @description     Imports podcast episodes into the station library and publishes library files as the station podcast
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/stationcast
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.basic  BasicAuth
// @description                Station API key as the user name, empty password. X-API-Key works too.
func main() {
	cmd.Execute()
}
