package config

import "os"

const defaultPort = "8080"

// Addr is the listen address built from APP_PORT.
func Addr() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		port = defaultPort
	}
	return ":" + port
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0" && development != ""
}
