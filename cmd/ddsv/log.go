package main

import "os"

// logLevel gates the verbosity of the batch runner's progress lines. It is
// read once from the environment at startup and affects diagnostics only.
type logLevel int

const (
	logQuiet logLevel = iota
	logInfo
	logDebug
)

// levelFromEnv reads DDSV_LOG_LEVEL ("quiet", "info", "debug"), defaulting
// to logInfo when unset or unrecognized.
func levelFromEnv() logLevel {
	switch os.Getenv("DDSV_LOG_LEVEL") {
	case "quiet":
		return logQuiet
	case "debug":
		return logDebug
	default:
		return logInfo
	}
}
