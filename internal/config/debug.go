package config

import "os"

func IsDebug() bool {
	return os.Getenv("RECAP_DEBUG") == "1"
}
