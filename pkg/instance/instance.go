package instance

import "os"

// GetID returns the process instance identifier used in logs. DYNO and
// HOSTNAME are consulted in that order before falling back to "local".
func GetID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
