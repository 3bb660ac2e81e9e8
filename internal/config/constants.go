package config

import "time"

// Fallbacks applied by StoreConfig.normalize when a value is unset or non-positive.
const (
	defaultStoreBackend    = "memory"
	defaultConnectAttempts = 3
	defaultConnectBackoff  = 500 * time.Millisecond
	defaultCheckInterval   = 30 * time.Second
)
