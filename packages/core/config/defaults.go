package config

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		TimeoutMs:       30000, // 30 seconds
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     BoolPtr(true),
		RequestIDs:      BoolPtr(false),
		NoColor:         BoolPtr(false),
		Verbose:         BoolPtr(false),
	}
}
