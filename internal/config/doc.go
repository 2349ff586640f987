// Package config loads the wtd configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wtd/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Values are validated after merging; an out-of-range value is an error
// rather than silently replaced.
//
// # TOML Format
//
//	api_base_url = "http://localhost:8080/api/v1/activities"
//	user_id = 1                      # number or string
//	latitude = 37.5547
//	longitude = 126.9707
//	log_level = "info"               # debug | info | warn | error
//	log_file = "~/.local/state/wtd/wtd.log"   # "" disables logging
//	request_timeout_sec = 0          # 0 = no client timeout
//
//	[storage]
//	driver = "memory"                # memory | file | redis
//	dir = "~/.local/state/wtd/session"
//	redis_url = "redis://127.0.0.1:6379/0"
//	session_id = ""                  # empty = new session per run
//	session_ttl_min = 720
//
// Pin session_id with the file or redis driver to carry the filter state
// across runs.
package config
