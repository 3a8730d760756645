// Package config loads the onboard configuration file.
//
// The file lives at $XDG_CONFIG_HOME/onboard/config.yaml (or the platform's
// user config directory) and is optional: a missing file yields Default().
// Values are validated with go-playground/validator after environment
// overrides are applied. The file is never written by onboard.
//
// Example:
//
//	api_base_url: http://192.168.1.44:8080/api/v1
//	request_timeout: 10s
//	debounce: 300ms
//	min_search_chars: 2
//	cache_ttl: 90s
//	log_level: debug
//	log_file: /tmp/onboard.log
//	discovery:
//	  service: _ledmatrix._tcp
//	  domain: local.
//	  timeout: 3s
package config
