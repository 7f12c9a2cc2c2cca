// Package config loads the neotrack configuration file.
//
// The file lives at ~/.config/neotrack/config.toml and is entirely
// optional; a missing file yields working defaults (public NeoWs
// endpoint, DEMO_KEY, 15 second request timeout). Recognized keys:
//
//	api_key         = "xxxx"                          # NASA API key
//	base_url        = "https://api.nasa.gov/neo/rest/v1"
//	timeout_seconds = 15
//
// The API_KEY environment variable, when set, overrides the file's
// api_key. It is read exactly once, at load time.
package config
