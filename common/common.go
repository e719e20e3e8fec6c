// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package common

// Version is reported by `hashkit version`; release builds override it
// with -ldflags "-X github.com/zcash/hashkit/common.Version=...".
var Version = "v0.1.0-dev"

// Options holds the resolved command-line and config-file settings.
type Options struct {
	LogLevel    uint64 `json:"log_level,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
	Algorithm   string `json:"algorithm,omitempty"`
	Workers     int    `json:"workers,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty"`
	DBPath      string `json:"db_path,omitempty"`
}

// Validate fills in defaults for zero values.
func (o *Options) Validate() {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Algorithm == "" {
		o.Algorithm = "sha256"
	}
}
