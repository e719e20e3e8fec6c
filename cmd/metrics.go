// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .
package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bytesHashed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashkit_bytes_hashed_total",
	Help: "Number of input bytes absorbed by digest and HMAC computations.",
})

var digestsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "hashkit_digests_computed_total",
	Help: "Number of digests, HMAC tags and derived keys computed.",
}, []string{"algorithm"})

var verifyFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashkit_verify_failures_total",
	Help: "Number of digests that did not match the expected value.",
})

// writeMetrics writes every registered metric to path in the Prometheus
// text exposition format, for pickup by the node exporter textfile collector.
func writeMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
