package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes every metric gathered from registry to path in the
// Prometheus text format, atomically, for a node exporter textfile collector.
func WriteTextfile(path string, registry *prometheus.Registry) error {
	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}
