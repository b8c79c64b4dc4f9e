package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgforge/pgentry"
)

// healthcheckDialTimeout bounds the single probe connection. Container
// health checks run on short intervals; a hung probe must not pile up.
const healthcheckDialTimeout = 3 * time.Second

// healthcheckCmd probes the server socket once, for use as the container's
// HEALTHCHECK command. Exit status is the whole interface: 0 when the
// server accepts a TCP connection, 1 otherwise.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe the server socket once and exit 0/1",
	RunE: func(_ *cobra.Command, _ []string) error {
		port := pgentry.DefaultPort
		if raw := os.Getenv(pgentry.EnvPort); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("%s: invalid port %q", pgentry.EnvPort, raw)
			}
			port = p
		}

		addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
		conn, err := net.DialTimeout("tcp", addr, healthcheckDialTimeout)
		if err != nil {
			return fmt.Errorf("server not accepting connections on %s: %w", addr, err)
		}
		return conn.Close()
	},
}
