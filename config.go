package hiveserver2

import (
	"fmt"
	"time"

	toml "github.com/BurntSushi/toml"
)

const defaultConnTimeoutSeconds = 120

// QueryServer describes one target query service. ServerName selects the
// service variant ("beeswax" for HiveServer2, "impala" for Impala).
type QueryServer struct {
	Host               string `toml:"server_host"`
	Port               int    `toml:"server_port"`
	ServerName         string `toml:"server_name"`
	ConnTimeoutSeconds int    `toml:"conn_timeout"`
}

// ConnTimeout returns the connection timeout to hand to the transport
// dialer.
func (q *QueryServer) ConnTimeout() time.Duration {
	return time.Duration(q.ConnTimeoutSeconds) * time.Second
}

// LoadQueryServers reads query server definitions from a TOML file keyed by
// server name:
//
//	[beeswax]
//	server_host = "localhost"
//	server_port = 10000
//	conn_timeout = 120
func LoadQueryServers(path string) (map[string]*QueryServer, error) {
	servers := make(map[string]*QueryServer)
	if _, err := toml.DecodeFile(path, &servers); err != nil {
		return nil, fmt.Errorf("parsing query server config failed: %w", err)
	}
	for name, server := range servers {
		if server.ServerName == "" {
			server.ServerName = name
		}
		if server.ConnTimeoutSeconds == 0 {
			server.ConnTimeoutSeconds = defaultConnTimeoutSeconds
		}
	}
	return servers, nil
}
