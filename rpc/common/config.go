package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ServerConfig holds every configuration parameter for the storage HTTP
// server.
type ServerConfig struct {
	// Endpoint is the address the HTTP server listens on.
	Endpoint string
	// DataDir is the directory holding tom documents.
	DataDir string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// String returns a formatted representation of the configuration, used by
// the serve command's startup banner.
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)

	addSection("Storage")
	addField("Data Directory", c.DataDir)

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// ClientConfig holds every configuration parameter for the storage HTTP
// client.
type ClientConfig struct {
	Endpoint      string
	TimeoutSecond int
}

// String returns a formatted representation of the client configuration.
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}
	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", strconv.Itoa(c.TimeoutSecond)+" sec")

	return sb.String()
}
