// Package config binds the master's startup configuration - the
// ROS_MASTER_URI socket and the logging setup - through viper, the way
// the teacher's cmd package wires flags and environment variables
// through to a config struct.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/rosmaster-go/rosmaster/internal/logging"
)

// Config is the fully resolved startup configuration for rosmasterd.
type Config struct {
	// MasterURI is the configured ROS_MASTER_URI, with the localhost
	// host token already resolved to 127.0.0.1. getUri echoes this
	// value back to callers.
	MasterURI string

	// ListenAddr is the host:port pair to bind, derived from MasterURI.
	ListenAddr string

	Logging logging.Config
}

// Load reads ROS_MASTER_URI and logging settings from the environment
// (and any values already bound onto v by cobra flags), applying the
// spec's defaults.
func Load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("ROS")
	v.AutomaticEnv()
	v.SetDefault("master_uri", "http://0.0.0.0:11311")
	v.SetDefault("log_level", logging.DefaultLevel)
	v.SetDefault("log_format", logging.DefaultFormat)
	v.SetDefault("log_output", logging.DefaultOutput)

	rawURI := v.GetString("master_uri")
	masterURI, listenAddr, err := resolveURI(rawURI)
	if err != nil {
		return Config{}, fmt.Errorf("ROS_MASTER_URI %q: %w", rawURI, err)
	}

	return Config{
		MasterURI:  masterURI,
		ListenAddr: listenAddr,
		Logging: logging.Config{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
			Output: v.GetString("log_output"),
		},
	}, nil
}

// resolveURI parses the ROS_MASTER_URI-style URL, resolving "localhost"
// to "127.0.0.1" and requiring an explicit port, per §6. It returns the
// normalized URI string (for getUri) and the host:port pair to listen
// on.
func resolveURI(raw string) (masterURI, listenAddr string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("must be an absolute URL with scheme and host")
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		host = "127.0.0.1"
	}
	port := u.Port()
	if port == "" {
		return "", "", fmt.Errorf("port is mandatory")
	}

	u.Host = net.JoinHostPort(host, port)
	return u.String(), u.Host, nil
}
