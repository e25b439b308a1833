package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestServeCmdProperties(t *testing.T) {
	if serveCmd.Use != "serve" {
		t.Errorf("expected Use to be 'serve', got %q", serveCmd.Use)
	}
}

func TestServeRunEPropagatesConfigError(t *testing.T) {
	original := cfgViper.GetString("master_uri")
	cfgViper.Set("master_uri", "http://localhost")
	defer cfgViper.Set("master_uri", original)

	err := serveRunE(&cobra.Command{}, nil)
	if err == nil {
		t.Fatal("expected an error for a master_uri missing a port")
	}
}
