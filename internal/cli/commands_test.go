package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/quantfold/intrinsic/internal/config"
)

func TestScreenCmdRequiresTickersFlag(t *testing.T) {
	cmd := newScreenCmd(config.DefaultConfig())

	flag := cmd.Flags().Lookup("tickers")
	if flag == nil {
		t.Fatal("screen command is missing the tickers flag")
	}
	if _, ok := flag.Annotations[cobra.BashCompOneRequiredFlag]; !ok {
		t.Error("tickers flag is not marked required")
	}
}

func TestConfigCmdHasShowAndSet(t *testing.T) {
	cmd := newConfigCmd(config.DefaultConfig())

	found := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = true
	}
	for _, want := range []string{"show", "set"} {
		if !found[want] {
			t.Errorf("config command is missing %q subcommand", want)
		}
	}
}
