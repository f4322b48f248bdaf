package app

import (
	"flag"
	"testing"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sand", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scale", "2", "-w", "80", "-scene", "wire", "-workers", "3"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Scale != 2 || cfg.Width != 80 || cfg.Height != 200 || cfg.Sim != "sand" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	opts := cfg.Options()
	if opts["w"] != "80" || opts["scene"] != "wire" || opts["workers"] != "3" || opts["seed"] != "1" {
		t.Fatalf("options = %v", opts)
	}
	if _, ok := opts["tuning"]; ok {
		t.Fatal("empty tuning path exported")
	}
}
