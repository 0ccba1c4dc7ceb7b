package bot

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/michalplat/panibiblia/robot"
)

func TestMergemap(t *testing.T) {
	target := map[string]interface{}{
		"LogLevel": "info",
		"Alias":    "/",
		"Help":     []interface{}{"a"},
		"Config":   map[string]interface{}{"MessageLimit": 2000, "BaseURL": "x"},
	}
	merge := map[string]interface{}{
		"LogLevel": "debug",
		"Help":     []interface{}{"b"},
		"Config":   map[string]interface{}{"BaseURL": "y"},
		"Extra":    true,
	}
	got := mergemap(merge, target)
	want := map[string]interface{}{
		"LogLevel": "debug",
		"Alias":    "/",
		"Help":     []interface{}{"a", "b"},
		"Config":   map[string]interface{}{"MessageLimit": 2000, "BaseURL": "y"},
		"Extra":    true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergemap() = %v, want %v", got, want)
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("BIBLIA_TEST_TOKEN", "s3cret")
	tests := []struct {
		in, want string
	}{
		{`APIToken: {{ env "BIBLIA_TEST_TOKEN" }}`, "APIToken: s3cret"},
		{`BaseURL: {{ env "BIBLIA_TEST_UNSET" | default "https://example.com" }}`, "BaseURL: https://example.com"},
		{`plain: text`, "plain: text"},
	}
	for _, tt := range tests {
		out, err := expand([]byte(tt.in))
		if err != nil {
			t.Errorf("expand(%q) error = %v", tt.in, err)
			continue
		}
		if string(out) != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.in, out, tt.want)
		}
	}
	if _, err := expand([]byte(`{{ nope }}`)); err == nil {
		t.Error("expand() with an unknown function didn't fail")
	}
}

func writeConf(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, "conf", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConf(t, dir, "robot.yaml", `
Protocol: Discord
AdminContact: "ks. Admin"
AdminUsers: [ "alice" ]
Alias: ";"
BotInfo:
  UserName: Biblia
  FullName: Pani Biblia
DefaultChannels: [ "general" ]
TimeZone: UTC
LogLevel: debug
ScheduledJobs:
- Name: werset
  Schedule: "0 0 7 * * *"
  Arguments: [ "Ps", "23", "1-6" ]
ProtocolConfig:
  Token: abc
`)
	cfg, err := loadConfig(dir, "")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.protocol != "discord" || cfg.alias != ';' || cfg.botinfo.UserName != "Biblia" {
		t.Errorf("loadConfig() = %+v", cfg)
	}
	if cfg.logLevel != robot.Debug || cfg.timeZone == nil || cfg.timeZone.String() != "UTC" {
		t.Errorf("logLevel = %s, timeZone = %v", cfg.logLevel, cfg.timeZone)
	}
	if !cfg.defaultAllowDirect {
		t.Error("DefaultAllowDirect from the defaults was lost")
	}
	if len(cfg.scheduledJobs) != 1 || cfg.scheduledJobs[0].Arguments[2] != "1-6" {
		t.Errorf("scheduledJobs = %+v", cfg.scheduledJobs)
	}
	var pc struct {
		Token string `yaml:"Token"`
	}
	if err := cfg.protocolConfig.Decode(&pc); err != nil || pc.Token != "abc" {
		t.Errorf("ProtocolConfig decode = %+v, %v", pc, err)
	}

	override, err := loadConfig(dir, "Terminal")
	if err != nil || override.protocol != "terminal" {
		t.Errorf("protocol override = %q, %v", override.protocol, err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.protocol != "terminal" || cfg.alias != '/' || cfg.logLevel != robot.Info {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigRejectsBadAlias(t *testing.T) {
	for _, alias := range []string{"x", "//", "ab"} {
		dir := t.TempDir()
		writeConf(t, dir, "robot.yaml", "Alias: \""+alias+"\"\n")
		if _, err := loadConfig(dir, ""); err == nil {
			t.Errorf("loadConfig() accepted alias %q", alias)
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	type pluginConfig struct {
		MessageLimit int    `yaml:"MessageLimit"`
		BaseURL      string `yaml:"BaseURL"`
	}
	dir := t.TempDir()
	writeConf(t, dir, "plugins/sample.yaml", "Config:\n  BaseURL: http://localhost\n")
	var pl pluginLoader
	defaults := "AllChannels: true\nConfig:\n  MessageLimit: 2000\n  BaseURL: https://example.com\n"
	if err := getConfigFile(dir, "plugins/sample.yaml", false, defaults, &pl); err != nil {
		t.Fatalf("getConfigFile() error = %v", err)
	}
	if !pl.AllChannels {
		t.Error("AllChannels from the defaults was lost")
	}
	v, err := decodeConfig("sample", &pluginConfig{}, &pl.Config)
	if err != nil {
		t.Fatalf("decodeConfig() error = %v", err)
	}
	pc, ok := v.(*pluginConfig)
	if !ok {
		t.Fatalf("decodeConfig() returned %T", v)
	}
	if pc.MessageLimit != 2000 || pc.BaseURL != "http://localhost" {
		t.Errorf("decoded config = %+v", pc)
	}

	r := Robot{taskName: "sample", taskConfig: v}
	var got *pluginConfig
	if ret := r.GetTaskConfig(&got); ret != robot.Ok || got != pc {
		t.Errorf("GetTaskConfig() = %s, %+v", ret, got)
	}
	var wrong *struct{ X int }
	if ret := r.GetTaskConfig(&wrong); ret != robot.InvalidCfgStruct {
		t.Errorf("GetTaskConfig(wrong type) = %s", ret)
	}
	if ret := r.GetTaskConfig(got); ret != robot.InvalidDblPtr {
		t.Errorf("GetTaskConfig(single pointer) = %s", ret)
	}
	if ret := (Robot{taskName: "none"}).GetTaskConfig(&got); ret != robot.NoConfigFound {
		t.Errorf("GetTaskConfig(no config) = %s", ret)
	}
}
