package bot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/michalplat/panibiblia/robot"
)

// merge map merges maps and concatenates slices; values in m(erge) override values
// in t(arget).
func mergemap(m, t map[string]interface{}) map[string]interface{} {
	for k, v := range m {
		if tv, ok := t[k]; ok {
			if reflect.TypeOf(v) == reflect.TypeOf(tv) {
				switch v.(type) {
				case map[string]interface{}:
					mv := v.(map[string]interface{})
					mtv := tv.(map[string]interface{})
					t[k] = mergemap(mv, mtv)
				case []interface{}:
					sv := v.([]interface{})
					stv := tv.([]interface{})
					stv = append(stv, sv...)
					t[k] = stv
				default:
					t[k] = v
				}
			} else {
				// mis-matched types, use new value
				t[k] = v
			}
		} else {
			t[k] = v
		}
	}
	return t
}

// env is for the config file template FuncMap. It returns
// the given environment var if found.
func env(envvar string) string {
	val := os.Getenv(envvar)
	if len(val) == 0 {
		Log(robot.Debug, "Empty environment variable returned for '%s' in template expansion", envvar)
	}
	return val
}

// defval is for the config file template FuncMap. If an empty string is piped in,
// the default value is returned.
func defval(d, i string) string {
	if len(i) == 0 {
		return d
	}
	return i
}

// expand expands a text template
func expand(in []byte) (out []byte, err error) {
	tplFuncs := template.FuncMap{
		"default": defval,
		"env":     env,
	}
	var outBuff bytes.Buffer
	tpl, err := template.New("").Funcs(tplFuncs).Parse(string(in))
	if err != nil {
		return nil, err
	}
	if err := tpl.Execute(&outBuff, nil); err != nil {
		return nil, err
	}
	return outBuff.Bytes(), nil
}

// loadYAML expands and unmarshals a yaml document into a generic map.
func loadYAML(name string, raw []byte) (map[string]interface{}, error) {
	expanded, err := expand(raw)
	if err != nil {
		return nil, fmt.Errorf("expanding '%s': %w", name, err)
	}
	m := make(map[string]interface{})
	if err := yaml.Unmarshal(expanded, &m); err != nil {
		return nil, fmt.Errorf("unmarshalling '%s': %w", name, err)
	}
	return m, nil
}

// getConfigFile loads defaults (if any), then merges configPath/conf/<filename>
// over them and decodes the result into out. Required indicates whether to
// return an error when the file is missing.
func getConfigFile(configPath, filename string, required bool, defaults string, out interface{}) error {
	cfg := make(map[string]interface{})
	if len(defaults) > 0 {
		def, err := loadYAML("default "+filename, []byte(defaults))
		if err != nil {
			return err
		}
		cfg = def
	}
	loaded := false
	path := filepath.Join(configPath, "conf", filename)
	cf, err := os.ReadFile(path)
	switch {
	case err == nil:
		configured, err := loadYAML(path, cf)
		if err != nil {
			return err
		}
		if len(configured) == 0 {
			Log(robot.Warn, "Empty config hash loading %s", path)
		} else {
			Log(robot.Debug, "Loaded configured conf/%s", filename)
			cfg = mergemap(configured, cfg)
			loaded = true
		}
	case required:
		return err
	}
	if !loaded && len(defaults) == 0 {
		return nil
	}
	merged, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("re-marshalling '%s': %w", filename, err)
	}
	if err := yaml.Unmarshal(merged, out); err != nil {
		return fmt.Errorf("decoding '%s': %w", filename, err)
	}
	return nil
}
