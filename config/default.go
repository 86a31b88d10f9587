// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Choices, when set, are the only accepted string values.
	Choices []string
}

// Section returns the key prefix the field is grouped under.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Section     string   `json:"section"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Choices     []string `json:"choices,omitempty"`
		Env         string   `json:"env"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Choices:     f.Choices,
		Env:         f.Env(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

func init() {
	register := func(k string, v any, desc string, choices ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Choices: choices}
	}

	register(key.DouyinCookie, "", "Cookie header sent to douyin.\nThe keyring entry set with \"liveurl cookies set\" takes precedence")
	register(key.IdentityCache, true, "Cache share-link to room URL mappings on disk")
	register(key.SignerScript, "", "Path to the signature script.\nLeave empty to use sign.lua from the scripts directory")
	register(key.SignerUpdateURL, "", "URL \"liveurl signer update\" downloads the signature script from")

	register(key.NetworkTimeout, 30, "Timeout in seconds for a single upstream request")
	register(key.NetworkFingerprint, true, "Mimic a Chrome TLS fingerprint on direct and SOCKS5 connections")
	register(key.NetworkProxy, "", "Proxy used when a command does not pass --proxy.\nhttp://, https:// and socks5:// are supported")

	register(key.RenderBackend, "rod", "Browser used by the rendered-page strategy", "rod", "chromedp")
	register(key.RenderHeadless, true, "Run the rendering browser without a window")
	register(key.RenderBrowserPath, "", "Path to a Chrome/Chromium binary.\nLeave empty to let the backend locate or download one")

	register(key.QualityDefault, "OD", "Quality used when --quality is not given.\nA tier name (OD, BD, ORIGIN, UHD, HD, SD, LD) or a digit 0-4")
	register(key.ProbeEnabled, true, "Probe the selected URL and shift one tier when it is unreachable")
	register(key.Player, "mpv", "Player used by \"resolve --open\"")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when printing help or version")
	register(key.IconsVariant, "plain", "Icons variant. nerd requires a nerd font", icon.Variants()...)
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log verbosity, from least to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"accent": style.Fg(color.Accent),
	"label":  style.Fg(color.Label),
	"value":  func(k string) any { return viper.Get(k) },
	"join":   strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			return style.Fg(color.ForBool(value))(strconv.FormatBool(value))
		case string:
			if value == "" {
				return style.Faint("(empty)")
			}
			return style.Fg(color.Value)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ label "Key:" }}     {{ accent .Key }}
{{ label "Env:" }}     {{ .Env }}
{{ label "Value:" }}   {{ hl (value .Key) }}
{{ label "Default:" }} {{ hl .Value }}{{ if .Choices }}
{{ label "Choices:" }} {{ join .Choices ", " }}{{ end }}`))
