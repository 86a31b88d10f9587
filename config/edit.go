package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/slices"
)

// ErrUnknownKey is returned for keys that are not registered.
var ErrUnknownKey = errors.New("unknown key")

// sectionTitles lists the sections in display order: platform access first,
// then the resolution pipeline, then the terminal.
var sectionTitles = orderedmap.New[string, string](orderedmap.WithInitialData(
	orderedmap.Pair[string, string]{Key: "douyin", Value: "Douyin"},
	orderedmap.Pair[string, string]{Key: "identity", Value: "Share links"},
	orderedmap.Pair[string, string]{Key: "signer", Value: "Request signing"},
	orderedmap.Pair[string, string]{Key: "network", Value: "Upstream transport"},
	orderedmap.Pair[string, string]{Key: "render", Value: "Browser rendering"},
	orderedmap.Pair[string, string]{Key: "quality", Value: "Stream selection"},
	orderedmap.Pair[string, string]{Key: "probe", Value: "Stream probing"},
	orderedmap.Pair[string, string]{Key: "player", Value: "Playback"},
	orderedmap.Pair[string, string]{Key: "cli", Value: "Terminal"},
	orderedmap.Pair[string, string]{Key: "icons", Value: "Icons"},
	orderedmap.Pair[string, string]{Key: "logs", Value: "Logs"},
))

// Section is a group of fields sharing a key prefix.
type Section struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Sections groups fields by section in display order, sorting the fields of a
// section by key. Sections without fields are left out.
func Sections(fields []Field) []Section {
	bySection := lo.GroupBy(fields, func(f Field) string {
		return f.Section()
	})

	sortByKey := func(group []Field) {
		slices.SortFunc(group, func(a, b Field) int {
			return strings.Compare(a.Key, b.Key)
		})
	}

	var sections []Section
	for pair := sectionTitles.Oldest(); pair != nil; pair = pair.Next() {
		group, ok := bySection[pair.Key]
		if !ok {
			continue
		}
		delete(bySection, pair.Key)

		sortByKey(group)
		sections = append(sections, Section{Name: pair.Key, Title: pair.Value, Fields: group})
	}

	// untitled sections go last, named after their prefix
	rest := lo.Keys(bySection)
	slices.Sort(rest)
	for _, name := range rest {
		group := bySection[name]
		sortByKey(group)
		sections = append(sections, Section{Name: name, Title: name, Fields: group})
	}

	return sections
}

// Select returns the fields named by names, which may be keys or section names.
// No names selects every field.
func Select(names ...string) ([]Field, error) {
	if len(names) == 0 {
		return lo.Values(Default), nil
	}

	var fields []Field
	for _, name := range names {
		if field, ok := Default[name]; ok {
			fields = append(fields, field)
			continue
		}

		section := lo.Filter(lo.Values(Default), func(f Field, _ int) bool {
			return f.Section() == name
		})
		if len(section) == 0 {
			return nil, unknownKey(name)
		}
		fields = append(fields, section...)
	}

	return lo.UniqBy(fields, func(f Field) string { return f.Key }), nil
}

// Lookup returns the field registered under key.
func Lookup(key string) (Field, error) {
	field, ok := Default[key]
	if !ok {
		return Field{}, unknownKey(key)
	}
	return field, nil
}

// Suggest returns the registered key closest to key.
func Suggest(key string) string {
	return lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		da, db := levenshtein.Distance(key, a), levenshtein.Distance(key, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

func unknownKey(key string) error {
	return fmt.Errorf("%w %s, did you mean %s?", ErrUnknownKey, key, Suggest(key))
}

// Parse converts raw command-line values to the type of the key's default.
func Parse(key string, raw []string) (any, error) {
	field, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", key)
	}

	switch field.Value.(type) {
	case []string:
		return raw, nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", key, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", key, raw[0])
		}
		return b, nil
	default:
		if len(field.Choices) > 0 && !lo.Contains(field.Choices, raw[0]) {
			return nil, fmt.Errorf("%s expects one of %s, got %q", key, strings.Join(field.Choices, ", "), raw[0])
		}
		return raw[0], nil
	}
}

// Set parses raw for key, applies it and persists the config file.
func Set(key string, raw []string) (any, error) {
	value, err := Parse(key, raw)
	if err != nil {
		return nil, err
	}

	viper.Set(key, value)
	return value, Persist()
}

// Reset restores keys to their defaults and persists the config file.
// No keys resets every field.
func Reset(keys ...string) error {
	if len(keys) == 0 {
		keys = lo.Keys(Default)
	}

	for _, key := range keys {
		field, err := Lookup(key)
		if err != nil {
			return err
		}
		viper.Set(key, field.Value)
	}

	return Persist()
}

// Persist writes the in-memory config, creating the file when there is none.
func Persist() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

// File returns the path of the config file.
func File() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}
