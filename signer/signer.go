// Package signer computes the anti-bot request signatures upstream APIs require.
//
// Signatures are produced by a Lua script defining a global Sign(query, user_agent)
// function, so the algorithm can be updated without rebuilding.
package signer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/source"
	"github.com/liveurl/liveurl/where"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/spf13/viper"
	lua "github.com/yuin/gopher-lua"
)

// Lua signs with a script. Each call runs in a fresh interpreter, so a Lua
// signer is safe for concurrent use.
type Lua struct {
	path string
}

// Load validates the script at path and returns a signer for it.
func Load(path string) (*Lua, error) {
	L := newState()
	defer L.Close()

	if err := run(L, path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if L.GetGlobal(constant.SignFn).Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.SignFn, filepath.Base(path))
	}

	return &Lua{path: path}, nil
}

// Path returns the script location.
func (s *Lua) Path() string {
	return s.path
}

// Sign calls the script's Sign function.
func (s *Lua) Sign(query, userAgent string) (string, error) {
	L := newState()
	defer L.Close()

	if err := run(L, s.path); err != nil {
		return "", err
	}

	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(constant.SignFn),
		NRet:    1,
		Protect: true,
	}, lua.LString(query), lua.LString(userAgent))
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	if ret.Type() != lua.LTString {
		return "", fmt.Errorf("sign: expected string, got %s", ret.Type())
	}

	return ret.String(), nil
}

func newState() *lua.LState {
	L := lua.NewState()
	libs.Preload(L)
	return L
}

// Noop returns an empty signature. Upstream may reject such requests, which the
// strategy chain treats like any other failure.
type Noop struct{}

func (Noop) Sign(string, string) (string, error) {
	return "", nil
}

// ScriptPath returns the configured script path, or the default one in the scripts directory.
func ScriptPath() string {
	if p := viper.GetString(key.SignerScript); p != "" {
		return p
	}
	return filepath.Join(where.Scripts(), constant.SignerScript)
}

// FromConfig loads the configured script, falling back to Noop when it does not exist.
func FromConfig() source.Signer {
	path := ScriptPath()

	if _, err := filesystem.API().Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debugf("no signature script at %s, requests go unsigned", path)
		return Noop{}
	}

	s, err := Load(path)
	if err != nil {
		log.Warnf("signature script unusable, requests go unsigned: %v", err)
		return Noop{}
	}

	return s
}
