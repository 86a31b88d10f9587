// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// SignFn is the global function a signature script must define.
const SignFn = "Sign"

// SignerScript is the default file name of the signature script inside where.Scripts().
const SignerScript = "sign.lua"

// SignerTemplate is a Go text/template for scaffolding new signature scripts.
const SignerTemplate = `{{ $divider := repeat "-" (plus (max (len .Platform) (len .Author) 3) 12) }}{{ $divider }}
-- @platform {{ .Platform }}
-- @author   {{ .Author }}
-- @license  MIT
{{ $divider }}


----- IMPORTS -----
--- END IMPORTS ---



----- MAIN -----

--- Computes the request signature appended to signed API calls.
-- @param query string URL-encoded query string, without the leading "?"
-- @param user_agent string User-Agent header the request will carry
-- @return string Signature value
function {{ .SignFn }}(query, user_agent)
	return ""
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
