package signer

import (
	"io"
	"strings"
	"text/template"

	"github.com/liveurl/liveurl/constant"
	"github.com/samber/lo"
)

var scaffoldTemplate = lo.Must(template.New("signer").Funcs(template.FuncMap{
	"repeat": strings.Repeat,
	"plus":   func(a, b int) int { return a + b },
	"max":    func(n ...int) int { return lo.Max(n) },
}).Parse(constant.SignerTemplate))

// Scaffold writes a new signature script skeleton for platform.
func Scaffold(w io.Writer, platform, author string) error {
	return scaffoldTemplate.Execute(w, struct {
		Platform string
		Author   string
		SignFn   string
	}{
		Platform: platform,
		Author:   author,
		SignFn:   constant.SignFn,
	})
}
