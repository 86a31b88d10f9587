package version

import (
	"context"
	"fmt"
	"time"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/network"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert if a more recent stable application version is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest(ctx, network.FromConfig())
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Success)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+version),
	)
}
