// FilePath: cmd/main.go
package main

import (
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	"github.com/shredderfleet/fleetcommand/internal/config"
	"github.com/shredderfleet/fleetcommand/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	ClearConsole()
	DrawLogo()
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting Fleet Command v%s", nuts.GetVersion())

	cfg, err := config.Load()
	if err != nil {
		nuts.L.Fatalf("[Main] Failed to load configuration: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"    ________          __     ______                                          __",
		"   / ____/ /__  ___  / /_   / ____/___  ____ ___  ____ ___  ____ _____  ____/ /",
		"  / /_  / / _ \\/ _ \\/ __/  / /   / __ \\/ __ `__ \\/ __ `__ \\/ __ `/ __ \\/ __  / ",
		" / __/ / /  __/  __/ /_   / /___/ /_/ / / / / / / / / / / / /_/ / / / / /_/ /  ",
		"/_/   /_/\\___/\\___/\\__/   \\____/\\____/_/ /_/ /_/_/ /_/ /_/\\__,_/_/ /_/\\__,_/   ",
		"................................................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
