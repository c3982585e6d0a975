// Package open launches URLs with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cinedex/cinedex/log"
)

// Start opens the input without waiting for the handler to exit.
func Start(input string) error {
	cmd, err := command(runtime.GOOS, input)
	if err != nil {
		return err
	}

	log.Infof("opening %s", input)
	return cmd.Start()
}

func command(goos, input string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	case "darwin":
		return exec.Command("open", input), nil
	case "android":
		return exec.Command("termux-open", input), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", input), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}
