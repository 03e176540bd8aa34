package pdfdoc

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser downloads a compatible Chromium binary if one is not
// already cached and returns the path to the executable. The binary is
// stored in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
func resolveBrowser() (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("pdfdoc: downloading browser: %w", err)
	}
	return path, nil
}

// browserPath returns the executable to launch, downloading one when the
// configuration asks for it and no explicit path is set. An empty result
// lets the driver search standard locations.
func (c browserConfig) browserPath() (string, error) {
	if c.chromePath != "" || !c.autoDownload {
		return c.chromePath, nil
	}
	return resolveBrowser()
}
