package tracker

import "runtime"

// Platform names the current operating system in the same terms the
// config and docs use.
func Platform() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "linux":
		return "linux"
	case "darwin":
		return "macos"
	default:
		return "unknown"
	}
}

// ActiveWindow reports the currently focused application and window
// title. Window-focus probing is not implemented on any platform yet,
// so it always reports no focus; the sampling loop treats that as
// "nothing to record".
func ActiveWindow() (app, title string, ok bool) {
	return "", "", false
}
