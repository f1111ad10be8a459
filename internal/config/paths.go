package config

import "runtime"

func defaultVLCPath() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files\VideoLAN\VLC\vlc.exe`
	case "darwin":
		return "/Applications/VLC.app/Contents/MacOS/VLC"
	default:
		return "vlc"
	}
}
