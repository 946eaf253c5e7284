package display

import (
	"fmt"
	"os"
)

// ServerInfo holds the information shown in the serve startup banner.
type ServerInfo struct {
	Version  string
	Addr     string
	Provider string
	AudioDir string
}

// ServerBanner prints the startup banner for the HTTP server.
func ServerBanner(info ServerInfo) {
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "  %s%spapertone%s %s%s%s\n", bold, brightCyan, reset, dim, info.Version, reset)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", dim, cyan, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━", reset)
	KeyValue("listening on", "http://0.0.0.0"+info.Addr)
	KeyValue("tts provider", info.Provider)
	KeyValue("audio dir", info.AudioDir)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "    %sGET  /%s           landing page\n", dim, reset)
	fmt.Fprintf(os.Stdout, "    %sGET  /voices%s     voice catalog\n", dim, reset)
	fmt.Fprintf(os.Stdout, "    %sPOST /convert%s    PDF → audiobook\n", dim, reset)
	fmt.Fprintf(os.Stdout, "    %sGET  /download/%s  fetch audiobook\n", dim, reset)
	fmt.Fprintln(os.Stdout)
}
