// Package ui provides styled console output for the chat gateway:
// a startup banner, per-request lines, and shutdown messages.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)

	methodPOST = color.New(color.BgHiMagenta, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// PrintBanner displays the startup banner.
func PrintBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════╗")
	cyan.Print("║        ")
	magenta.Print("CHATGATE")
	cyan.Print("  ·  chat gateway     ║")
	fmt.Println()
	cyan.Println("╚══════════════════════════════════════╝")
	fmt.Println()
}

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(host string, port int, model string) {
	infoBadge.Print("[GATEWAY]")
	fmt.Print(" Listening on ")
	accentText.Printf("http://%s:%d\n", host, port)

	infoBadge.Print("[GATEWAY]")
	fmt.Print(" Upstream model: ")
	successText.Println(model)

	fmt.Println()
	mutedText.Println("  ┌──────────────────────────────────────────────┐")
	mutedText.Print("  │ ")
	methodPOST.Print(" POST ")
	fmt.Print(" /chat    ")
	mutedText.Print("  Forward a chat message       ")
	mutedText.Println("│")
	mutedText.Print("  │ ")
	methodGET.Print(" GET  ")
	fmt.Print(" /health  ")
	mutedText.Print("  Health check                 ")
	mutedText.Println("│")
	mutedText.Println("  └──────────────────────────────────────────────┘")
	fmt.Println()
}

// PrintRequest logs a request with styled output.
func PrintRequest(method, path string, status int, latency time.Duration, requestID string) {
	mutedText.Printf("%s ", time.Now().Format("15:04:05"))

	printMethodBadge(method)
	fmt.Print(" ")
	fmt.Printf("%-12s ", path)

	printStatusBadge(status)
	fmt.Print(" ")

	printLatency(latency)

	if requestID != "" {
		mutedText.Printf("  id:%s", requestID)
	}

	fmt.Println()
}

// printMethodBadge prints the HTTP method with appropriate color.
func printMethodBadge(method string) {
	switch method {
	case "POST":
		methodPOST.Printf(" %s ", method)
	case "GET":
		methodGET.Printf(" %s ", method)
	default:
		mutedText.Printf(" %s ", method)
	}
}

// printStatusBadge prints the status code with appropriate color.
func printStatusBadge(status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Printf(" %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Printf(" %d ", status)
	default:
		errorBadge.Printf(" %d ", status)
	}
}

// printLatency prints latency with a color gradient.
// Green: < 100ms, Yellow: < 500ms, Red: >= 500ms
func printLatency(latency time.Duration) {
	ms := latency.Milliseconds()
	latencyStr := fmt.Sprintf("%4dms", ms)

	switch {
	case ms < 100:
		successText.Print(latencyStr)
	case ms < 500:
		warningText.Print(latencyStr)
	default:
		errorText.Print(latencyStr)
	}
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	fmt.Println()
	warningBadge.Print("[SHUTDOWN]")
	warningText.Println(" Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	successBadge.Print(" OK ")
	fmt.Print(" ")
	successText.Println("Server stopped. Goodbye!")
}
