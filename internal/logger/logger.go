package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	infoTag    = color.New(color.FgCyan, color.Bold)
	successTag = color.New(color.FgGreen, color.Bold)
	warnTag    = color.New(color.FgYellow, color.Bold)
	errorTag   = color.New(color.FgRed, color.Bold)
	heading    = color.New(color.FgMagenta, color.Bold)
	dim        = color.New(color.Faint)
)

// All output goes through fmt so that os.Stdout redirection (tests, pipes)
// behaves; the color package's own writer is bound at init time.

func line(c *color.Color, tag, msg string) {
	fmt.Printf("%s %s %s\n", dim.Sprint(time.Now().Format("15:04:05")), c.Sprintf("[%s]", tag), msg)
}

// Info prints an informational message under the given tag.
func Info(tag, msg string) { line(infoTag, tag, msg) }

// Success prints a success message under the given tag.
func Success(tag, msg string) { line(successTag, tag, msg) }

// Warn prints a warning message under the given tag.
func Warn(tag, msg string) { line(warnTag, tag, msg) }

// Error prints an error message under the given tag.
func Error(tag, msg string) { line(errorTag, tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println()
	fmt.Printf("  %s %s\n", heading.Sprint("fauna-warden"), dim.Sprint(version))
	fmt.Printf("  %s\n", dim.Sprint("constraint-aware wildlife relocation planner"))
	fmt.Println()
}

// Section prints a stage heading that groups the lines following it.
func Section(title string) {
	fmt.Printf("\n%s\n", heading.Sprintf(">> %s.", strings.ToUpper(title)))
}

// Stats prints one aligned key/value line, typically under a Section heading.
func Stats(key string, value interface{}) {
	fmt.Printf("   %s %v\n", dim.Sprint(fmt.Sprintf("%-14s", key)), value)
}

// Server prints the address the HTTP server is listening on.
func Server(addr string) {
	fmt.Printf("\n  %s %s\n\n", successTag.Sprint("Listening on"), "http://"+addr)
}
