// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or output is not a terminal, text decorations (backticks, quotes)
// are used instead.
//
//	ui.Path.Sprint("workflows/test.json")
//	ui.URL.Sprint("https://n8n.example.com")
//	ui.Success.Sprint(ui.CheckMark)
//	ui.Highlight.Sprint("Sync CRM")
//	ui.Muted.Sprint("1 secret redacted")
package ui
