// Package prompt implements the interactive answer source. It renders
// field questions as terminal prompts via survey, styles the surrounding
// output with lipgloss, and keeps asking until answers validate or the
// user interrupts.
package prompt
