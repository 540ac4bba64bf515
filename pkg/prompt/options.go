package prompt

// Option configures a Source.
type Option func(*Source)

// WithDriver overrides the terminal driver. Useful for tests and for
// embedding the source in a different UI.
func WithDriver(driver Driver) Option {
	return func(s *Source) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme overrides the output styles.
func WithTheme(theme Theme) Option {
	return func(s *Source) {
		s.theme = theme
	}
}

// WithQuiet suppresses section headers and descriptions; the prompts
// themselves remain.
func WithQuiet() Option {
	return func(s *Source) {
		s.quiet = true
	}
}

// WithPageSize bounds how many select options are shown at once.
func WithPageSize(size int) Option {
	return func(s *Source) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithFuzzyFilter narrows select options with fuzzy matching instead of
// survey's default substring filter.
func WithFuzzyFilter() Option {
	return func(s *Source) {
		s.useFuzzy = true
	}
}
