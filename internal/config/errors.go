package config

import "errors"

var (
	errInvalidSampleInterval = errors.New(
		"the tracking sample interval must be greater than zero",
	)

	errInvalidExportFormat = errors.New(
		"the default export format must be one of: csv, json",
	)
)
