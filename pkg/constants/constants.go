// Package constants provides shared constants used throughout the partsync codebase.
// This includes file extensions, field layout values, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// File extension constants
const (
	// LibraryExt is the extension of KiCad legacy symbol library files
	LibraryExt = ".lib"

	// DocumentationExt is the extension of the documentation file paired with a library
	DocumentationExt = ".dcm"

	// CSVExt is the extension of tabular export files
	CSVExt = ".csv"
)

// Library file format markers
const (
	// LibraryHeader is the first line of a legacy symbol library
	LibraryHeader = "EESchema-LIBRARY Version 2.4"

	// LibraryEncoding follows the header in libraries written by KiCad 5
	LibraryEncoding = "#encoding utf-8"

	// LibraryFooter terminates a library file
	LibraryFooter = "#End Library"

	// DocumentationHeader is the first line of a documentation file
	DocumentationHeader = "EESchema-DOCLIB  Version 2.0"

	// DocumentationFooter terminates a documentation file
	DocumentationFooter = "#End Doc Library"
)

// Field layout constants
const (
	// ReferenceIndex is the position of the reference designator field
	ReferenceIndex = 0

	// ValueIndex is the position of the value field
	ValueIndex = 1

	// FootprintIndex is the position of the footprint field
	FootprintIndex = 2

	// FirstNamedField is the position of the first user-named field
	FirstNamedField = 3

	// FieldStackOffset is added to the lowest populated field Y position
	// when a new field is appended
	FieldStackOffset = -100

	// DefaultTextSize is used when a field has no parseable text size
	DefaultTextSize = 50

	// ComponentCommentLines is the number of comment lines KiCad writes
	// above every DEF block ("#", "# NAME", "#")
	ComponentCommentLines = 3
)

// Comparison record keys shared by the projector, engine and applier
const (
	// KeyName holds the unique component identifier
	KeyName = "name"

	// KeyReference holds the reference designator prefix
	KeyReference = "reference"

	// KeyValue holds the value field
	KeyValue = "value"

	// KeyFootprint holds the footprint field
	KeyFootprint = "footprint"

	// DocSuffix marks flattened documentation keys
	DocSuffix = "_doc"
)

// Sink constants
const (
	// DefaultSinkPrefix namespaces keys written to a key/value sink
	DefaultSinkPrefix = "partsync"

	// DefaultRedisAddr is used when no redis address is configured
	DefaultRedisAddr = "localhost:6379"

	// SinkTimeout bounds a single publish run
	SinkTimeout = 2 * time.Minute
)

// Path constants
const (
	// DefaultConfigName is the config file base name searched in $HOME and "."
	DefaultConfigName = ".partsync"

	// EnvPrefix is the prefix of environment variables read by viper
	EnvPrefix = "PARTSYNC"
)
