package errors

// Error message constants for the using-order application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToDecodeFile = "failed to decode file"
	ErrMsgFailedToParseFile  = "failed to parse file"
	ErrMsgFailedToEncodeFile = "failed to encode file"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFormattingRequired = "%d files need formatting"

	// Directory processing errors
	ErrMsgFailedToCheckPath       = "failed to check path"
	ErrMsgFailedToFindSourceFiles = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess    = "%d files failed to process"
	ErrMsgProcessingCanceled      = "processing canceled"

	// Configuration errors
	ErrMsgFailedToLoadConfig      = "failed to load config"
	ErrMsgUnsupportedConfigFormat = "unsupported config format %q"
	ErrMsgUnknownConfigKeys       = "unknown config keys: %s"
	ErrMsgInvalidJobs             = "jobs must not be negative, got %d"
	ErrMsgInvalidExtension        = "extension %q must start with a dot"
	ErrMsgUnknownRule             = "unknown rule %q"
	ErrMsgDuplicateRule           = "rule %s is configured twice, as %q and %q"
	ErrMsgConflictingFlags        = "--%s cannot be used with --%s"

	// Info/warning messages
	WarnMsgNoRulesEnabled              = "Warning: no rules are enabled; files will not change. Use --enable UsingOrder or a config file."
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoSourceFilesFound          = "No source files found in directory: %s"
	InfoMsgFoundSourceFiles            = "Found %d source files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgWouldReformat               = "Would reformat: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgChangedCount                = ", %d changed"
	InfoMsgErrorCount                  = ", %d files had errors"
)
