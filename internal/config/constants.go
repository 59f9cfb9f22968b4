package config

// Application constants
const (
	// Application Info
	AppName    = "tabprep"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. PREP_LOGGING_LEVEL.
	EnvPrefix = "PREP"
	// ConfigFileEnv names an explicit YAML configuration file.
	ConfigFileEnv = "PREP_CONFIG_FILE"

	// Operations
	OpCleaning   = "cleaning"
	OpFill       = "fill"
	OpScaling    = "scaling"
	OpDuplicates = "duplicates"
	OpOutliers   = "outliers"

	// Fill methods
	FillMean   = "mean"
	FillMedian = "median"
	FillMode   = "mode"

	// Scaling methods
	ScaleNormalization   = "normalization"
	ScaleStandardization = "standardization"

	// Outlier methods
	OutlierZScore = "zscore"
	OutlierIQR    = "iqr"

	// Output suffixes; %s is the method.
	SuffixCleaned      = "_cleaned.csv"
	SuffixFilled       = "_%s_filled.csv"
	SuffixScaled       = "_%s_scaled.csv"
	SuffixDeduplicated = "_deduplicated.csv"
	SuffixOutliers     = "_outliers_%s.csv"

	// Outlier thresholds
	ZScoreThreshold = 3.0
	IQRMultiplier   = 1.5

	// Log outputs. stdout is reserved for the result envelope.
	LogOutputNone   = "none"
	LogOutputFile   = "file"
	LogOutputStderr = "stderr"

	// Log Settings
	DefaultLogLevel    = "info"
	DefaultLogFileName = "preprocess.log"

	// Exit codes
	ExitSuccess = 0
	ExitFailure = 1

	// Error Messages
	ErrMsgInvalidArguments = "Invalid arguments. Expected: <file_path> <preprocessing_type> [method]"
	ErrMsgInvalidOperation = "Invalid preprocessing type"
	ErrMsgMethodRequired   = "Method is required for %s preprocessing"
)

// configFileLocations are searched in order when ConfigFileEnv is unset.
var configFileLocations = []string{
	"preprocess.yaml",
	"configs/preprocess.yaml",
}
