package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the donor store.
	DatabaseBackend string

	// Frequency is the categorical giving frequency of a donor.
	Frequency string

	// RejectReason is the row-level reason a raw row was not imported.
	RejectReason string

	// TrendInterval is the bucket size used for trend series.
	TrendInterval string

	// SourceKind selects the document source used by sync.
	SourceKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Donation frequency labels.
const (
	OneTime    Frequency = "one-time"
	Occasional Frequency = "occasional"
	Frequent   Frequency = "frequent"
)

// Frequency thresholds on lifetime donation count.
const (
	OccasionalMinCount = 2
	FrequentMinCount   = 4
)

// Row-level rejection reasons. The empty reason means the row was accepted.
const (
	Accepted      RejectReason = ""
	EmptyRow      RejectReason = "EmptyRow"
	MissingName   RejectReason = "MissingName"
	InvalidAmount RejectReason = "InvalidAmount"
	InvalidDate   RejectReason = "InvalidDate"
	MalformedRow  RejectReason = "MalformedRow"
)

// Trend intervals.
const (
	MonthlyTrend TrendInterval = "month" // default
	YearlyTrend  TrendInterval = "year"
)

// Document sources for sync.
const (
	DirSource  SourceKind = "dir" // default
	S3Source   SourceKind = "s3"
	NoneSource SourceKind = "none"
)

// DonorDataCategory is the document-center category holding donor files.
const DonorDataCategory = "Donor Data"

// DateLayout is the calendar date layout used for export and display.
const DateLayout = "2006-01-02"

// AllFrequencies lists the frequency labels in display order.
var AllFrequencies = []Frequency{OneTime, Occasional, Frequent}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTrendIntervals lists all valid trend intervals.
var ValidTrendIntervals = map[TrendInterval]struct{}{
	MonthlyTrend: {},
	YearlyTrend:  {},
}

// ValidSourceKinds lists all valid document sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	DirSource:  {},
	S3Source:   {},
	NoneSource: {},
}
