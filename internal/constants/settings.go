package constants

// DateBasis selects which calendar a recorded entry is filed under
type DateBasis string

// ResetScope selects how much of the key-value namespace a reset clears
type ResetScope string

const (
	// DateBasisUTC files entries under the UTC date of the selected time
	DateBasisUTC DateBasis = "utc"
	// DateBasisLocal files entries under the local date of the selected time
	DateBasisLocal DateBasis = "local"

	// ResetScopeKey clears only the mood-data key
	ResetScopeKey ResetScope = "key"
	// ResetScopeAll clears every key in the namespace
	ResetScopeAll ResetScope = "all"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultDateBasis    = DateBasisUTC
	DefaultResetScope   = ResetScopeKey
	DefaultLegacyLayout = false
)
