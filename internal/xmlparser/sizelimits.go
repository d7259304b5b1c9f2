package xmlparser

// SizeLimit is a named file-size ceiling, in megabytes. spec.md §4.1
// only requires the ceiling to be a constructor parameter defaulting
// to unbounded; these named presets mirror
// original_source/src/utils/file_utils.py's FileSizeLimits so callers
// don't have to remember raw megabyte figures.
type SizeLimit float64

const (
	SizeLimitUnbounded          SizeLimit = 0
	SizeLimitRealTime           SizeLimit = 5
	SizeLimitMemoryConstrained  SizeLimit = 25
	SizeLimitProductionSmall    SizeLimit = 10
	SizeLimitProductionMedium   SizeLimit = 50
	SizeLimitProductionLarge    SizeLimit = 100
	SizeLimitBatchProcessing    SizeLimit = 200
	SizeLimitDevelopment        SizeLimit = 500
	SizeLimitTesting            SizeLimit = 1000
)

// Bytes converts the limit to a byte count. Unbounded returns 0, which
// callers must treat as "no ceiling", not "zero bytes allowed".
func (s SizeLimit) Bytes() int64 {
	return int64(float64(s) * 1024 * 1024)
}
