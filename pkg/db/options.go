package db

// Compression selects the block compression an engine writes with.
type Compression uint8

const (
	NoCompression Compression = iota
	SnappyCompression
)

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case SnappyCompression:
		return "snappy"
	default:
		return "unknown"
	}
}

// Cache describes a block cache owned by the engine and sized to a byte
// budget. A nil *Cache leaves the engine with its built-in default cache.
type Cache struct {
	capacity int64
}

// NewCache returns a cache description with the given capacity in bytes.
func NewCache(capacity int64) *Cache {
	return &Cache{capacity: capacity}
}

// Capacity returns the cache budget in bytes.
func (c *Cache) Capacity() int64 {
	if c == nil {
		return 0
	}
	return c.capacity
}

// Options are the strict options an engine is opened with. Integer
// overrides left at zero select the engine's own default.
type Options struct {
	// CreateIfMissing creates the database if it does not exist yet.
	CreateIfMissing bool
	// ErrorIfExists fails the open when a database already exists.
	ErrorIfExists bool
	// ParanoidChecks makes the engine report corruption as soon as it is detected.
	ParanoidChecks bool
	// WriteBufferSize is the size of the in-memory write buffer in bytes.
	WriteBufferSize int
	// MaxOpenFiles caps the number of table files kept open.
	MaxOpenFiles int
	// BlockSize is the approximate size of an uncompressed table block in bytes.
	BlockSize int
	// BlockRestartInterval is the number of keys between restart points.
	BlockRestartInterval int
	Compression          Compression
	Cache                *Cache
}

// ReadOptions control a single read or iteration.
type ReadOptions struct {
	// VerifyChecksums verifies block checksums on every read.
	VerifyChecksums bool
	// FillCache adds the blocks read to the block cache.
	FillCache bool
}

// WriteOptions control a single write.
type WriteOptions struct {
	// Sync flushes the write to stable storage before it is acknowledged.
	Sync bool
}
