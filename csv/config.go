package csv

import (
	"fmt"

	"github.com/vderic/csvgo/errs"
	"github.com/vderic/csvgo/internal/options"
	"github.com/vderic/csvgo/internal/pool"
)

const (
	// DefaultQuote is the quote byte used when none is configured.
	DefaultQuote = '"'

	// DefaultDelimiter is the field delimiter used when none is configured.
	DefaultDelimiter = ','

	// DefaultTerminator is the row terminator used when none is configured.
	DefaultTerminator = '\n'

	// MaxSentinelLen is the longest null-sentinel literal accepted by
	// WithNullSentinel.
	MaxSentinelLen = 19

	// DefaultMaxFields caps the number of fields in a single row.
	DefaultMaxFields = 1 << 20

	// DefaultMaxBufferSize caps streaming buffer growth at 1 GiB.
	DefaultMaxBufferSize = 1 << 30
)

// Option configures a Parser or Scanner.
type Option = options.Option[*config]

type config struct {
	quote     byte
	escape    byte
	escapeSet bool
	delim     byte
	term      byte
	sentinel  []byte
	maxFields int

	// streaming settings, used by Scanner only
	bufSize    int
	maxBufSize int
	digest     bool
	onError    func(*ParseError)
}

func defaultConfig() config {
	return config{
		quote:      DefaultQuote,
		delim:      DefaultDelimiter,
		term:       DefaultTerminator,
		maxFields:  DefaultMaxFields,
		bufSize:    pool.ScanBufferDefaultSize,
		maxBufSize: DefaultMaxBufferSize,
	}
}

// validate resolves the default escape byte and rejects byte assignments
// that would make rows ambiguous.
func (c *config) validate() error {
	if !c.escapeSet {
		c.escape = c.quote
	}
	if c.quote == c.delim {
		return fmt.Errorf("%w: quote and delimiter are both %q", errs.ErrInvalidConfig, c.quote)
	}
	if c.quote == c.term {
		return fmt.Errorf("%w: quote and terminator are both %q", errs.ErrInvalidConfig, c.quote)
	}
	if c.delim == c.term {
		return fmt.Errorf("%w: delimiter and terminator are both %q", errs.ErrInvalidConfig, c.delim)
	}
	if c.escape == c.delim {
		return fmt.Errorf("%w: escape and delimiter are both %q", errs.ErrInvalidConfig, c.escape)
	}
	if c.escape == c.term {
		return fmt.Errorf("%w: escape and terminator are both %q", errs.ErrInvalidConfig, c.escape)
	}
	if c.bufSize > c.maxBufSize {
		return fmt.Errorf("%w: buffer size %d exceeds maximum %d", errs.ErrInvalidConfig, c.bufSize, c.maxBufSize)
	}
	return nil
}

// WithQuote sets the quote byte. Defaults to '"'.
func WithQuote(b byte) Option {
	return options.New(func(c *config) error {
		if b == 0 {
			return fmt.Errorf("%w: quote byte must not be NUL", errs.ErrInvalidConfig)
		}
		c.quote = b
		return nil
	})
}

// WithEscape sets the escape byte recognized inside quoted fields. Defaults
// to the quote byte, which gives RFC 4180 style doubled quotes.
func WithEscape(b byte) Option {
	return options.New(func(c *config) error {
		if b == 0 {
			return fmt.Errorf("%w: escape byte must not be NUL", errs.ErrInvalidConfig)
		}
		c.escape = b
		c.escapeSet = true
		return nil
	})
}

// WithDelimiter sets the field delimiter byte. Defaults to ','.
func WithDelimiter(b byte) Option {
	return options.New(func(c *config) error {
		if b == 0 {
			return fmt.Errorf("%w: delimiter byte must not be NUL", errs.ErrInvalidConfig)
		}
		c.delim = b
		return nil
	})
}

// WithTerminator sets the row terminator byte. Defaults to '\n'.
func WithTerminator(b byte) Option {
	return options.New(func(c *config) error {
		if b == 0 {
			return fmt.Errorf("%w: terminator byte must not be NUL", errs.ErrInvalidConfig)
		}
		c.term = b
		return nil
	})
}

// WithNullSentinel sets the literal whose exact, byte-for-byte match marks a
// field as null. The default is the empty string, which makes empty fields
// null. The literal is limited to MaxSentinelLen bytes.
func WithNullSentinel(s string) Option {
	return options.New(func(c *config) error {
		if len(s) > MaxSentinelLen {
			return fmt.Errorf("%w: null sentinel %q exceeds %d bytes", errs.ErrInvalidConfig, s, MaxSentinelLen)
		}
		c.sentinel = []byte(s)
		return nil
	})
}

// WithMaxFields caps the number of fields in one row. A row that exceeds the
// cap fails with errs.ErrFieldCountExceeded. Defaults to DefaultMaxFields.
func WithMaxFields(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: max fields must be at least 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.maxFields = n
		return nil
	})
}

// WithBufferSize sets the initial size of the Scanner's streaming buffer.
// The buffer grows on demand up to the maximum buffer size. Defaults to
// 1 MiB.
func WithBufferSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: buffer size must be at least 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.bufSize = n
		return nil
	})
}

// WithMaxBufferSize caps streaming buffer growth. A single row larger than
// the cap fails the scan with errs.ErrBufferLimitExceeded. Defaults to
// DefaultMaxBufferSize.
func WithMaxBufferSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: max buffer size must be at least 1, got %d", errs.ErrInvalidConfig, n)
		}
		c.maxBufSize = n
		return nil
	})
}

// WithDigest enables a running xxHash64 digest over the raw bytes a Scanner
// reads from its input, available from Scanner.Digest. Off by default.
func WithDigest(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.digest = enabled
	})
}

// WithErrorHandler registers fn to be called exactly once with the failure
// snapshot before Scan returns an error. Stop requests made through
// errs.ErrStopScan are not failures and do not reach fn.
func WithErrorHandler(fn func(*ParseError)) Option {
	return options.NoError(func(c *config) {
		c.onError = fn
	})
}
