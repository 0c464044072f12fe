package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// Params are the argon2id cost parameters encoded into every record. A
// record remains verifiable after the defaults change; NeedsRehash flags
// records produced under weaker settings.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follows the OWASP recommendation for argon2id.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Time:        1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher performs one-way password hashing and verification.
type Hasher struct {
	params Params
}

// New creates a Hasher with the given parameters.
func New(params Params) (*Hasher, error) {
	if params.Memory < 8*1024 {
		return nil, fmt.Errorf("password: memory must be >= 8192 KiB")
	}
	if params.Time < 1 {
		return nil, fmt.Errorf("password: time cost must be >= 1")
	}
	if params.Parallelism < 1 {
		return nil, fmt.Errorf("password: parallelism must be >= 1")
	}
	if params.SaltLength < 16 {
		return nil, fmt.Errorf("password: salt length must be >= 16")
	}
	if params.KeyLength < 16 {
		return nil, fmt.Errorf("password: key length must be >= 16")
	}
	return &Hasher{params: params}, nil
}

// MustNew is New with a panic on invalid parameters, for package-level
// hashers built from DefaultParams.
func MustNew(params Params) *Hasher {
	h, err := New(params)
	if err != nil {
		panic(err)
	}
	return h
}

// Hash derives a one-way digest of password and returns a self-describing
// PHC record: algorithm, version, cost parameters, salt, and digest in one
// opaque string, so records stay verifiable across parameter upgrades.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("password: read salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify reports whether password matches the record. The comparison is
// constant-time with respect to the password's content. A malformed record
// returns ErrInvalidRecord, never a silent mismatch, so corrupt data is
// distinguishable from a wrong password in logs.
func (h *Hasher) Verify(password, record string) (bool, error) {
	parsed, err := parseRecord(record)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		uint32(len(parsed.digest)),
	)

	return subtle.ConstantTimeCompare(computed, parsed.digest) == 1, nil
}

// NeedsRehash reports whether the record was produced under weaker-than-
// current parameters. Callers re-hash opportunistically on successful login.
func (h *Hasher) NeedsRehash(record string) (bool, error) {
	parsed, err := parseRecord(record)
	if err != nil {
		return false, err
	}

	return parsed.memory < h.params.Memory ||
		parsed.time < h.params.Time ||
		parsed.parallelism < h.params.Parallelism ||
		uint32(len(parsed.digest)) != h.params.KeyLength, nil
}

type parsedRecord struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	digest      []byte
}

// parseRecord decodes the PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func parseRecord(record string) (*parsedRecord, error) {
	parts := strings.Split(record, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, ErrInvalidRecord
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidRecord, parts[1])
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, ErrInvalidRecord
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %q", ErrInvalidRecord, version)
	}

	parsed := &parsedRecord{}
	var haveM, haveT, haveP bool
	for pair := range strings.SplitSeq(parts[3], ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, ErrInvalidRecord
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return nil, ErrInvalidRecord
			}
			parsed.memory = uint32(v)
			haveM = true
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return nil, ErrInvalidRecord
			}
			parsed.time = uint32(v)
			haveT = true
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || v == 0 {
				return nil, ErrInvalidRecord
			}
			parsed.parallelism = uint8(v)
			haveP = true
		default:
			return nil, ErrInvalidRecord
		}
	}
	if !haveM || !haveT || !haveP {
		return nil, ErrInvalidRecord
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, ErrInvalidRecord
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, ErrInvalidRecord
	}

	parsed.salt = salt
	parsed.digest = digest
	return parsed, nil
}
