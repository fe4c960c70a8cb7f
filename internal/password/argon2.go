package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// ErrMalformedHash indicates a stored hash that cannot be parsed or carries
// unusable parameters. This is a data-integrity fault, distinct from an
// ordinary password mismatch, and must never be reported to a caller as
// "incorrect password".
var ErrMalformedHash = errors.New("malformed password hash")

// Config defines the Argon2id cost parameters. Parameters are fixed at
// construction time and are not user-configurable at runtime.
type Config struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig returns the build-time default parameters: 64 MiB memory,
// 3 iterations, 4 lanes, 16-byte salt, 32-byte key. These match the
// argon2-cffi defaults the existing account base was hashed with.
func DefaultConfig() Config {
	return Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 is the credential hasher. Construct it once and inject it into the
// identity service; it is safe for concurrent use.
type Argon2 struct {
	config Config
}

// NewArgon2 validates cfg and returns a ready hasher.
func NewArgon2(cfg Config) (*Argon2, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Argon2{config: cfg}, nil
}

// Hash derives an Argon2id hash of the password and encodes it in the
// self-describing PHC format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
//
// Embedding the parameters keeps old hashes verifiable after the defaults
// change. Fails only for an empty password or an exhausted entropy source.
func (a *Argon2) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	salt := make([]byte, a.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.config.Time,
		a.config.Memory,
		a.config.Parallelism,
		a.config.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.config.Memory,
		a.config.Time,
		a.config.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify checks password against a stored PHC hash. It returns
// (true, nil) on a match, (false, nil) on a mismatch, and a non-nil error
// only when the stored hash is malformed. The mismatch/error distinction
// matters: mismatch drives the lockout path, while a malformed hash means
// the stored record is corrupt.
func (a *Argon2) Verify(encodedHash, password string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		parsed.keyLength,
	)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

// NeedsRehash reports whether the parameters embedded in the stored hash
// differ from the current configuration. Callers use this to upgrade
// storage opportunistically after a successful verification instead of
// forcing a password reset.
func (a *Argon2) NeedsRehash(encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	differs := parsed.memory != a.config.Memory ||
		parsed.time != a.config.Time ||
		parsed.parallelism != a.config.Parallelism ||
		parsed.keyLength != a.config.KeyLength

	return differs, nil
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
	keyLength   uint32
}

func parsePHC(encodedHash string) (*parsedPHC, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: unexpected structure", ErrMalformedHash)
	}

	if parts[1] != algorithmID {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	if !strings.HasPrefix(parts[2], "v=") {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedHash)
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version", ErrMalformedHash)
	}

	params, err := parseParams(parts[3])
	if err != nil {
		return nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, fmt.Errorf("%w: bad digest encoding", ErrMalformedHash)
	}

	return &parsedPHC{
		memory:      params.memory,
		time:        params.time,
		parallelism: params.parallelism,
		salt:        salt,
		hash:        hash,
		keyLength:   uint32(len(hash)),
	}, nil
}

type parsedParams struct {
	memory      uint32
	time        uint32
	parallelism uint8
}

func parseParams(part string) (*parsedParams, error) {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return nil, fmt.Errorf("%w: bad parameter list", ErrMalformedHash)
	}

	var (
		params                             parsedParams
		memorySet, timeSet, parallelismSet bool
	)

	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: bad parameter entry", ErrMalformedHash)
		}

		switch kv[0] {
		case "m":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v == 0 {
				return nil, fmt.Errorf("%w: bad memory parameter", ErrMalformedHash)
			}
			params.memory = uint32(v)
			memorySet = true
		case "t":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v == 0 {
				return nil, fmt.Errorf("%w: bad time parameter", ErrMalformedHash)
			}
			params.time = uint32(v)
			timeSet = true
		case "p":
			v, err := strconv.ParseUint(kv[1], 10, 8)
			if err != nil || v == 0 {
				return nil, fmt.Errorf("%w: bad parallelism parameter", ErrMalformedHash)
			}
			params.parallelism = uint8(v)
			parallelismSet = true
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrMalformedHash, kv[0])
		}
	}

	if !memorySet || !timeSet || !parallelismSet {
		return nil, fmt.Errorf("%w: missing parameters", ErrMalformedHash)
	}

	return &params, nil
}

func validateConfig(cfg Config) error {
	if cfg.Memory < 8*1024 {
		return errors.New("argon2 memory must be >= 8192 KiB")
	}
	if cfg.Time < 1 {
		return errors.New("argon2 time cost must be >= 1")
	}
	if cfg.Parallelism < 1 {
		return errors.New("argon2 parallelism must be >= 1")
	}
	if cfg.SaltLength < 16 {
		return errors.New("argon2 salt length must be >= 16")
	}
	if cfg.KeyLength < 16 {
		return errors.New("argon2 key length must be >= 16")
	}
	return nil
}
