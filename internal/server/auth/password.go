package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt cost used by NewPasswordHasher.
const DefaultBcryptCost = 10

// MaxSecretLength is the longest secret bcrypt accepts without truncation.
const MaxSecretLength = 72

var (
	ErrSecretTooLong   = errors.New("secret must be at most 72 bytes")
	ErrUnknownHasher   = errors.New("unknown password hasher")
	ErrMalformedHash   = errors.New("malformed argon2id hash")
	ErrArgon2idVersion = errors.New("incompatible argon2 version")
)

// PasswordHasher turns a secret into a one-way encoded hash and checks a
// secret against one. Verify never returns an error; a malformed hash simply
// does not match.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// NewPasswordHasher returns the hasher registered under name
// ("bcrypt" or "argon2id") with default parameters.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case "bcrypt":
		return NewBcryptHasher(DefaultBcryptCost), nil
	case "argon2id":
		return NewArgon2idHasher(DefaultArgon2idParams()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// BcryptHasher hashes secrets with bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	if len(secret) > MaxSecretLength {
		return "", ErrSecretTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// Argon2idParams are the cost parameters of an argon2id hash.
type Argon2idParams struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
	SaltLen     int
	KeyLen      uint32
}

func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		SaltLen:     16,
		KeyLen:      32,
	}
}

// Argon2idHasher hashes secrets with argon2id and encodes the result as
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
//
// with unpadded standard base64 for salt and key. Verification uses the
// parameters stored in the hash, not the hasher's own.
type Argon2idHasher struct {
	params Argon2idParams
}

func NewArgon2idHasher(params Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

func (h *Argon2idHasher) Hash(secret string) (string, error) {
	if len(secret) > MaxSecretLength {
		return "", ErrSecretTooLong
	}

	salt := common.GenerateRandByteArray(h.params.SaltLen)
	key := argon2.IDKey([]byte(secret), salt, h.params.Time, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLen)
	defer common.WipeByteArray(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemoryKiB, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2idHasher) Verify(secret, hash string) bool {
	params, salt, want, err := decodeArgon2idHash(hash)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(secret), salt, params.Time, params.MemoryKiB, params.Parallelism, params.KeyLen)
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(got, want) == 1
}

func decodeArgon2idHash(hash string) (Argon2idParams, []byte, []byte, error) {
	var p Argon2idParams

	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return p, nil, nil, ErrArgon2idVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Parallelism); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}
	if p.Time == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	p.SaltLen = len(salt)
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
