package digest

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"napi/internal/services"
)

// LiteralPrefix introduces a digest passed directly on the command line
// instead of a video file path.
const LiteralPrefix = "napiprojekt:"

const (
	// napiprojektWindow is how much of the file NAPI-PROJEKT hashes: the
	// first 10 MiB.
	napiprojektWindow = 10 << 20
	// napisy24Chunk is the edge window the NAPISY24 hash covers at each end
	// of the file.
	napisy24Chunk = 64 << 10
	// napisy24MinSize is the smallest file the NAPISY24 hash is defined for.
	napisy24MinSize = 2 * napisy24Chunk

	hexDigestLen = md5.Size * 2
)

// IsLiteral reports whether the argument carries a digest directly.
func IsLiteral(arg string) bool {
	return strings.HasPrefix(arg, LiteralPrefix)
}

// ParseLiteral extracts and validates the digest from a
// "napiprojekt:<digest>" argument. The digest is returned lowercased.
func ParseLiteral(arg string) (string, error) {
	if !IsLiteral(arg) {
		return "", services.Wrap(services.ErrInvalidInput, "digest", "parse literal", fmt.Sprintf("missing %q prefix in %q", LiteralPrefix, arg), nil)
	}
	value := strings.ToLower(strings.TrimPrefix(arg, LiteralPrefix))
	if len(value) != hexDigestLen {
		return "", services.Wrap(services.ErrInvalidInput, "digest", "parse literal", fmt.Sprintf("digest must be %d hex characters, got %d", hexDigestLen, len(value)), nil)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "digest", "parse literal", fmt.Sprintf("digest %q is not hexadecimal", value), err)
	}
	return value, nil
}

// FromFile computes the NAPI-PROJEKT lookup digest: the MD5 of the first
// 10 MiB of the file (the whole file when smaller).
func FromFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "digest", "hash file", path, err)
	}
	defer file.Close()

	hasher := md5.New()
	if _, err := io.CopyN(hasher, file, napiprojektWindow); err != nil && err != io.EOF {
		return "", services.Wrap(services.ErrInvalidInput, "digest", "hash file", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Napisy24Hash computes the 64-bit lookup hash NAPISY24 expects: the file
// size plus every little-endian uint64 in the first and last 64 KiB, truncated
// to 64 bits and rendered as zero-padded hex. It also returns the file size,
// which the service wants alongside the hash. Files under 128 KiB are
// rejected; the hash is not defined for them.
func Napisy24Hash(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", path, err)
	}
	size := info.Size()
	if size < napisy24MinSize {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", fmt.Sprintf("%s: file too small (%d bytes, need %d)", path, size, napisy24MinSize), nil)
	}

	hash := uint64(size)

	sum, err := sumChunk(file)
	if err != nil {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", path, err)
	}
	hash += sum

	if _, err := file.Seek(size-napisy24Chunk, io.SeekStart); err != nil {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", path, err)
	}
	sum, err = sumChunk(file)
	if err != nil {
		return "", 0, services.Wrap(services.ErrInvalidInput, "digest", "napisy24 hash", path, err)
	}
	hash += sum

	return fmt.Sprintf("%016x", hash), size, nil
}

func sumChunk(r io.Reader) (uint64, error) {
	buf := make([]byte, napisy24Chunk)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	var sum uint64
	for i := 0; i < napisy24Chunk; i += 8 {
		sum += binary.LittleEndian.Uint64(buf[i : i+8])
	}
	return sum, nil
}
