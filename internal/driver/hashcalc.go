package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// TreeDigest hashes the implementation at root together with the generator
// fingerprint: H(fingerprint || for each file in lexical order: relpath,
// size, content). Hidden directories (.git, .idea, ...) are skipped.
func TreeDigest(root, fingerprint string) (Digest, error) {
	h := sha256.New()
	writeField(h, fingerprint)

	info, err := os.Stat(root)
	if err != nil {
		return Digest{}, err
	}
	if !info.IsDir() {
		if err := hashFile(h, filepath.Base(root), root); err != nil {
			return Digest{}, err
		}
		return sum(h), nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return hashFile(h, filepath.ToSlash(rel), path)
	})
	if err != nil {
		return Digest{}, fmt.Errorf("hash %s: %w", root, err)
	}
	return sum(h), nil
}

func hashFile(h io.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	writeField(h, name)
	n, err := safecast.Conv[uint64](info.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], n)
	_, _ = h.Write(size[:])
	_, err = io.Copy(h, f)
	return err
}

// writeField пишет строку с разделителем, чтобы "ab"+"c" != "a"+"bc"
func writeField(h io.Writer, s string) {
	_, _ = io.WriteString(h, s)
	_, _ = h.Write([]byte{0})
}

func sum(h interface{ Sum([]byte) []byte }) Digest {
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
