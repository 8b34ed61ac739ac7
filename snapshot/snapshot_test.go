package snapshot

import (
	"bytes"
	"math/big"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hugeint/block"
	"github.com/arloliu/hugeint/codec"
	"github.com/arloliu/hugeint/format"
)

func allCompressionTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for _, compression := range allCompressionTypes() {
		t.Run(compression.String(), func(t *testing.T) {
			for _, width := range []int{1, 2, 4, 7} {
				n := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 1024))
				src, err := block.NewMemoryStore(width)
				require.NoError(t, err)
				require.NoError(t, codec.Encode(n, src))

				var buf bytes.Buffer
				require.NoError(t, Export(src, &buf, compression))

				restored, err := Import(&buf)
				require.NoError(t, err)
				require.Equal(t, width, restored.Width())

				got, err := codec.Decode(restored)
				require.NoError(t, err)
				require.Zero(t, n.Cmp(got), "width %d", width)
			}
		})
	}
}

func TestExportImport_ZeroLengthStore(t *testing.T) {
	src, err := block.NewMemoryStore(3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionNone))

	restored, err := Import(&buf)
	require.NoError(t, err)

	length, err := restored.Length()
	require.NoError(t, err)
	require.Equal(t, int64(0), length)
}

func TestExport_InvalidCompression(t *testing.T) {
	src, err := block.NewMemoryStore(1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, Export(src, &buf, format.CompressionType(0x7f)))
	require.Zero(t, buf.Len())
}

func TestImport_BadMagic(t *testing.T) {
	_, err := Import(bytes.NewReader([]byte("not a snapshot at all....")))
	require.ErrorIs(t, err, ErrBadMagic)

	_, err = Import(bytes.NewReader([]byte{'H', 'U'}))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestImport_UnsupportedVersion(t *testing.T) {
	src, err := block.NewMemoryStore(1)
	require.NoError(t, err)
	require.NoError(t, codec.Encode(big.NewInt(42), src))

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionNone))

	raw := buf.Bytes()
	raw[4] = 99
	_, err = Import(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestImport_DigestMismatch(t *testing.T) {
	src, err := block.NewMemoryStore(1)
	require.NoError(t, err)
	require.NoError(t, codec.Encode(big.NewInt(123456789), src))

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionNone))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff // corrupt the image
	_, err = Import(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrDigestMismatch)
}

func TestImport_InvalidWidth(t *testing.T) {
	src, err := block.NewMemoryStore(1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionNone))

	raw := buf.Bytes()
	raw[5] = 9
	_, err = Import(bytes.NewReader(raw))
	require.ErrorIs(t, err, block.ErrInvalidBlockWidth)
}

func TestImport_FileStoreFactory(t *testing.T) {
	n := big.NewInt(0xfeedbeef)
	src, err := block.NewMemoryStore(2)
	require.NoError(t, err)
	require.NoError(t, codec.Encode(n, src))

	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionS2))

	path := filepath.Join(t.TempDir(), "restored.bin")
	restored, err := Import(&buf, WithStoreFactory(func(width int) (block.Store, error) {
		return block.CreateFile(path, width)
	}))
	require.NoError(t, err)
	defer restored.Close()

	got, err := codec.Decode(restored)
	require.NoError(t, err)
	require.Zero(t, n.Cmp(got))
}

func TestExport_CountsReads(t *testing.T) {
	stats := block.NewStats()
	src, err := block.NewMemoryStore(1, block.WithStats(stats))
	require.NoError(t, err)
	require.NoError(t, codec.Encode(big.NewInt(0x010203), src))

	stats.Reset()
	var buf bytes.Buffer
	require.NoError(t, Export(src, &buf, format.CompressionNone))
	require.Equal(t, uint64(3), stats.Reads())
}
