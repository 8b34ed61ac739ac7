package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "blocks.bin")
}

func TestCreateFile_WidthValidation(t *testing.T) {
	path := tempStorePath(t)

	_, err := CreateFile(path, 0)
	require.ErrorIs(t, err, ErrInvalidBlockWidth)
	_, err = CreateFile(path, 8)
	require.ErrorIs(t, err, ErrInvalidBlockWidth)

	// Width validation happens before the medium is touched.
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.bin"), 1)
	require.Error(t, err)
}

func TestFileStore_ReadWriteRoundTrip(t *testing.T) {
	s, err := CreateFile(tempStorePath(t), 2)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteBlock(0, 0xbeef))
	require.NoError(t, s.WriteBlock(1, 0x1dead)) // masked to 0xdead

	v, err := s.ReadBlock(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0xbeef), v)
	v, err = s.ReadBlock(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0xdead), v)

	length, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, int64(2), length)
}

func TestFileStore_ReadPastEndYieldsZero(t *testing.T) {
	s, err := CreateFile(tempStorePath(t), 1)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.ReadBlock(42)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)

	// Reading past the end never extends the file.
	length, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, int64(0), length)
	require.Equal(t, uint64(1), s.Stats().Reads())
}

func TestFileStore_SparseWriteZeroFillsGap(t *testing.T) {
	s, err := CreateFile(tempStorePath(t), 1)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteBlock(0, 1))
	require.NoError(t, s.WriteBlock(100, 2))

	length, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, int64(101), length)

	for _, pos := range []int64{1, 50, 99} {
		v, err := s.ReadBlock(pos)
		require.NoError(t, err)
		require.Equal(t, uint64(0), v, "gap block %d", pos)
	}
}

func TestFileStore_TruncatedLength(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0o644))

	s, err := OpenFile(path, 2)
	require.NoError(t, err)
	defer s.Close()

	// Three bytes at width 2 is one complete block.
	length, err := s.Length()
	require.NoError(t, err)
	require.Equal(t, int64(1), length)

	// The partial trailing block reads zero-extended, like a short read at
	// end of medium.
	v, err := s.ReadBlock(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0x03), v)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := tempStorePath(t)

	s, err := CreateFile(path, 1)
	require.NoError(t, err)
	require.NoError(t, s.WriteBlock(0, 3))
	require.NoError(t, s.WriteBlock(1, 200))
	require.NoError(t, s.Sync())
	require.NoError(t, s.Close())

	reopened, err := OpenFile(path, 1)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.ReadBlock(1)
	require.NoError(t, err)
	require.Equal(t, uint64(200), v)
}

func TestFileStore_Closed(t *testing.T) {
	s, err := CreateFile(tempStorePath(t), 1)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	_, err = s.ReadBlock(0)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.WriteBlock(0, 1), ErrClosed)
	_, err = s.Length()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Sync(), ErrClosed)
}

func TestFileStore_MatchesMemoryStoreSemantics(t *testing.T) {
	mem, err := NewMemoryStore(3)
	require.NoError(t, err)
	file, err := CreateFile(tempStorePath(t), 3)
	require.NoError(t, err)
	defer file.Close()

	values := []uint64{0, 1, 0xfffffe, 0x1000000, 12345678}
	for pos, v := range values {
		require.NoError(t, mem.WriteBlock(int64(pos), v))
		require.NoError(t, file.WriteBlock(int64(pos), v))
	}

	for pos := int64(0); pos < int64(len(values))+2; pos++ {
		mv, err := mem.ReadBlock(pos)
		require.NoError(t, err)
		fv, err := file.ReadBlock(pos)
		require.NoError(t, err)
		require.Equal(t, mv, fv, "block %d", pos)
	}
}
