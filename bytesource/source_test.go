package bytesource

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectAndWrapGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("<svg/>"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	r, err := DetectAndWrap(&buf)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(out))
}

func TestDetectAndWrapPlain(t *testing.T) {
	r, err := DetectAndWrap(bytes.NewBufferString("<svg/>"))
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(out))
}

func TestResolveRelativeEscapeRefused(t *testing.T) {
	_, err := ResolveRelative("/tmp/foo/bar.svg", "../etc/passwd")
	require.ErrorIs(t, err, ErrEscapesBase)
}

func TestResolveRelativeWithinBase(t *testing.T) {
	out, err := ResolveRelative("/tmp/foo/bar.svg", "icons/a.png")
	require.NoError(t, err)
	require.Equal(t, "/tmp/foo/icons/a.png", out)
}

func TestDataURIBase64(t *testing.T) {
	data, mt, err := DecodeDataURI("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
	require.Equal(t, "image/png", mt)
}
