package wkb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hangxie/geocolumn/common"
)

func Test_Dialect_RoundTrip(t *testing.T) {
	testCases := map[string]struct {
		dialect Dialect
		tag     byte
	}{
		"wkb":        {DialectWKB, 1},
		"ewkb":       {DialectEWKB, 2},
		"geopackage": {DialectGeoPackage, 3},
		"mysql":      {DialectMySQL, 4},
		"spatialite": {DialectSpatiaLite, 5},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tag, err := WKBTypeID(tc.dialect)
			require.NoError(t, err)
			require.Equal(t, tc.tag, tag)
			d, err := DecodeWKBDialect(tag)
			require.NoError(t, err)
			require.Equal(t, tc.dialect, d)
		})
	}
}

func Test_DecodeWKBDialect_Unknown(t *testing.T) {
	for _, tag := range []byte{0, 6, 0x7f, 0xff} {
		_, err := DecodeWKBDialect(tag)
		require.ErrorIs(t, err, common.ErrUnknownDialect)
	}
	_, err := WKBTypeID(Dialect(9))
	require.ErrorIs(t, err, common.ErrUnknownDialect)
	require.Equal(t, "Dialect(9)", Dialect(9).String())
	require.Equal(t, "GeoPackage", DialectGeoPackage.String())
}

func Test_Buffer(t *testing.T) {
	payloads := []byte{0xaa, 0xbb}
	buf, err := NewBuffer(payloads, DialectEWKB)
	require.NoError(t, err)
	require.Equal(t, DialectEWKB, buf.Dialect())
	require.Equal(t, []byte{0xaa, 0xbb}, buf.Data())
	require.Equal(t, 2, buf.Len())
	require.Equal(t, []byte{2, 0xaa, 0xbb}, buf.Bytes())

	// the input is copied
	payloads[0] = 0
	require.Equal(t, byte(0xaa), buf.Data()[0])

	_, err = NewBuffer(nil, Dialect(0))
	require.ErrorIs(t, err, common.ErrUnknownDialect)

	testCases := map[string]struct {
		store  []byte
		errIs  error
		errMsg string
	}{
		"empty":       {nil, common.ErrMalformedBuffer, "no dialect tag"},
		"unknown-tag": {[]byte{7, 1, 2}, common.ErrUnknownDialect, "dialect tag 0x07"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := BufferFromBytes(tc.store)
			require.ErrorIs(t, err, tc.errIs)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	buf, err = BufferFromBytes([]byte{5})
	require.NoError(t, err)
	require.Equal(t, DialectSpatiaLite, buf.Dialect())
	require.Equal(t, 0, buf.Len())
	require.Empty(t, buf.Data())

	var zero Buffer
	require.Equal(t, Dialect(0), zero.Dialect())
	require.Equal(t, 0, zero.Len())
}
