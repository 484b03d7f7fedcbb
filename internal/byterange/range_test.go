package byterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cases := []struct {
		header string
		want   Interval
	}{
		{"bytes=0-499", Interval{0, 499}},
		{"bytes=500-", Interval{500, 999}},
		// 不识别后缀形式，起点回落到0
		{"bytes=-999", Interval{0, 999}},
		{"garbage", Interval{0, 999}},
		{"bytes=", Interval{0, 999}},
		{"bytes=abc-def", Interval{0, 999}},
		{"bytes=10-xyz", Interval{10, 999}},
		{"bytes=1-2-3", Interval{1, 2}},
		{"items=5-6", Interval{5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.header, 1000))
		})
	}
}

func TestParseDoesNotValidate(t *testing.T) {
	assert.Equal(t, Interval{700, 100}, Parse("bytes=700-100", 1000))
	assert.Equal(t, Interval{5000, 6000}, Parse("bytes=5000-6000", 1000))
}

func TestParseEmptyResource(t *testing.T) {
	assert.Equal(t, Interval{0, 0}, Parse("bytes=0-", 0))
}

func TestIntervalLen(t *testing.T) {
	assert.Equal(t, uint64(100), Interval{100, 199}.Len())
	assert.Equal(t, uint64(1), Interval{7, 7}.Len())
	assert.Equal(t, uint64(0), Interval{10, 2}.Len())
	assert.True(t, Interval{10, 2}.Empty())
	assert.False(t, Interval{2, 2}.Empty())
	assert.Equal(t, "100-199", Interval{100, 199}.String())
}

func TestWhole(t *testing.T) {
	iv, ok := Whole(10)
	require.True(t, ok)
	assert.Equal(t, Interval{0, 9}, iv)

	_, ok = Whole(0)
	assert.False(t, ok)
}

func TestResolveLenientPassesThrough(t *testing.T) {
	p := Policy{}
	iv, err := Resolve("bytes=700-100", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{700, 100}, iv)

	iv, err = Resolve("bytes=900-5000", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{900, 5000}, iv)
}

func TestResolveStrict(t *testing.T) {
	p := Policy{Strict: true}

	iv, err := Resolve("bytes=900-5000", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{900, 999}, iv)

	_, err = Resolve("bytes=700-100", 1000, p)
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	_, err = Resolve("bytes=1000-", 1000, p)
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	_, err = Resolve("bytes=0-", 0, p)
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	iv, err = Resolve("garbage", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{0, 999}, iv)
}

func TestResolveSuffix(t *testing.T) {
	p := Policy{Strict: true, Suffix: true}

	iv, err := Resolve("bytes=-500", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{500, 999}, iv)

	iv, err = Resolve("bytes=-5000", 1000, p)
	require.NoError(t, err)
	assert.Equal(t, Interval{0, 999}, iv)

	_, err = Resolve("bytes=-0", 1000, p)
	assert.ErrorIs(t, err, ErrUnsatisfiable)

	iv, err = Resolve("bytes=-0", 1000, Policy{Suffix: true})
	require.NoError(t, err)
	assert.True(t, iv.Empty())

	// 关闭后缀支持时保持默认起点
	iv, err = Resolve("bytes=-500", 1000, Policy{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, Interval{0, 500}, iv)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", false)
	require.NoError(t, err)
	assert.True(t, p.Strict)

	p, err = ParsePolicy("Lenient", true)
	require.NoError(t, err)
	assert.Equal(t, Policy{Strict: false, Suffix: true}, p)

	_, err = ParsePolicy("loose", false)
	assert.Error(t, err)
}
