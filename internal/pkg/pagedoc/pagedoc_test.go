package pagedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_EncodeDecode(t *testing.T) {
	t.Parallel()
	d := New([]byte("page-1"), []byte("page-2"), []byte{})
	got, err := Decode(d.Encode())
	require.NoError(t, err)
	assert.Equal(t, 3, got.PageCount())
}

func TestDocument_AppendAndBlank(t *testing.T) {
	t.Parallel()
	cover := New([]byte("coversheet"))
	body := New([]byte("body-1"), []byte("body-2"))
	cover.Append(body)
	assert.Equal(t, 3, cover.PageCount())
	// 奇数页补一张空白页
	if cover.PageCount()%2 != 0 {
		cover.AppendBlankPage()
	}
	assert.Equal(t, 4, cover.PageCount())
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "空输入", data: nil},
		{name: "错误魔数", data: []byte("XXXX\x00\x00\x00\x01")},
		{name: "页数与内容不符", data: New([]byte("p")).Encode()[:9]},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tc.data)
			assert.Error(t, err)
		})
	}
}
