package pagedoc

import (
	"encoding/binary"
	"fmt"

	"gitee.com/flycash/case-notification/internal/errs"
)

// 分页文档容器格式：魔数 + 页数 + 每页长度前缀的页内容。
// 渲染器产出该格式，信件拼装只在容器层面合并、补页、切分，
// 不理解页内字节。

var magic = []byte("PGD1")

const headerLen = 8

// Document 可变分页文档
type Document struct {
	pages [][]byte
}

func New(pages ...[]byte) *Document {
	d := &Document{pages: make([][]byte, 0, len(pages))}
	for _, p := range pages {
		d.pages = append(d.pages, p)
	}
	return d
}

// Decode 解析容器字节。格式非法返回错误。
func Decode(data []byte) (*Document, error) {
	if len(data) < headerLen || string(data[:4]) != string(magic) {
		return nil, fmt.Errorf("%w: 非法的分页文档头", errs.ErrInvalidParameter)
	}
	n := binary.BigEndian.Uint32(data[4:8])
	pages := make([][]byte, 0, n)
	off := headerLen
	for i := uint32(0); i < n; i++ {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: 分页文档在第 %d 页处截断", errs.ErrInvalidParameter, i)
		}
		l := int(binary.BigEndian.Uint32(data[off : off+4]))
		off += 4
		if off+l > len(data) {
			return nil, fmt.Errorf("%w: 第 %d 页长度越界", errs.ErrInvalidParameter, i)
		}
		page := make([]byte, l)
		copy(page, data[off:off+l])
		pages = append(pages, page)
		off += l
	}
	return &Document{pages: pages}, nil
}

// Encode 序列化为容器字节
func (d *Document) Encode() []byte {
	size := headerLen
	for _, p := range d.pages {
		size += 4 + len(p)
	}
	out := make([]byte, 0, size)
	out = append(out, magic...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(d.pages)))
	for _, p := range d.pages {
		out = binary.BigEndian.AppendUint32(out, uint32(len(p)))
		out = append(out, p...)
	}
	return out
}

func (d *Document) PageCount() int {
	return len(d.pages)
}

// Append 把 other 的全部页追加到 d 末尾
func (d *Document) Append(other *Document) {
	d.pages = append(d.pages, other.pages...)
}

// AppendBlankPage 追加一张空白页
func (d *Document) AppendBlankPage() {
	d.pages = append(d.pages, []byte{})
}
