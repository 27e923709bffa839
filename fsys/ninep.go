package fsys

import (
	"9fans.net/go/plan9"
)

// ReadBuffer sets Count and Data in response ofcall to the part of src
// selected by the offset and count of request ifcall.
func ReadBuffer(ofcall, ifcall *plan9.Fcall, src []byte) {
	n := uint64(len(src))
	off := ifcall.Offset
	if off >= n {
		ofcall.Count = 0
		ofcall.Data = nil
		return
	}
	end := min(off+uint64(ifcall.Count), n)
	ofcall.Data = src[off:end]
	ofcall.Count = uint32(end - off)
}

// DirRead sets ofcall.Data to at most ifcall.Count bytes of directory
// entries starting at offset ifcall.Offset. gen returns the i-th entry,
// or nil past the end. A partial entry is never returned.
func DirRead(ofcall, ifcall *plan9.Fcall, gen func(i int) *plan9.Dir) {
	start := ifcall.Offset
	end := ifcall.Offset + uint64(ifcall.Count)
	data := make([]byte, 0, ifcall.Count)
	var pos uint64
	for i := 0; pos < end; i++ {
		d := gen(i)
		if d == nil {
			break
		}
		b, err := d.Bytes()
		if err != nil {
			break
		}
		if pos >= start {
			if len(data)+len(b) > cap(data) {
				break
			}
			data = append(data, b...)
		}
		pos += uint64(len(b))
	}
	ofcall.Data = data
	ofcall.Count = uint32(len(data))
}
