package registry

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"go.notifydb.dev/core/notifydb"
)

// BufferSize is the capacity of an Iterator's working buffer: twice the
// platform path-length bound, so that any record whose path fits in a
// filesystem path also fits in the buffer alongside its timestamp and
// waiter ID prefix.
const BufferSize = 2 * unix.PathMax

// Record is a single parsed registration, binding a waiting process to the
// path it watches. Begin and End are the byte offsets of the record line
// within the stream; End is one past the terminating newline.
type Record struct {
	ID         notifydb.WaiterID
	Path       string
	Begin, End int64
}

// ParseError is a terminal structural violation of the registration log.
// The log is owned by the external writer, so no attempt is made to recover
// or resynchronize past one.
type ParseError struct {
	// Offset is the byte position, relative to stream start, of the byte at
	// which the violation was detected.
	Offset int64
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Reason, e.Offset)
}

// Iterator incrementally parses Records from a byte stream. It reads in
// bounded fills of a fixed-capacity working buffer, sliding any partial
// record remainder to the buffer front between fills, and so never holds
// more than the buffer capacity regardless of stream length. A record
// longer than the buffer fails the parse.
type Iterator struct {
	r      io.Reader
	buf    []byte // working buffer; len is the fill level, cap is fixed
	next   int    // parse position within buf
	offset int64  // stream offset of buf[0]
	eof    bool   // the reader returned io.EOF
}

// NewIterator returns an Iterator of Records drawn from |r|, using a working
// buffer of BufferSize bytes.
func NewIterator(r io.Reader) *Iterator {
	return NewIteratorSize(r, BufferSize)
}

// NewIteratorSize is NewIterator with an explicit buffer capacity.
func NewIteratorSize(r io.Reader, size int) *Iterator {
	return &Iterator{r: r, buf: make([]byte, 0, size)}
}

// Next returns the next Record of the stream. It returns io.EOF if the
// stream ends cleanly on a record boundary, a *ParseError on a structural
// violation of the log, or the decorated error of the underlying reader.
// Errors are terminal, and Next must not be called after returning one.
func (it *Iterator) Next() (Record, error) {
	for {
		// Extract the next record if a complete line is buffered.
		if i := bytes.IndexByte(it.buf[it.next:], '\n'); i != -1 {
			var begin = it.offset + int64(it.next)
			var line = it.buf[it.next : it.next+i+1]
			it.next += i + 1
			return parseLine(line, begin)
		}

		// Slide the partial remainder to the buffer front, making room to
		// read the rest of the record.
		if it.next != 0 {
			var n = copy(it.buf[:cap(it.buf)], it.buf[it.next:])
			it.buf = it.buf[:n]
			it.offset += int64(it.next)
			it.next = 0
		}
		// The bound applies even when the final fill also reached the end
		// of the stream.
		if len(it.buf) == cap(it.buf) {
			return Record{}, &ParseError{Offset: it.offset, Reason: "record too long"}
		}

		if it.eof {
			if len(it.buf) == 0 {
				return Record{}, io.EOF
			}
			return Record{}, &ParseError{
				Offset: it.offset,
				Reason: "incomplete record at end of stream",
			}
		}

		var n, err = it.r.Read(it.buf[len(it.buf):cap(it.buf)])
		it.buf = it.buf[:len(it.buf)+n]
		readBytesTotal.Add(float64(n))

		if err == io.EOF {
			it.eof = true
		} else if err != nil {
			return Record{}, errors.WithMessagef(err, "reading registry (offset %d)",
				it.offset+int64(len(it.buf)))
		}
	}
}

// Offset returns the stream offset through which the Iterator has consumed
// records.
func (it *Iterator) Offset() int64 { return it.offset + int64(it.next) }

// parseLine parses one newline-terminated record line which begins at
// stream offset |begin|.
func parseLine(line []byte, begin int64) (Record, error) {
	var n = len(line) - 1 // index of the terminating newline
	var j int

	// A run of timestamp digits. The value is advisory metadata of the
	// external writer, and is discarded.
	for j != n && isDigit(line[j]) {
		j++
	}
	if j == n || line[j] != ' ' {
		return Record{}, &ParseError{
			Offset: begin + int64(j),
			Reason: "expected ' ' after timestamp",
		}
	}
	j++

	var id notifydb.WaiterID
	for j != n && isDigit(line[j]) {
		id = id*10 + notifydb.WaiterID(line[j]-'0')
		if id > notifydb.MaxWaiterID {
			return Record{}, &ParseError{Offset: begin + int64(j), Reason: "id too large"}
		}
		j++
	}
	if j == n || line[j] != ' ' {
		return Record{}, &ParseError{
			Offset: begin + int64(j),
			Reason: "expected ' ' after id",
		}
	}
	j++

	recordsTotal.Inc()
	return Record{
		ID:    id,
		Path:  string(line[j:n]),
		Begin: begin,
		End:   begin + int64(len(line)),
	}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
