package codec

// maxPrealloc bounds slice preallocation for counts read from the stream.
const maxPrealloc = 4096

// Termination selects whether a sentinel-terminated sequence keeps its
// terminal element.
type Termination int

const (
	// Inclusive appends the terminal element before stopping.
	Inclusive Termination = iota
	// Exclusive consumes the terminal element but drops it.
	Exclusive
)

// ReadN decodes exactly n elements in stream order, stopping at the first
// failure.
func ReadN[T any](r *Reader, field string, n int, elem func(*Reader) T) []T {
	if r.err != nil {
		return nil
	}
	out := make([]T, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		r.push(field, i)
		v := elem(r)
		r.pop()
		if r.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// ReadList reads a u32 count and then that many elements. The count itself is
// not returned; writers recompute it from the slice length.
func ReadList[T any](r *Reader, field string, elem func(*Reader) T) []T {
	n := r.U32()
	if r.err != nil {
		return nil
	}
	return ReadN(r, field, int(n), elem)
}

// ReadUntil decodes elements until terminal reports true for one of them.
// Reaching the end of the stream first fails with ErrUnexpectedEndOfSequence.
func ReadUntil[T any](r *Reader, field string, mode Termination, elem func(*Reader) T, terminal func(T) bool) []T {
	var out []T
	for i := 0; ; i++ {
		if r.AtEOF() {
			r.Fail(&DecodeError{
				Kind:   ErrUnexpectedEndOfSequence,
				Field:  r.fieldPath(field),
				Offset: r.off,
				Detail: "stream ended before terminal element",
			})
			return nil
		}
		r.push(field, i)
		v := elem(r)
		r.pop()
		if r.err != nil {
			return nil
		}
		if terminal(v) {
			if mode == Inclusive {
				out = append(out, v)
			}
			return out
		}
		out = append(out, v)
	}
}

// ReadToEOF decodes elements until the stream is exhausted. End of stream is
// only valid between elements.
func ReadToEOF[T any](r *Reader, field string, elem func(*Reader) T) []T {
	var out []T
	for i := 0; !r.AtEOF(); i++ {
		r.push(field, i)
		v := elem(r)
		r.pop()
		if r.err != nil {
			return nil
		}
		out = append(out, v)
	}
	if r.err != nil {
		return nil
	}
	return out
}

// Scope runs fn with field pushed onto the error path.
func Scope[T any](r *Reader, field string, fn func(*Reader) T) T {
	r.push(field, -1)
	defer r.pop()
	return fn(r)
}
