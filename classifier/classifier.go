// Package classifier tells whether a single packet payload carries gRPC over
// HTTP/2, without reassembling streams.
//
// Every loop runs a bounded number of times, every read is checked against
// the visible bytes first, and nothing is allocated on the scan path, so a
// call costs the same whatever a hostile packet contains. Truncated or
// malformed input never fails: it only makes the answer Undetermined.
package classifier

// Verdict is the outcome of classifying one packet.
type Verdict uint8

const (
	Undetermined Verdict = iota
	GRPC
	NotGRPC
)

var verdictStr = map[Verdict]string{
	Undetermined: "undetermined",
	GRPC:         "grpc",
	NotGRPC:      "not-grpc",
}

func (v Verdict) String() string {
	if name, ok := verdictStr[v]; ok {
		return name
	}
	return "UNKNOW"
}

// Decisive reports whether the verdict settles the question.
func (v Verdict) Decisive() bool {
	return v == GRPC || v == NotGRPC
}

// ParseVerdict is the inverse of Verdict.String.
func ParseVerdict(s string) (Verdict, bool) {
	for v, name := range verdictStr {
		if name == s {
			return v, true
		}
	}
	return Undetermined, false
}

// Classify inspects the HTTP/2 frames of view starting at offset, the
// number of bytes already consumed by outer layers.
//
// It is a pure function of its input and safe for concurrent use.
func Classify(view []byte, offset int) Verdict {
	return classify(view, offset, nil)
}

// Classifier runs Classify and reports the boundary conditions it meets to
// Reporter, which may be nil.
type Classifier struct {
	Reporter Reporter
}

func NewClassifier(r Reporter) *Classifier {
	return &Classifier{Reporter: r}
}

func (cl *Classifier) Classify(view []byte, offset int) Verdict {
	return classify(view, offset, cl.Reporter)
}

func classify(view []byte, offset int, r Reporter) Verdict {
	if offset < 0 || offset > len(view) {
		return Undetermined
	}

	var fi FrameIndex
	c := NewCursor(view, offset)
	indexFrames(&c, &fi, r)

	for i := 0; i < MaxFramesToProcess; i++ {
		if i >= fi.Count {
			break
		}
		frame := fi.Frames[i]
		fc := NewCursor(view, frame.Offset)
		if v := scanHeaders(&fc, frame.Length, r); v.Decisive() {
			return v
		}
	}
	return Undetermined
}
