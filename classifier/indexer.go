package classifier

// FrameIndex holds the HEADERS frames found in one packet, in wire order.
type FrameIndex struct {
	Frames [MaxFramesToProcess]RecordedFrame
	Count  int
}

// Recorded returns the recorded frames.
func (fi *FrameIndex) Recorded() []RecordedFrame {
	return fi.Frames[:fi.Count]
}

// IndexFrames walks the frame headers visible at the cursor and records
// the header block window of each HEADERS frame. A connection preface at
// the cursor is skipped first.
//
// The walk ends after MaxFramesToFilter frames, when less than a frame
// header remains, or on a header that cannot start a frame. Once
// MaxFramesToProcess frames are recorded the walk goes on without
// recording so that the cursor still ends past the frames it saw.
func IndexFrames(c *Cursor, fi *FrameIndex) {
	indexFrames(c, fi, nil)
}

func indexFrames(c *Cursor, fi *FrameIndex, r Reporter) {
	SkipPreface(c)

	for i := 0; i < MaxFramesToFilter; i++ {
		if c.Remaining() < FrameHeaderSize {
			return
		}

		fh, ok := ReadFrameHeader(c)
		if !ok {
			report(r, SiteFrameHeader, ErrInvalidFrame)
			return
		}

		if fh.IsHeaders() {
			if fi.Count < MaxFramesToProcess {
				fi.Frames[fi.Count] = headerBlockWindow(*c, fh)
				fi.Count++
			} else {
				report(r, SiteRecordLimit, ErrLimitReached)
			}
		}

		if int(fh.Length) > c.Remaining() {
			report(r, SiteFrameBeyondView, ErrInsufficientData)
		}
		c.Advance(int(fh.Length))
	}

	if c.Remaining() >= FrameHeaderSize {
		report(r, SiteFrameFilterLimit, ErrLimitReached)
	}
}
